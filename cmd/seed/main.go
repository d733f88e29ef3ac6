// Command seed bootstraps a fresh database: the admin account plus a
// small demo catalog for local development. Safe to run repeatedly, it
// skips anything that already exists.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kruzk02/grocery-store-api/internal/config"
	"github.com/Kruzk02/grocery-store-api/internal/database"
	"github.com/Kruzk02/grocery-store-api/internal/domain"
)

const (
	adminEmail    = "admin@example.com"
	adminUsername = "adminUsername"
	adminPassword = "Admin@123"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("postgres connect failed: %v", err)
	}
	defer pool.Close()

	users := database.NewUserRepo(pool)
	categories := database.NewCategoryRepo(pool)
	products := database.NewProductRepo(pool)
	inventories := database.NewInventoryRepo(pool)

	if err := seedAdmin(ctx, users); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedCatalog(ctx, categories, products, inventories); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}
	log.Println("seed done")
}

func seedAdmin(ctx context.Context, users *database.UserRepo) error {
	if _, err := users.GetByNameOrEmail(ctx, adminEmail); err == nil {
		log.Println("admin already exists, skipping")
		return nil
	} else if !domain.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		ID:           uuid.NewString(),
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("created admin %s (%s)", adminUsername, adminEmail)
	return nil
}

func seedCatalog(ctx context.Context, categories *database.CategoryRepo,
	products *database.ProductRepo, inventories *database.InventoryRepo) error {
	existing, err := categories.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("catalog already seeded, skipping")
		return nil
	}

	type seedProduct struct {
		name  string
		desc  string
		price float64
		stock int
	}
	catalog := []struct {
		category string
		desc     string
		products []seedProduct
	}{
		{"Produce", "Fresh fruit and vegetables", []seedProduct{
			{"Bananas", "Per kg", 1.29, 120},
			{"Apples", "Per kg", 2.49, 80},
			{"Tomatoes", "Per kg", 3.19, 60},
		}},
		{"Dairy", "Milk, cheese and eggs", []seedProduct{
			{"Whole Milk", "1 liter", 1.09, 200},
			{"Cheddar", "400g block", 4.79, 45},
		}},
		{"Bakery", "Baked fresh daily", []seedProduct{
			{"Sourdough Loaf", "800g", 3.49, 30},
			{"Croissant", "Butter croissant", 1.19, 50},
		}},
	}

	for _, c := range catalog {
		cat := &domain.Category{Name: c.category, Description: c.desc}
		if err := categories.Create(ctx, cat); err != nil {
			return err
		}
		for _, p := range c.products {
			prod := &domain.Product{
				Name:        p.name,
				Description: p.desc,
				Price:       p.price,
				CategoryID:  cat.ID,
				Quantity:    p.stock,
			}
			if err := products.Create(ctx, prod); err != nil {
				return err
			}
			inv := &domain.Inventory{ProductID: prod.ID, Quantity: p.stock}
			if err := inventories.Create(ctx, inv); err != nil {
				return err
			}
		}
	}
	log.Println("created demo catalog")
	return nil
}
