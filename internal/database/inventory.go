package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kruzk02/grocery-store-api/internal/domain"
)

type InventoryRepo struct {
	pool *pgxpool.Pool
}

func NewInventoryRepo(pool *pgxpool.Pool) *InventoryRepo { return &InventoryRepo{pool: pool} }

func (r *InventoryRepo) GetByID(ctx context.Context, id int) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := r.pool.QueryRow(ctx,
		`SELECT id, product_id, quantity, updated_at FROM inventories WHERE id=$1`, id,
	).Scan(&inv.ID, &inv.ProductID, &inv.Quantity, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFound("Inventory", id)
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InventoryRepo) List(ctx context.Context) ([]domain.Inventory, error) {
	return r.scanList(r.pool.Query(ctx,
		`SELECT id, product_id, quantity, updated_at FROM inventories ORDER BY id`))
}

// ListBelow returns inventories at or under the restock threshold.
func (r *InventoryRepo) ListBelow(ctx context.Context, threshold int) ([]domain.Inventory, error) {
	return r.scanList(r.pool.Query(ctx,
		`SELECT id, product_id, quantity, updated_at FROM inventories WHERE quantity <= $1 ORDER BY quantity`,
		threshold))
}

func (r *InventoryRepo) scanList(rows pgx.Rows, err error) ([]domain.Inventory, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invs := []domain.Inventory{}
	for rows.Next() {
		var inv domain.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.Quantity, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (r *InventoryRepo) Create(ctx context.Context, inv *domain.Inventory) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO inventories (product_id, quantity, updated_at) VALUES ($1,$2,now())
		RETURNING id, updated_at
	`, inv.ProductID, inv.Quantity).Scan(&inv.ID, &inv.UpdatedAt)
}

func (r *InventoryRepo) Update(ctx context.Context, inv *domain.Inventory) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE inventories SET product_id=$1, quantity=$2, updated_at=now() WHERE id=$3
	`, inv.ProductID, inv.Quantity, inv.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("Inventory", inv.ID)
	}
	return nil
}

// ApplyMovement adds delta to the warehouse counter of a product, clamped
// at zero. Returns the touched inventory row.
func (r *InventoryRepo) ApplyMovement(ctx context.Context, productID, delta int) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := r.pool.QueryRow(ctx, `
		UPDATE inventories
		SET quantity = GREATEST(quantity + $1, 0), updated_at = now()
		WHERE product_id = $2
		RETURNING id, product_id, quantity, updated_at
	`, delta, productID).Scan(&inv.ID, &inv.ProductID, &inv.Quantity, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFound("Inventory for product", productID)
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InventoryRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("Inventory", id)
	}
	return nil
}
