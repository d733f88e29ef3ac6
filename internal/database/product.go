package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kruzk02/grocery-store-api/internal/domain"
)

const productColumns = `id, name, description, price, category_id, quantity, version, COALESCE(image_path, ''), created_at, updated_at`

type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo { return &ProductRepo{pool: pool} }

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID,
		&p.Quantity, &p.Version, &p.ImagePath, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFound("Product", id)
	}
	return p, err
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price, category_id, quantity, image_path, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),now(),now())
		RETURNING id, version, created_at, updated_at
	`, p.Name, p.Description, p.Price, p.CategoryID, p.Quantity, p.ImagePath).
		Scan(&p.ID, &p.Version, &p.CreatedAt, &p.UpdatedAt)
}

// Update writes every mutable column and bumps the version token. A stale
// version means another writer got there first.
func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name=$1, description=$2, price=$3, category_id=$4, quantity=$5,
		    image_path=NULLIF($6,''), version=version+1, updated_at=now()
		WHERE id=$7 AND version=$8
	`, p.Name, p.Description, p.Price, p.CategoryID, p.Quantity, p.ImagePath, p.ID, p.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	p.Version++
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("Product", id)
	}
	return nil
}

// Search filters by a case-insensitive name fragment and pages the result.
func (r *ProductRepo) Search(ctx context.Context, name string, skip, take int) (int, []domain.Product, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`, name,
	).Scan(&total); err != nil {
		return 0, nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY id
		OFFSET $2 LIMIT $3
	`, name, skip, take)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return 0, nil, err
		}
		out = append(out, *p)
	}
	return total, out, rows.Err()
}
