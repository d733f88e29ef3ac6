package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kruzk02/grocery-store-api/internal/domain"
)

type OrderItemRepo struct {
	pool *pgxpool.Pool
}

func NewOrderItemRepo(pool *pgxpool.Pool) *OrderItemRepo { return &OrderItemRepo{pool: pool} }

func (r *OrderItemRepo) GetByID(ctx context.Context, id int) (*domain.OrderItem, error) {
	var it domain.OrderItem
	err := r.pool.QueryRow(ctx,
		`SELECT id, order_id, product_id, quantity FROM order_items WHERE id=$1`, id,
	).Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFound("Order item", id)
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *OrderItemRepo) ListByOrder(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	return r.list(ctx, `WHERE oi.order_id=$1`, orderID)
}

func (r *OrderItemRepo) ListByProduct(ctx context.Context, productID int) ([]domain.OrderItem, error) {
	return r.list(ctx, `WHERE oi.product_id=$1`, productID)
}

func (r *OrderItemRepo) list(ctx context.Context, where string, arg any) ([]domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity,
		       p.id, p.name, p.description, p.price, p.category_id, p.quantity,
		       p.version, COALESCE(p.image_path, ''), p.created_at, p.updated_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		`+where+`
		ORDER BY oi.id
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var it domain.OrderItem
		var p domain.Product
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.Quantity,
			&p.Version, &p.ImagePath, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		it.Product = &p
		items = append(items, it)
	}
	return items, rows.Err()
}

// Create inserts the item and applies the already-computed product quantity
// in one transaction. The version check rejects a product row another
// writer touched between our read and this commit.
func (r *OrderItemRepo) Create(ctx context.Context, item *domain.OrderItem, product *domain.Product) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := updateProductStock(ctx, tx, product); err != nil {
			return err
		}
		return tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity)
			VALUES ($1,$2,$3)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Quantity).Scan(&item.ID)
	})
}

// Update persists the item row; product may be nil when the mutation never
// touched stock (a pure product reassignment).
func (r *OrderItemRepo) Update(ctx context.Context, item *domain.OrderItem, product *domain.Product) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if product != nil {
			if err := updateProductStock(ctx, tx, product); err != nil {
				return err
			}
		}
		tag, err := tx.Exec(ctx, `
			UPDATE order_items SET product_id=$1, quantity=$2 WHERE id=$3
		`, item.ProductID, item.Quantity, item.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.NewNotFound("Order item", item.ID)
		}
		return nil
	})
}

// Delete removes the item and restores its reservation in the same
// transaction, so the release happens exactly once.
func (r *OrderItemRepo) Delete(ctx context.Context, item *domain.OrderItem, product *domain.Product) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := updateProductStock(ctx, tx, product); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM order_items WHERE id=$1`, item.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.NewNotFound("Order item", item.ID)
		}
		return nil
	})
}

func (r *OrderItemRepo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func updateProductStock(ctx context.Context, tx pgx.Tx, p *domain.Product) error {
	tag, err := tx.Exec(ctx, `
		UPDATE products SET quantity=$1, version=version+1, updated_at=now()
		WHERE id=$2 AND version=$3
	`, p.Quantity, p.ID, p.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	p.Version++
	return nil
}
