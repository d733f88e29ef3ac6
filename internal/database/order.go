package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kruzk02/grocery-store-api/internal/domain"
)

type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo { return &OrderRepo{pool: pool} }

func (r *OrderRepo) GetByID(ctx context.Context, id int) (*domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx,
		`SELECT id, customer_id, created_at FROM orders WHERE id=$1`, id,
	).Scan(&o.ID, &o.CustomerID, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFound("Order", id)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO orders (customer_id, created_at) VALUES ($1, now())
		RETURNING id, created_at
	`, o.CustomerID).Scan(&o.ID, &o.CreatedAt)
}

func (r *OrderRepo) Update(ctx context.Context, o *domain.Order) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET customer_id=$1 WHERE id=$2`, o.CustomerID, o.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("Order", o.ID)
	}
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("Order", id)
	}
	return nil
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID int) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, customer_id, created_at FROM orders WHERE customer_id=$1 ORDER BY id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
