package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/cache"
	"github.com/Kruzk02/grocery-store-api/internal/domain"
	"github.com/Kruzk02/grocery-store-api/internal/observability"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Order, error)
	Create(ctx context.Context, o *domain.Order) error
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id int) error
	ListByCustomer(ctx context.Context, customerID int) ([]domain.Order, error)
}

type CustomerStorage interface {
	GetByID(ctx context.Context, id int) (*domain.Customer, error)
}

type OrderInput struct {
	CustomerID int `json:"customer_id"`
}

type OrderService struct {
	orders    OrderRepository
	customers CustomerStorage
	items     OrderItemStorage
	cache     Cache
	logger    *zap.Logger
	metrics   observability.Metrics
}

func NewOrderService(orders OrderRepository, customers CustomerStorage, items OrderItemStorage,
	c Cache, logger *zap.Logger, metrics observability.Metrics) *OrderService {
	return &OrderService{
		orders:    orders,
		customers: customers,
		items:     items,
		cache:     c,
		logger:    logger,
		metrics:   metrics,
	}
}

func (s *OrderService) Create(ctx context.Context, in OrderInput) (*domain.Order, error) {
	if _, err := s.customers.GetByID(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	o := &domain.Order{CustomerID: in.CustomerID}
	if err := s.orders.Create(ctx, o); err != nil {
		s.logger.Error("order create failed", zap.Int("customer_id", in.CustomerID), zap.Error(err))
		return nil, err
	}

	s.cache.Remove(ctx, cache.OrdersByCustomer(in.CustomerID))
	s.logger.Info("order created", zap.Int("order_id", o.ID), zap.Int("customer_id", o.CustomerID))
	return o, nil
}

func (s *OrderService) Update(ctx context.Context, id int, in OrderInput) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldCustomerID := o.CustomerID
	if in.CustomerID != o.CustomerID && in.CustomerID != 0 {
		if _, err := s.customers.GetByID(ctx, in.CustomerID); err != nil {
			return nil, err
		}
		o.CustomerID = in.CustomerID
	}

	if err := s.orders.Update(ctx, o); err != nil {
		s.logger.Error("order update failed", zap.Int("order_id", id), zap.Error(err))
		return nil, err
	}

	s.cache.Remove(ctx, cache.OrderKey(id))
	s.cache.Remove(ctx, cache.OrdersByCustomer(oldCustomerID))
	if o.CustomerID != oldCustomerID {
		s.cache.Remove(ctx, cache.OrdersByCustomer(o.CustomerID))
	}
	return o, nil
}

// FindByID returns the order with its items attached so Total() reflects
// the current state.
func (s *OrderService) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	key := cache.OrderKey(id)
	t0 := time.Now()
	if o, ok := cacheGet[*domain.Order](ctx, s.cache, key); ok {
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup("order", "cache", convertToMs(t0))
		return o, nil
	}
	s.metrics.IncCacheMiss()

	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items

	cacheSet(ctx, s.cache, key, o, slidingTTL, detailTTL)
	s.metrics.ObserveLookup("order", "db", convertToMs(t0))
	return o, nil
}

func (s *OrderService) FindByCustomerID(ctx context.Context, customerID int) ([]domain.Order, error) {
	key := cache.OrdersByCustomer(customerID)
	t0 := time.Now()
	if orders, ok := cacheGet[[]domain.Order](ctx, s.cache, key); ok {
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup("order", "cache", convertToMs(t0))
		return orders, nil
	}
	s.metrics.IncCacheMiss()

	orders, err := s.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cache, key, orders, slidingTTL, detailTTL)
	s.metrics.ObserveLookup("order", "db", convertToMs(t0))
	return orders, nil
}

func (s *OrderService) Delete(ctx context.Context, id int) (bool, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return false, err
	}
	s.cache.Remove(ctx, cache.OrderKey(id))
	s.cache.Remove(ctx, cache.OrdersByCustomer(o.CustomerID))
	s.cache.Remove(ctx, cache.OrderItemsByOrder(id))
	s.logger.Info("order deleted", zap.Int("order_id", id))
	return true, nil
}
