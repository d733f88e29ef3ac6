package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/cache"
	"github.com/Kruzk02/grocery-store-api/internal/domain"
	"github.com/Kruzk02/grocery-store-api/internal/observability"
)

type CustomerRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int) error
}

type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CustomerService struct {
	customers CustomerRepository
	cache     Cache
	logger    *zap.Logger
	metrics   observability.Metrics
}

func NewCustomerService(customers CustomerRepository, c Cache, logger *zap.Logger, metrics observability.Metrics) *CustomerService {
	return &CustomerService{customers: customers, cache: c, logger: logger, metrics: metrics}
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*domain.Customer, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("Name", "Name is required")
	}
	if in.Email == "" {
		return nil, domain.NewValidation("Email", "Email is required")
	}

	c := &domain.Customer{Name: in.Name, Email: in.Email, Phone: in.Phone, Address: in.Address}
	if err := s.customers.Create(ctx, c); err != nil {
		s.logger.Error("customer create failed", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, id int, in CustomerInput) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Email != "" {
		c.Email = in.Email
	}
	if in.Phone != "" {
		c.Phone = in.Phone
	}
	if in.Address != "" {
		c.Address = in.Address
	}

	if err := s.customers.Update(ctx, c); err != nil {
		s.logger.Error("customer update failed", zap.Int("customer_id", id), zap.Error(err))
		return nil, err
	}

	s.cache.Remove(ctx, cache.CustomerKey(id))
	return c, nil
}

func (s *CustomerService) FindByID(ctx context.Context, id int) (*domain.Customer, error) {
	key := cache.CustomerKey(id)
	t0 := time.Now()
	if c, ok := cacheGet[*domain.Customer](ctx, s.cache, key); ok {
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup("customer", "cache", convertToMs(t0))
		return c, nil
	}
	s.metrics.IncCacheMiss()

	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cache, key, c, slidingTTL, detailTTL)
	s.metrics.ObserveLookup("customer", "db", convertToMs(t0))
	return c, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int) (bool, error) {
	if _, err := s.customers.GetByID(ctx, id); err != nil {
		return false, err
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		return false, err
	}
	s.cache.Remove(ctx, cache.CustomerKey(id))
	s.cache.Remove(ctx, cache.OrdersByCustomer(id))
	return true, nil
}
