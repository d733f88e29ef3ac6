package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/cache"
	"github.com/Kruzk02/grocery-store-api/internal/domain"
	"github.com/Kruzk02/grocery-store-api/internal/observability"
)

type CategoryRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id int) error
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryService struct {
	categories CategoryRepository
	cache      Cache
	logger     *zap.Logger
	metrics    observability.Metrics
}

func NewCategoryService(categories CategoryRepository, c Cache, logger *zap.Logger, metrics observability.Metrics) *CategoryService {
	return &CategoryService{categories: categories, cache: c, logger: logger, metrics: metrics}
}

func (s *CategoryService) FindAll(ctx context.Context) ([]domain.Category, error) {
	t0 := time.Now()
	if cats, ok := cacheGet[[]domain.Category](ctx, s.cache, cache.CategoriesKey); ok {
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup("category", "cache", convertToMs(t0))
		return cats, nil
	}
	s.metrics.IncCacheMiss()

	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cache, cache.CategoriesKey, cats, slidingTTL, listTTL)
	s.metrics.ObserveLookup("category", "db", convertToMs(t0))
	return cats, nil
}

func (s *CategoryService) FindByID(ctx context.Context, id int) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("Name", "Name is required")
	}

	c := &domain.Category{Name: in.Name, Description: in.Description}
	if err := s.categories.Create(ctx, c); err != nil {
		s.logger.Error("category create failed", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	s.cache.Remove(ctx, cache.CategoriesKey)
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id int, in CategoryInput) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Description != "" {
		c.Description = in.Description
	}

	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Remove(ctx, cache.CategoriesKey)
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Remove(ctx, cache.CategoriesKey)
	return nil
}
