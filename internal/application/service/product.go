package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/cache"
	"github.com/Kruzk02/grocery-store-api/internal/domain"
	"github.com/Kruzk02/grocery-store-api/internal/observability"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, name string, skip, take int) (int, []domain.Product, error)
}

type CategoryStorage interface {
	GetByID(ctx context.Context, id int) (*domain.Category, error)
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	CategoryID  int     `json:"category_id"`
	ImagePath   string  `json:"image_path"`
}

type ProductService struct {
	products   ProductRepository
	categories CategoryStorage
	cache      Cache
	logger     *zap.Logger
	metrics    observability.Metrics
}

func NewProductService(products ProductRepository, categories CategoryStorage,
	c Cache, logger *zap.Logger, metrics observability.Metrics) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		cache:      c,
		logger:     logger,
		metrics:    metrics,
	}
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	p := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		CategoryID:  in.CategoryID,
		ImagePath:   in.ImagePath,
	}
	if err := s.products.Create(ctx, p); err != nil {
		s.logger.Error("product create failed", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	s.logger.Info("product created", zap.Int("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// Update applies only the fields the caller actually supplied, matching the
// partial-update semantics of the API.
func (s *ProductService) Update(ctx context.Context, id int, in ProductInput) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" && in.Name != p.Name {
		p.Name = in.Name
	}
	if in.Description != "" && in.Description != p.Description {
		p.Description = in.Description
	}
	if in.Price >= 0 && in.Price != p.Price {
		p.Price = in.Price
	}
	if in.Quantity >= 0 && in.Quantity != p.Quantity {
		p.Quantity = in.Quantity
	}
	if in.CategoryID != 0 && in.CategoryID != p.CategoryID {
		if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = in.CategoryID
	}
	if in.ImagePath != "" {
		p.ImagePath = in.ImagePath
	}

	if err := s.products.Update(ctx, p); err != nil {
		s.logger.Error("product update failed", zap.Int("product_id", id), zap.Error(err))
		return nil, err
	}

	s.cache.Remove(ctx, cache.ProductKey(id))
	return p, nil
}

func (s *ProductService) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	key := cache.ProductKey(id)
	t0 := time.Now()
	if p, ok := cacheGet[*domain.Product](ctx, s.cache, key); ok {
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup("product", "cache", convertToMs(t0))
		return p, nil
	}
	s.metrics.IncCacheMiss()

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cache, key, p, slidingTTL, detailTTL)
	s.metrics.ObserveLookup("product", "db", convertToMs(t0))
	return p, nil
}

func (s *ProductService) Search(ctx context.Context, name string, skip, take int) (int, []domain.Product, error) {
	if take <= 0 || take > 100 {
		take = 20
	}
	if skip < 0 {
		skip = 0
	}
	return s.products.Search(ctx, name, skip, take)
}

func (s *ProductService) Delete(ctx context.Context, id int) (bool, error) {
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return false, err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return false, err
	}
	s.cache.Remove(ctx, cache.ProductKey(id))
	s.logger.Info("product deleted", zap.Int("product_id", id))
	return true, nil
}
