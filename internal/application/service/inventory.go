package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/cache"
	"github.com/Kruzk02/grocery-store-api/internal/domain"
	"github.com/Kruzk02/grocery-store-api/internal/observability"
)

// InventoryRepository tracks the warehouse counter. This is deliberately
// not Product.Quantity: products carry sellable stock the order workflow
// reserves against, inventories carry the physical warehouse count fed by
// stock movements.
type InventoryRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Inventory, error)
	List(ctx context.Context) ([]domain.Inventory, error)
	ListBelow(ctx context.Context, threshold int) ([]domain.Inventory, error)
	Create(ctx context.Context, inv *domain.Inventory) error
	Update(ctx context.Context, inv *domain.Inventory) error
	ApplyMovement(ctx context.Context, productID, delta int) (*domain.Inventory, error)
	Delete(ctx context.Context, id int) error
}

type InventoryInput struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type InventoryService struct {
	inventories InventoryRepository
	products    ProductStorage
	cache       Cache
	logger      *zap.Logger
	metrics     observability.Metrics
}

func NewInventoryService(inventories InventoryRepository, products ProductStorage,
	c Cache, logger *zap.Logger, metrics observability.Metrics) *InventoryService {
	return &InventoryService{
		inventories: inventories,
		products:    products,
		cache:       c,
		logger:      logger,
		metrics:     metrics,
	}
}

func (s *InventoryService) FindAll(ctx context.Context) ([]domain.Inventory, error) {
	t0 := time.Now()
	if invs, ok := cacheGet[[]domain.Inventory](ctx, s.cache, cache.InventoriesKey); ok {
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup("inventory", "cache", convertToMs(t0))
		return invs, nil
	}
	s.metrics.IncCacheMiss()

	invs, err := s.inventories.List(ctx)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cache, cache.InventoriesKey, invs, slidingTTL, listTTL)
	s.metrics.ObserveLookup("inventory", "db", convertToMs(t0))
	return invs, nil
}

func (s *InventoryService) Create(ctx context.Context, in InventoryInput) (*domain.Inventory, error) {
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}

	inv := &domain.Inventory{ProductID: in.ProductID, Quantity: in.Quantity}
	if err := s.inventories.Create(ctx, inv); err != nil {
		s.logger.Error("inventory create failed", zap.Int("product_id", in.ProductID), zap.Error(err))
		return nil, err
	}

	s.cache.Remove(ctx, cache.InventoriesKey)
	return inv, nil
}

func (s *InventoryService) Update(ctx context.Context, id int, in InventoryInput) (*domain.Inventory, error) {
	inv, err := s.inventories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Quantity >= 0 && in.Quantity != inv.Quantity {
		inv.Quantity = in.Quantity
	}
	if in.ProductID != 0 && in.ProductID != inv.ProductID {
		if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
			return nil, err
		}
		inv.ProductID = in.ProductID
	}

	if err := s.inventories.Update(ctx, inv); err != nil {
		s.logger.Error("inventory update failed", zap.Int("inventory_id", id), zap.Error(err))
		return nil, err
	}

	s.cache.Remove(ctx, cache.InventoryKey(id))
	s.cache.Remove(ctx, cache.InventoriesKey)
	return inv, nil
}

func (s *InventoryService) FindByID(ctx context.Context, id int) (*domain.Inventory, error) {
	key := cache.InventoryKey(id)
	t0 := time.Now()
	if inv, ok := cacheGet[*domain.Inventory](ctx, s.cache, key); ok {
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup("inventory", "cache", convertToMs(t0))
		return inv, nil
	}
	s.metrics.IncCacheMiss()

	inv, err := s.inventories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cache, key, inv, slidingTTL, listTTL)
	s.metrics.ObserveLookup("inventory", "db", convertToMs(t0))
	return inv, nil
}

// ApplyMovement is the entry point for the stock-movement consumer: a
// positive delta is a delivery, a negative one is shrinkage or a sale
// recorded at the warehouse.
func (s *InventoryService) ApplyMovement(ctx context.Context, productID, delta int) (*domain.Inventory, error) {
	inv, err := s.inventories.ApplyMovement(ctx, productID, delta)
	if err != nil {
		return nil, err
	}

	s.cache.Remove(ctx, cache.InventoryKey(inv.ID))
	s.cache.Remove(ctx, cache.InventoriesKey)
	s.logger.Info("stock movement applied",
		zap.Int("product_id", productID),
		zap.Int("delta", delta),
		zap.Int("quantity", inv.Quantity),
	)
	return inv, nil
}

func (s *InventoryService) FindBelow(ctx context.Context, threshold int) ([]domain.Inventory, error) {
	return s.inventories.ListBelow(ctx, threshold)
}

func (s *InventoryService) Delete(ctx context.Context, id int) error {
	if _, err := s.inventories.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.inventories.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Remove(ctx, cache.InventoryKey(id))
	s.cache.Remove(ctx, cache.InventoriesKey)
	return nil
}
