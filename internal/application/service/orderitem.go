package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/cache"
	"github.com/Kruzk02/grocery-store-api/internal/domain"
	"github.com/Kruzk02/grocery-store-api/internal/observability"
)

// OrderItemStorage persists order items. The mutating calls take the
// recomputed product row as well: item and product commit in one
// transaction, so a reservation and its stock decrement never diverge.
type OrderItemStorage interface {
	GetByID(ctx context.Context, id int) (*domain.OrderItem, error)
	ListByOrder(ctx context.Context, orderID int) ([]domain.OrderItem, error)
	ListByProduct(ctx context.Context, productID int) ([]domain.OrderItem, error)
	Create(ctx context.Context, item *domain.OrderItem, product *domain.Product) error
	Update(ctx context.Context, item *domain.OrderItem, product *domain.Product) error
	Delete(ctx context.Context, item *domain.OrderItem, product *domain.Product) error
}

type OrderStorage interface {
	GetByID(ctx context.Context, id int) (*domain.Order, error)
}

type ProductStorage interface {
	GetByID(ctx context.Context, id int) (*domain.Product, error)
}

// OrderItemInput mirrors the request body for create and update.
type OrderItemInput struct {
	OrderID   int `json:"order_id"`
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type OrderItemService struct {
	items    OrderItemStorage
	orders   OrderStorage
	products ProductStorage
	cache    Cache
	logger   *zap.Logger
	metrics  observability.Metrics
}

func NewOrderItemService(items OrderItemStorage, orders OrderStorage, products ProductStorage,
	c Cache, logger *zap.Logger, metrics observability.Metrics) *OrderItemService {
	return &OrderItemService{
		items:    items,
		orders:   orders,
		products: products,
		cache:    c,
		logger:   logger,
		metrics:  metrics,
	}
}

// Create reserves in.Quantity units of the product for the order. Order and
// product existence are checked before any stock work; nothing is written
// when the reservation fails.
func (s *OrderItemService) Create(ctx context.Context, in OrderItemInput) (*domain.OrderItem, error) {
	t0 := time.Now()

	order, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	remaining, err := domain.ReserveStock(product.Quantity, in.Quantity)
	if err != nil {
		return nil, err
	}
	product.Quantity = remaining

	item := &domain.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  in.Quantity,
		Product:   product,
	}
	if err := s.items.Create(ctx, item, product); err != nil {
		s.logger.Error("order item create failed",
			zap.Int("order_id", in.OrderID),
			zap.Int("product_id", in.ProductID),
			zap.Error(err),
		)
		return nil, err
	}

	s.evictAround(ctx, item.ID, order.ID, product.ID)
	s.metrics.ObserveMutation("orderItem", "create", convertToMs(t0))
	s.logger.Info("order item created",
		zap.Int("order_item_id", item.ID),
		zap.Int("order_id", order.ID),
		zap.Int("product_id", product.ID),
		zap.Int("quantity", item.Quantity),
		zap.Int("stock_remaining", product.Quantity),
	)
	return item, nil
}

// Update mutates product assignment and quantity. The order an item belongs
// to can never change; that rule is checked before any stock adjustment, so
// a combined change fails without touching stock.
func (s *OrderItemService) Update(ctx context.Context, id int, in OrderItemInput) (*domain.OrderItem, error) {
	t0 := time.Now()

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldProductID := item.ProductID
	if in.ProductID != item.ProductID {
		if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
			return nil, err
		}
		item.ProductID = in.ProductID
	}

	if in.OrderID != item.OrderID {
		return nil, domain.NewValidation("OrderId", "You cannot change the order")
	}

	// Stock moves only when the quantity actually changes. The adjustment
	// runs against the item's current product: restore the previous
	// reservation, then reserve the new one, as a single computation.
	var stockProduct *domain.Product
	if in.Quantity != item.Quantity && in.Quantity >= 0 {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		remaining, err := domain.AdjustStock(product.Quantity, item.Quantity, in.Quantity)
		if err != nil {
			return nil, err
		}
		product.Quantity = remaining
		item.Quantity = in.Quantity
		item.Product = product
		stockProduct = product
	}

	if err := s.items.Update(ctx, item, stockProduct); err != nil {
		s.logger.Error("order item update failed", zap.Int("order_item_id", id), zap.Error(err))
		return nil, err
	}

	s.evictAround(ctx, item.ID, item.OrderID, item.ProductID)
	if oldProductID != item.ProductID {
		s.cache.Remove(ctx, cache.OrderItemsByProduct(oldProductID))
		s.cache.Remove(ctx, cache.ProductKey(oldProductID))
	}
	s.metrics.ObserveMutation("orderItem", "update", convertToMs(t0))
	s.logger.Info("order item updated",
		zap.Int("order_item_id", item.ID),
		zap.Int("product_id", item.ProductID),
		zap.Int("quantity", item.Quantity),
	)
	return item, nil
}

// Delete releases the item's reservation back to the product and removes
// the row; both happen in one transaction, so the release cannot repeat.
func (s *OrderItemService) Delete(ctx context.Context, id int) (bool, error) {
	t0 := time.Now()

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	product, err := s.products.GetByID(ctx, item.ProductID)
	if err != nil {
		return false, err
	}
	product.Quantity = domain.ReleaseStock(product.Quantity, item.Quantity)

	if err := s.items.Delete(ctx, item, product); err != nil {
		s.logger.Error("order item delete failed", zap.Int("order_item_id", id), zap.Error(err))
		return false, err
	}

	s.evictAround(ctx, item.ID, item.OrderID, item.ProductID)
	s.metrics.ObserveMutation("orderItem", "delete", convertToMs(t0))
	s.logger.Info("order item deleted",
		zap.Int("order_item_id", id),
		zap.Int("quantity_released", item.Quantity),
	)
	return true, nil
}

func (s *OrderItemService) FindByID(ctx context.Context, id int) (*domain.OrderItem, error) {
	key := cache.OrderItemKey(id)
	t0 := time.Now()
	if item, ok := cacheGet[*domain.OrderItem](ctx, s.cache, key); ok {
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup("orderItem", "cache", convertToMs(t0))
		return item, nil
	}
	s.metrics.IncCacheMiss()

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cache, key, item, slidingTTL, detailTTL)
	s.metrics.ObserveLookup("orderItem", "db", convertToMs(t0))
	return item, nil
}

func (s *OrderItemService) FindByOrderID(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	return s.findList(ctx, cache.OrderItemsByOrder(orderID), func(ctx context.Context) ([]domain.OrderItem, error) {
		return s.items.ListByOrder(ctx, orderID)
	})
}

func (s *OrderItemService) FindByProductID(ctx context.Context, productID int) ([]domain.OrderItem, error) {
	return s.findList(ctx, cache.OrderItemsByProduct(productID), func(ctx context.Context) ([]domain.OrderItem, error) {
		return s.items.ListByProduct(ctx, productID)
	})
}

func (s *OrderItemService) findList(ctx context.Context, key string,
	fetch func(ctx context.Context) ([]domain.OrderItem, error)) ([]domain.OrderItem, error) {
	t0 := time.Now()
	if items, ok := cacheGet[[]domain.OrderItem](ctx, s.cache, key); ok {
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup("orderItem", "cache", convertToMs(t0))
		return items, nil
	}
	s.metrics.IncCacheMiss()

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cache, key, items, slidingTTL, listTTL)
	s.metrics.ObserveLookup("orderItem", "db", convertToMs(t0))
	return items, nil
}

// evictAround drops every key a mutation of this item could have staled:
// the item itself, both list views, the product (its quantity changed), and
// the order (its derived total changed).
func (s *OrderItemService) evictAround(ctx context.Context, itemID, orderID, productID int) {
	s.cache.Remove(ctx, cache.OrderItemKey(itemID))
	s.cache.Remove(ctx, cache.OrderItemsByOrder(orderID))
	s.cache.Remove(ctx, cache.OrderItemsByProduct(productID))
	s.cache.Remove(ctx, cache.ProductKey(productID))
	s.cache.Remove(ctx, cache.OrderKey(orderID))
}
