package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/config"
	"github.com/Kruzk02/grocery-store-api/internal/domain"
	"github.com/Kruzk02/grocery-store-api/internal/observability"
	"github.com/Kruzk02/grocery-store-api/internal/pkg/retry"
)

// StockMovement is the wire format of the warehouse feed. A positive delta
// is a delivery, a negative one shrinkage or a sale recorded at the
// warehouse.
type StockMovement struct {
	ProductID int    `json:"product_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason,omitempty"`
}

type MovementApplier interface {
	ApplyMovement(ctx context.Context, productID, delta int) (*domain.Inventory, error)
}

type MovementHandler struct {
	inventories MovementApplier
	retryPolicy config.Retry
	logger      *zap.Logger
	metrics     observability.Metrics
}

func NewMovementHandler(inventories MovementApplier, retryPolicy config.Retry,
	logger *zap.Logger, metrics observability.Metrics) *MovementHandler {
	return &MovementHandler{
		inventories: inventories,
		retryPolicy: retryPolicy,
		logger:      logger,
		metrics:     metrics,
	}
}

func (h *MovementHandler) Handle(ctx context.Context, msg kafkago.Message) error {
	t0 := time.Now()

	var mv StockMovement
	if err := json.Unmarshal(msg.Value, &mv); err != nil {
		// A malformed message never becomes valid; log and commit it away.
		h.logger.Error("malformed stock movement, skipping",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		h.metrics.ObserveConsumer(sinceMs(t0), false)
		return nil
	}
	if mv.ProductID <= 0 {
		h.logger.Error("stock movement without product id, skipping", zap.Int64("offset", msg.Offset))
		h.metrics.ObserveConsumer(sinceMs(t0), false)
		return nil
	}

	err := retry.Do(ctx, h.retryPolicy, func() error {
		_, err := h.inventories.ApplyMovement(ctx, mv.ProductID, mv.Delta)
		if domain.IsNotFound(err) {
			// No ledger row for this product; retrying will not help.
			h.logger.Warn("movement for unknown inventory, skipping",
				zap.Int("product_id", mv.ProductID))
			return nil
		}
		return err
	})
	if err != nil {
		h.metrics.ObserveConsumer(sinceMs(t0), false)
		return fmt.Errorf("apply movement for product %d: %w", mv.ProductID, err)
	}

	h.metrics.ObserveConsumer(sinceMs(t0), true)
	return nil
}

func sinceMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}

// NewReader builds the group reader for the movement topic.
func NewReader(cfg config.Kafka) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.Group,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
}
