// Package worker runs the daily low-stock check: once a day at a fixed
// hour it scans the inventory ledger and alerts every admin, by
// notification row and by email.
package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/domain"
)

type InventoryFinder interface {
	FindBelow(ctx context.Context, threshold int) ([]domain.Inventory, error)
}

type AdminLister interface {
	Admins(ctx context.Context) ([]domain.User, error)
}

type Notifier interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

type Sender interface {
	Send(to, subject, body string) error
}

type LowStockChecker struct {
	inventories InventoryFinder
	users       AdminLister
	notifier    Notifier
	mailer      Sender
	logger      *zap.Logger

	hour      int
	threshold int
	now       func() time.Time
}

func NewLowStockChecker(inventories InventoryFinder, users AdminLister, notifier Notifier,
	mailer Sender, logger *zap.Logger, hour, threshold int) *LowStockChecker {
	return &LowStockChecker{
		inventories: inventories,
		users:       users,
		notifier:    notifier,
		mailer:      mailer,
		logger:      logger,
		hour:        hour,
		threshold:   threshold,
		now:         time.Now,
	}
}

// Run blocks until ctx is cancelled. The wake time is recomputed from the
// wall clock after every run, so the check stays pinned to the scheduled
// hour instead of drifting with run duration.
func (c *LowStockChecker) Run(ctx context.Context) {
	c.logger.Info("low stock checker running", zap.Int("hour", c.hour), zap.Int("threshold", c.threshold))

	for {
		next := c.nextRun(c.now())
		c.logger.Info("next low stock check scheduled", zap.Time("at", next))

		t := time.NewTimer(next.Sub(c.now()))
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}

		if err := c.check(ctx); err != nil {
			c.logger.Error("low stock check failed", zap.Error(err))
		}
	}
}

// nextRun returns today's scheduled time, or tomorrow's when it already
// passed.
func (c *LowStockChecker) nextRun(now time.Time) time.Time {
	scheduled := time.Date(now.Year(), now.Month(), now.Day(), c.hour, 0, 0, 0, now.Location())
	if !now.Before(scheduled) {
		scheduled = scheduled.AddDate(0, 0, 1)
	}
	return scheduled
}

func (c *LowStockChecker) check(ctx context.Context) error {
	low, err := c.inventories.FindBelow(ctx, c.threshold)
	if err != nil {
		return fmt.Errorf("list low inventories: %w", err)
	}
	if len(low) == 0 {
		c.logger.Info("no low stock inventories")
		return nil
	}

	admins, err := c.users.Admins(ctx)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}

	message := c.message(low)
	for _, admin := range admins {
		if _, err := c.notifier.Create(ctx, &domain.Notification{
			UserID:  admin.ID,
			Type:    domain.NotificationWarning,
			Message: message,
		}); err != nil {
			c.logger.Error("admin notification failed", zap.String("user_id", admin.ID), zap.Error(err))
			continue
		}

		if admin.Email == "" {
			continue
		}
		if err := c.mailer.Send(admin.Email, "Low stock alert", message); err != nil {
			c.logger.Warn("low stock mail not sent", zap.String("email", admin.Email), zap.Error(err))
		}
	}

	c.logger.Info("low stock check done", zap.Int("inventories", len(low)), zap.Int("admins", len(admins)))
	return nil
}

func (c *LowStockChecker) message(low []domain.Inventory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The product quantity currently less than %d:", c.threshold)
	for _, inv := range low {
		fmt.Fprintf(&b, " product %d (%d left);", inv.ProductID, inv.Quantity)
	}
	return strings.TrimSuffix(b.String(), ";")
}
