package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/application/service"
	"github.com/Kruzk02/grocery-store-api/internal/cache"
	"github.com/Kruzk02/grocery-store-api/internal/config"
	"github.com/Kruzk02/grocery-store-api/internal/database"
	"github.com/Kruzk02/grocery-store-api/internal/httpapi"
	"github.com/Kruzk02/grocery-store-api/internal/kafka"
	"github.com/Kruzk02/grocery-store-api/internal/mailer"
	"github.com/Kruzk02/grocery-store-api/internal/observability"
	"github.com/Kruzk02/grocery-store-api/internal/pkg/breaker"
	"github.com/Kruzk02/grocery-store-api/internal/worker"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}
	defer pool.Close()

	store := newCache(cfg.Cache, logger)
	metrics := observability.NewInmem(1000)

	categoryRepo := database.NewCategoryRepo(pool)
	customerRepo := database.NewCustomerRepo(pool)
	productRepo := database.NewProductRepo(pool)
	orderRepo := database.NewOrderRepo(pool)
	orderItemRepo := database.NewOrderItemRepo(pool)
	inventoryRepo := database.NewInventoryRepo(pool)
	notificationRepo := database.NewNotificationRepo(pool)
	userRepo := database.NewUserRepo(pool)

	tokens := service.NewTokenService(cfg.JWT)
	categories := service.NewCategoryService(categoryRepo, store, logger, metrics)
	customers := service.NewCustomerService(customerRepo, store, logger, metrics)
	products := service.NewProductService(productRepo, categoryRepo, store, logger, metrics)
	orders := service.NewOrderService(orderRepo, customerRepo, orderItemRepo, store, logger, metrics)
	orderItems := service.NewOrderItemService(orderItemRepo, orderRepo, productRepo, store, logger, metrics)
	inventories := service.NewInventoryService(inventoryRepo, productRepo, store, logger, metrics)
	notifications := service.NewNotificationService(notificationRepo, logger)
	users := service.NewUserService(userRepo, tokens, logger)

	mail, err := mailer.New(cfg.SMTP, breaker.New(cfg.Breaker), logger)
	if err != nil {
		logger.Fatal("mailer init failed", zap.Error(err))
	}

	lowStock := worker.NewLowStockChecker(inventories, users, notifications, mail, logger,
		cfg.Worker.Hour, cfg.Worker.Threshold)
	go lowStock.Run(ctx)

	if len(cfg.Kafka.Brokers) > 0 {
		reader := kafka.NewReader(cfg.Kafka)
		defer reader.Close()
		handler := kafka.NewMovementHandler(inventories, cfg.Retry, logger, metrics)
		consumer := kafka.NewConsumer(handler, reader, logger, cfg.Kafka.Workers)
		go consumer.Start(ctx)
	} else {
		logger.Info("no kafka brokers configured, stock movement consumer disabled")
	}

	server := httpapi.New(httpapi.Deps{
		OrderItems:    orderItems,
		Products:      products,
		Orders:        orders,
		Inventories:   inventories,
		Customers:     customers,
		Categories:    categories,
		Notifications: notifications,
		Users:         users,
		Tokens:        tokens,
	}, logger, metrics)

	logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newCache(cfg config.Cache, logger *zap.Logger) service.Cache {
	if cfg.Backend == "redis" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		return cache.NewRedis(client, logger)
	}
	mem, err := cache.NewMemory(cfg.Capacity)
	if err != nil {
		logger.Fatal("cache init failed", zap.Error(err))
	}
	return mem
}
