package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/application/service"
	"github.com/Kruzk02/grocery-store-api/internal/domain"
	"github.com/Kruzk02/grocery-store-api/internal/observability"
)

type OrderItemAPI interface {
	Create(ctx context.Context, in service.OrderItemInput) (*domain.OrderItem, error)
	Update(ctx context.Context, id int, in service.OrderItemInput) (*domain.OrderItem, error)
	Delete(ctx context.Context, id int) (bool, error)
	FindByID(ctx context.Context, id int) (*domain.OrderItem, error)
	FindByOrderID(ctx context.Context, orderID int) ([]domain.OrderItem, error)
	FindByProductID(ctx context.Context, productID int) ([]domain.OrderItem, error)
}

type ProductAPI interface {
	Create(ctx context.Context, in service.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int, in service.ProductInput) (*domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	Search(ctx context.Context, name string, skip, take int) (int, []domain.Product, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type OrderAPI interface {
	Create(ctx context.Context, in service.OrderInput) (*domain.Order, error)
	Update(ctx context.Context, id int, in service.OrderInput) (*domain.Order, error)
	FindByID(ctx context.Context, id int) (*domain.Order, error)
	FindByCustomerID(ctx context.Context, customerID int) ([]domain.Order, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type InventoryAPI interface {
	FindAll(ctx context.Context) ([]domain.Inventory, error)
	Create(ctx context.Context, in service.InventoryInput) (*domain.Inventory, error)
	Update(ctx context.Context, id int, in service.InventoryInput) (*domain.Inventory, error)
	FindByID(ctx context.Context, id int) (*domain.Inventory, error)
	Delete(ctx context.Context, id int) error
}

type CustomerAPI interface {
	Create(ctx context.Context, in service.CustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id int, in service.CustomerInput) (*domain.Customer, error)
	FindByID(ctx context.Context, id int) (*domain.Customer, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type CategoryAPI interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id int) (*domain.Category, error)
	Create(ctx context.Context, in service.CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id int, in service.CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id int) error
}

type NotificationAPI interface {
	FindByUserID(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id int) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID string) ([]domain.Notification, error)
	DeleteByID(ctx context.Context, id int) error
}

type UserAPI interface {
	Register(ctx context.Context, in service.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in service.LoginInput) (string, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in service.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type TokenParser interface {
	Parse(tokenString string) (*service.Claims, error)
}

type Server struct {
	orderItems    OrderItemAPI
	products      ProductAPI
	orders        OrderAPI
	inventories   InventoryAPI
	customers     CustomerAPI
	categories    CategoryAPI
	notifications NotificationAPI
	users         UserAPI
	tokens        TokenParser

	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
}

type Deps struct {
	OrderItems    OrderItemAPI
	Products      ProductAPI
	Orders        OrderAPI
	Inventories   InventoryAPI
	Customers     CustomerAPI
	Categories    CategoryAPI
	Notifications NotificationAPI
	Users         UserAPI
	Tokens        TokenParser
}

func New(deps Deps, logger *zap.Logger, metrics observability.Metrics) *Server {
	s := &Server{
		orderItems:    deps.OrderItems,
		products:      deps.Products,
		orders:        deps.Orders,
		inventories:   deps.Inventories,
		customers:     deps.Customers,
		categories:    deps.Categories,
		notifications: deps.Notifications,
		users:         deps.Users,
		tokens:        deps.Tokens,
		router:        chi.NewRouter(),
		logger:        logger,
		metrics:       metrics,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		s.requestLogger,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Post("/users/register", s.register)
	r.Post("/users/login", s.login)

	// Everything below needs a valid token; admin role gates mutations of
	// the catalog and stock.
	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/users/me", s.currentUser)
		r.Put("/users/me", s.updateCurrentUser)
		r.Delete("/users/{id}", s.requireRole(domain.RoleAdmin, s.deleteUser))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Get("/{id}", s.getCategory)
			r.Post("/", s.requireRole(domain.RoleAdmin, s.createCategory))
			r.Put("/{id}", s.requireRole(domain.RoleAdmin, s.updateCategory))
			r.Delete("/{id}", s.requireRole(domain.RoleAdmin, s.deleteCategory))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", s.createCustomer)
			r.Get("/{id}", s.getCustomer)
			r.Get("/{id}/orders", s.listOrdersByCustomer)
			r.Put("/{id}", s.updateCustomer)
			r.Delete("/{id}", s.requireRole(domain.RoleAdmin, s.deleteCustomer))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/search", s.searchProducts)
			r.Get("/{id}", s.getProduct)
			r.Get("/{id}/orderitems", s.listOrderItemsByProduct)
			r.Post("/", s.requireRole(domain.RoleAdmin, s.createProduct))
			r.Put("/{id}", s.requireRole(domain.RoleAdmin, s.updateProduct))
			r.Delete("/{id}", s.requireRole(domain.RoleAdmin, s.deleteProduct))
		})

		r.Route("/inventories", func(r chi.Router) {
			r.Get("/", s.listInventories)
			r.Get("/{id}", s.getInventory)
			r.Post("/", s.requireRole(domain.RoleAdmin, s.createInventory))
			r.Put("/{id}", s.requireRole(domain.RoleAdmin, s.updateInventory))
			r.Delete("/{id}", s.requireRole(domain.RoleAdmin, s.deleteInventory))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", s.createOrder)
			r.Get("/{id}", s.getOrder)
			r.Get("/{id}/orderitems", s.listOrderItemsByOrder)
			r.Put("/{id}", s.updateOrder)
			r.Delete("/{id}", s.requireRole(domain.RoleAdmin, s.deleteOrder))
		})

		r.Route("/orderitems", func(r chi.Router) {
			r.Post("/", s.requireRole(domain.RoleAdmin, s.createOrderItem))
			r.Get("/{id}", s.getOrderItem)
			r.Put("/{id}", s.requireRole(domain.RoleAdmin, s.updateOrderItem))
			r.Delete("/{id}", s.requireRole(domain.RoleAdmin, s.deleteOrderItem))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", s.listNotifications)
			r.Put("/{id}/read", s.markNotificationRead)
			r.Put("/read", s.markAllNotificationsRead)
			r.Delete("/{id}", s.deleteNotification)
		})
	})
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}
