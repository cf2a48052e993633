package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gayabeauty/storefront-backend/api/controllers"
	"github.com/gayabeauty/storefront-backend/api/middleware"
	authsession "github.com/gayabeauty/storefront-backend/pkg/auth/session"
	"github.com/gayabeauty/storefront-backend/pkg/config"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
	pkgredis "github.com/gayabeauty/storefront-backend/pkg/redis"

	"github.com/gayabeauty/storefront-backend/internal/cart"
	"github.com/gayabeauty/storefront-backend/internal/catalog"
	"github.com/gayabeauty/storefront-backend/internal/checkout"
	"github.com/gayabeauty/storefront-backend/internal/orders"
	"github.com/gayabeauty/storefront-backend/internal/products"
	"github.com/gayabeauty/storefront-backend/internal/session"
)

// Dependencies carries everything the router mounts.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	Redis    *pkgredis.Client
	Sessions *authsession.Manager
	Registry *prometheus.Registry

	SessionService  session.Service
	CatalogService  catalog.Service
	CartStore       *cart.Store
	CheckoutService checkout.Service
	OrderService    orders.Service
	ProductService  products.Service
}

// NewRouter wires the HTTP surface: public catalog and auth endpoints, the
// authenticated cart/checkout/order flows, and the admin management routes.
func NewRouter(deps Dependencies) chi.Router {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.CORS(cfg.CORS))

	var (
		idempotencyStore pkgredis.IdempotencyStore
		pinger           pkgredis.Pinger
	)
	if deps.Redis != nil {
		idempotencyStore = deps.Redis
		pinger = deps.Redis
	}

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, pinger, deps.CatalogService))

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg))
			r.Post("/auth/login", controllers.AuthLogin(deps.SessionService, logg))
			r.With(middleware.Idempotency(idempotencyStore, logg)).
				Post("/auth/register", controllers.AuthRegister(deps.SessionService, logg))
		})

		r.Get("/products", controllers.CatalogList(deps.CatalogService, logg))
		r.Get("/products/{productId}", controllers.CatalogDetail(deps.CatalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(idempotencyStore, logg))

			r.Post("/auth/logout", controllers.AuthLogout(deps.SessionService, logg))

			r.Get("/cart", controllers.CartFetch(deps.CartStore, deps.CatalogService, logg))
			r.Post("/cart/items", controllers.CartAddItem(deps.CartStore, deps.CatalogService, logg))
			r.Patch("/cart/items/{productId}", controllers.CartAdjustQuantity(deps.CartStore, deps.CatalogService, logg))
			r.Delete("/cart/items/{productId}", controllers.CartRemoveItem(deps.CartStore, deps.CatalogService, logg))

			r.Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))
			r.Post("/checkout/buy-now", controllers.CheckoutBuyNow(deps.CheckoutService, logg))

			r.Get("/orders", controllers.OrdersMine(deps.OrderService, logg))
			r.Post("/orders/{orderId}/complete", controllers.OrderComplete(deps.OrderService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireAdmin(logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Get("/orders", controllers.AdminOrdersList(deps.OrderService, logg))
		r.Post("/orders/{orderId}/status", controllers.AdminOrderStatusUpdate(deps.OrderService, logg))

		r.Post("/products", controllers.AdminProductCreate(deps.ProductService, logg))
		r.Put("/products/{productId}", controllers.AdminProductUpdate(deps.ProductService, logg))
		r.Delete("/products/{productId}", controllers.AdminProductDelete(deps.ProductService, logg))
	})

	return r
}
