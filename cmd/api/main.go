package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/gayabeauty/storefront-backend/api/routes"
	"github.com/gayabeauty/storefront-backend/internal/cart"
	"github.com/gayabeauty/storefront-backend/internal/catalog"
	"github.com/gayabeauty/storefront-backend/internal/checkout"
	"github.com/gayabeauty/storefront-backend/internal/orders"
	"github.com/gayabeauty/storefront-backend/internal/products"
	"github.com/gayabeauty/storefront-backend/internal/session"
	authsession "github.com/gayabeauty/storefront-backend/pkg/auth/session"
	"github.com/gayabeauty/storefront-backend/pkg/config"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
	"github.com/gayabeauty/storefront-backend/pkg/metrics"
	"github.com/gayabeauty/storefront-backend/pkg/redis"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/customerapi"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/orderapi"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/productapi"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := authsession.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	upstreamMetrics := metrics.NewUpstreamMetrics(registry)

	httpClient := &http.Client{Timeout: cfg.Upstream.RequestTimeout}

	productClient, err := productapi.NewClient(cfg.Upstream.ProductServiceURL,
		productapi.WithHTTPClient(httpClient),
		productapi.WithMetrics(upstreamMetrics),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create product client", err)
		os.Exit(1)
	}

	orderClient, err := orderapi.NewClient(cfg.Upstream.OrderServiceURL,
		orderapi.WithHTTPClient(httpClient),
		orderapi.WithMetrics(upstreamMetrics),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order client", err)
		os.Exit(1)
	}

	customerClient, err := customerapi.NewClient(cfg.Upstream.CustomerServiceURL,
		customerapi.WithHTTPClient(httpClient),
		customerapi.WithMetrics(upstreamMetrics),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create customer client", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(productClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartStore := cart.NewStore()

	checkoutService, err := checkout.NewService(cartStore, catalogService, orderClient, productClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	sessionService, err := session.NewService(customerClient, sessionManager, cfg.JWT, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create session service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orderClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(productClient, catalogService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	warmupCtx, cancelWarmup := context.WithTimeout(context.Background(), cfg.Catalog.RefreshTimeout)
	if _, err := catalogService.Refresh(warmupCtx); err != nil {
		logg.Warn(logg.WithField(context.Background(), "reason", err.Error()), "initial catalog refresh failed, will retry lazily")
	}
	cancelWarmup()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:          cfg,
			Logger:          logg,
			Redis:           redisClient,
			Sessions:        sessionManager,
			Registry:        registry,
			SessionService:  sessionService,
			CatalogService:  catalogService,
			CartStore:       cartStore,
			CheckoutService: checkoutService,
			OrderService:    orderService,
			ProductService:  productService,
		}),
	}

	if err := run(ctx, logg, server); err != nil {
		logg.Error(ctx, "storefront api stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "storefront api shut down cleanly")
}

func run(ctx context.Context, logg *logger.Logger, server *http.Server) error {
	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case err := <-serveErr:
		return err
	case <-signalCtx.Done():
	}

	logg.Info(ctx, "shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs error
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = multierr.Append(errs, err)
	}
	errs = multierr.Append(errs, <-serveErr)
	return errs
}
