package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gayabeauty/storefront-backend/internal/cart"
	"github.com/gayabeauty/storefront-backend/internal/catalog"
	"github.com/gayabeauty/storefront-backend/pkg/config"
	"github.com/gayabeauty/storefront-backend/pkg/enums"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
)

type stubCatalogService struct {
	snapshot *catalog.Snapshot
}

func (s *stubCatalogService) Refresh(ctx context.Context) (*catalog.Snapshot, error) {
	return s.snapshot, nil
}

func (s *stubCatalogService) Latest() *catalog.Snapshot { return s.snapshot }

func (s *stubCatalogService) List(ctx context.Context, query catalog.ListQuery) ([]catalog.Product, error) {
	return s.snapshot.Products(), nil
}

func (s *stubCatalogService) Get(ctx context.Context, id int64) (*catalog.Product, error) {
	p, _ := s.snapshot.Lookup(id)
	return &p, nil
}

func testRouter() http.Handler {
	return NewRouter(Dependencies{
		Config: &config.Config{
			App: config.AppConfig{Env: "dev", Port: "8080"},
			JWT: config.JWTConfig{Secret: "test-secret", Issuer: "gaya-test", ExpirationMinutes: 15},
		},
		Logger: logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		CatalogService: &stubCatalogService{
			snapshot: catalog.NewSnapshot(time.Now(), []catalog.Product{
				{ID: 1, Name: "Serum Vitamin C", Category: enums.ProductCategorySkincare, Price: 150000, Stock: 5},
			}),
		},
		CartStore: cart.NewStore(),
	})
}

func TestRouterServesPublicCatalog(t *testing.T) {
	t.Parallel()

	handler := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for public catalog, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for product detail, got %d", rec.Code)
	}
}

func TestRouterServesLiveness(t *testing.T) {
	t.Parallel()

	handler := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness, got %d", rec.Code)
	}
}

func TestRouterGuardsAuthenticatedRoutes(t *testing.T) {
	t.Parallel()

	handler := testRouter()

	for _, target := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/checkout"},
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodGet, "/api/admin/v1/orders"},
	} {
		req := httptest.NewRequest(target.method, target.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", target.method, target.path, rec.Code)
		}
	}
}
