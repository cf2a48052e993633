package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/productapi"
)

type productLister interface {
	ListProducts(ctx context.Context) ([]productapi.Product, error)
}

// ListQuery filters the catalog listing. Zero values mean no filtering.
type ListQuery struct {
	Search   string
	Category enums.ProductCategory
}

// Service holds the current catalog snapshot and refreshes it from the
// product service.
type Service interface {
	Refresh(ctx context.Context) (*Snapshot, error)
	Latest() *Snapshot
	List(ctx context.Context, query ListQuery) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
}

type service struct {
	products productLister
	now      func() time.Time

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewService builds a catalog service backed by the product service client.
func NewService(products productLister) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product lister required")
	}
	return &service{
		products: products,
		now:      time.Now,
	}, nil
}

// Refresh fetches the catalog and replaces the held snapshot wholesale. On
// failure the previous snapshot stays in place.
func (s *service) Refresh(ctx context.Context) (*Snapshot, error) {
	upstream, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh catalog")
	}

	products := make([]Product, 0, len(upstream))
	for _, p := range upstream {
		products = append(products, fromUpstream(p))
	}
	snapshot := NewSnapshot(s.now(), products)

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	return snapshot, nil
}

// Latest returns the held snapshot, or nil before the first refresh.
func (s *service) Latest() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// List returns catalog entries matching the query, refreshing first if no
// snapshot has been taken yet.
func (s *service) List(ctx context.Context, query ListQuery) ([]Product, error) {
	snapshot := s.Latest()
	if snapshot == nil {
		var err error
		snapshot, err = s.Refresh(ctx)
		if err != nil {
			return nil, err
		}
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	out := make([]Product, 0, snapshot.Len())
	for _, p := range snapshot.Products() {
		if query.Category != "" && p.Category != query.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Get returns one catalog entry, refreshing first if no snapshot exists.
func (s *service) Get(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}

	snapshot := s.Latest()
	if snapshot == nil {
		var err error
		snapshot, err = s.Refresh(ctx)
		if err != nil {
			return nil, err
		}
	}

	p, ok := snapshot.Lookup(id)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

func fromUpstream(p productapi.Product) Product {
	category, err := enums.ParseProductCategory(p.Category)
	if err != nil {
		category = enums.ProductCategoryOther
	}
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    category,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
	}
}
