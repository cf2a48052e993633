package catalog

import (
	"time"

	"github.com/gayabeauty/storefront-backend/pkg/enums"
	"github.com/gayabeauty/storefront-backend/pkg/types"
)

// Product is one catalog entry as held in a snapshot.
type Product struct {
	ID          int64
	Name        string
	Description string
	Category    enums.ProductCategory
	Price       types.Rupiah
	Stock       int
	ImageURL    string
}

// Snapshot is an immutable view of the catalog taken at one point in time.
// A refresh replaces the whole snapshot; entries are never patched in place.
type Snapshot struct {
	fetchedAt time.Time
	products  []Product
	index     map[int64]int
}

// NewSnapshot builds a snapshot from the given products. Duplicate IDs keep
// the last occurrence.
func NewSnapshot(fetchedAt time.Time, products []Product) *Snapshot {
	copied := make([]Product, len(products))
	copy(copied, products)

	index := make(map[int64]int, len(copied))
	for i, p := range copied {
		index[p.ID] = i
	}

	return &Snapshot{
		fetchedAt: fetchedAt,
		products:  copied,
		index:     index,
	}
}

// FetchedAt reports when the snapshot was taken.
func (s *Snapshot) FetchedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.fetchedAt
}

// Products returns a copy of the catalog entries in upstream order.
func (s *Snapshot) Products() []Product {
	if s == nil {
		return nil
	}
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Lookup returns the entry with the given ID.
func (s *Snapshot) Lookup(id int64) (Product, bool) {
	if s == nil {
		return Product{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i], true
}

// Orderable reports whether the product exists and has stock available.
func (s *Snapshot) Orderable(id int64) bool {
	p, ok := s.Lookup(id)
	return ok && p.Stock > 0
}

// Len returns the number of catalog entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.products)
}
