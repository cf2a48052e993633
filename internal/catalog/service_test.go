package catalog

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/types"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/productapi"
)

type stubLister struct {
	products []productapi.Product
	err      error
	calls    int
}

func (s *stubLister) ListProducts(ctx context.Context) ([]productapi.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func testProducts() []productapi.Product {
	return []productapi.Product{
		{ID: 1, Name: "Serum Vitamin C", Category: "Skincare", Price: types.Rupiah(150000), Stock: 12},
		{ID: 2, Name: "Lip Tint Merah", Category: "Makeup", Price: types.Rupiah(45000), Stock: 0},
		{ID: 3, Name: "Parfum Melati", Category: "Parfum", Price: types.Rupiah(250000), Stock: 3},
	}
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	t.Parallel()

	lister := &stubLister{products: testProducts()}
	svc, err := NewService(lister)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Len() != 3 {
		t.Fatalf("expected 3 products, got %d", first.Len())
	}

	lister.products = testProducts()[:1]
	second, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Len() != 1 {
		t.Fatalf("expected full replacement, got %d products", second.Len())
	}
	if svc.Latest() != second {
		t.Fatal("expected Latest to return the new snapshot")
	}
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	t.Parallel()

	lister := &stubLister{products: testProducts()}
	svc, err := NewService(lister)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lister.err = pkgerrors.New(pkgerrors.CodeDependency, "product service down")
	if _, err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh failure")
	}
	if svc.Latest() != snapshot {
		t.Fatal("expected failed refresh to keep the old snapshot")
	}
}

func TestSnapshotOrderable(t *testing.T) {
	t.Parallel()

	snapshot := NewSnapshot(time.Now(), []Product{
		{ID: 1, Name: "Serum", Stock: 12},
		{ID: 2, Name: "Lip Tint", Stock: 0},
	})

	if !snapshot.Orderable(1) {
		t.Fatal("expected in-stock product to be orderable")
	}
	if snapshot.Orderable(2) {
		t.Fatal("expected zero-stock product to be not orderable")
	}
	if snapshot.Orderable(99) {
		t.Fatal("expected unknown product to be not orderable")
	}
}

func TestListFiltersBySearchAndCategory(t *testing.T) {
	t.Parallel()

	lister := &stubLister{products: testProducts()}
	svc, err := NewService(lister)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := svc.List(context.Background(), ListQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products, got %d", len(all))
	}
	if lister.calls != 1 {
		t.Fatalf("expected lazy first refresh, got %d calls", lister.calls)
	}

	byName, err := svc.List(context.Background(), ListQuery{Search: "serum"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != 1 {
		t.Fatalf("unexpected search result: %+v", byName)
	}

	byCategory, err := svc.List(context.Background(), ListQuery{Category: "Makeup"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].ID != 2 {
		t.Fatalf("unexpected category result: %+v", byCategory)
	}

	if lister.calls != 1 {
		t.Fatalf("expected list to reuse the snapshot, got %d calls", lister.calls)
	}
}

func TestGetUnknownProduct(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubLister{products: testProducts()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Get(context.Background(), 42); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
