package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gayabeauty/storefront-backend/pkg/enums"
)

func TestSnapshotLookupAndOrderable(t *testing.T) {
	t.Parallel()

	fetchedAt := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	snapshot := NewSnapshot(fetchedAt, []Product{
		{ID: 1, Name: "Serum Vitamin C", Category: enums.ProductCategorySkincare, Price: 150000, Stock: 5},
		{ID: 2, Name: "Lip Tint Cherry", Category: enums.ProductCategoryMakeup, Price: 45000, Stock: 0},
	})

	require.Equal(t, fetchedAt, snapshot.FetchedAt())
	require.Equal(t, 2, snapshot.Len())

	p, ok := snapshot.Lookup(1)
	require.True(t, ok)
	require.Equal(t, "Serum Vitamin C", p.Name)

	_, ok = snapshot.Lookup(99)
	require.False(t, ok)

	require.True(t, snapshot.Orderable(1))
	require.False(t, snapshot.Orderable(2), "zero stock is not orderable")
	require.False(t, snapshot.Orderable(99), "missing product is not orderable")
}

func TestSnapshotDuplicateIDsKeepLast(t *testing.T) {
	t.Parallel()

	snapshot := NewSnapshot(time.Now(), []Product{
		{ID: 1, Name: "Old Name", Stock: 0},
		{ID: 1, Name: "New Name", Stock: 3},
	})

	p, ok := snapshot.Lookup(1)
	require.True(t, ok)
	require.Equal(t, "New Name", p.Name)
	require.True(t, snapshot.Orderable(1))
}

func TestSnapshotIsImmutable(t *testing.T) {
	t.Parallel()

	source := []Product{{ID: 1, Name: "Serum Vitamin C", Stock: 5}}
	snapshot := NewSnapshot(time.Now(), source)

	source[0].Name = "mutated"
	p, _ := snapshot.Lookup(1)
	require.Equal(t, "Serum Vitamin C", p.Name)

	out := snapshot.Products()
	out[0].Name = "mutated again"
	p, _ = snapshot.Lookup(1)
	require.Equal(t, "Serum Vitamin C", p.Name)
}

func TestNilSnapshotIsSafe(t *testing.T) {
	t.Parallel()

	var snapshot *Snapshot
	require.Zero(t, snapshot.Len())
	require.Nil(t, snapshot.Products())
	require.False(t, snapshot.Orderable(1))
	_, ok := snapshot.Lookup(1)
	require.False(t, ok)
}
