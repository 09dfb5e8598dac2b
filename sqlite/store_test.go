package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/rentsync"
	"github.com/fwojciec/rentsync/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MustOpenDB opens an in-memory database and registers cleanup.
func MustOpenDB(tb testing.TB) *sqlite.DB {
	tb.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(tb, db.Open())
	tb.Cleanup(func() { db.Close() })
	return db
}

func record(address, price string) rentsync.Record {
	return rentsync.Record{Title: address, Address: address, Price: price, Bedrooms: 2, Bathrooms: 1}
}

func TestStore_ApplyPlan_Creates(t *testing.T) {
	t.Parallel()
	store := sqlite.NewStore(MustOpenDB(t))
	ctx := context.Background()

	plan := &rentsync.SyncPlan{
		Creates: []rentsync.Record{
			record("100 First St", "$900"),
			record("200 Second St", "$1,000"),
		},
	}
	result, err := store.ApplyPlan(ctx, "example.com", "https://example.com/rentals", plan)
	require.NoError(t, err)
	assert.Equal(t, 2, result.AddedOrUpdated)
	assert.Equal(t, 0, result.Removed)

	listings, err := store.ListingsBySite(ctx, "example.com")
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "example.com_1", listings[0].ID)
	assert.Equal(t, "example.com_2", listings[1].ID)
	assert.Equal(t, "100 First St", listings[0].Data.Address)
	assert.Equal(t, "https://example.com/rentals", listings[0].SourceURL)
	assert.False(t, listings[0].ScrapedAt.IsZero())

	sites, err := store.Sites(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, rentsync.Site("example.com"), sites[0].Site)
	assert.Equal(t, 2, sites[0].ListingCount)
	require.NotNil(t, sites[0].LastScraped)
}

func TestStore_ApplyPlan_FullCycle(t *testing.T) {
	t.Parallel()
	store := sqlite.NewStore(MustOpenDB(t))
	ctx := context.Background()

	_, err := store.ApplyPlan(ctx, "example.com", "https://example.com", &rentsync.SyncPlan{
		Creates: []rentsync.Record{
			record("100 First St", "$900"),
			record("200 Second St", "$1,000"),
			record("300 Third St", "$1,100"),
		},
	})
	require.NoError(t, err)

	updated := record("100 First St", "$950")
	result, err := store.ApplyPlan(ctx, "example.com", "https://example.com", &rentsync.SyncPlan{
		Creates: []rentsync.Record{record("400 Fourth St", "$1,200")},
		Updates: []rentsync.ListingUpdate{{ID: "example.com_1", Data: updated}},
		Keeps:   []string{"example.com_2"},
		Removes: []string{"example.com_3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.AddedOrUpdated)
	assert.Equal(t, 1, result.Removed)

	listings, err := store.ListingsBySite(ctx, "example.com")
	require.NoError(t, err)
	require.Len(t, listings, 3)
	assert.Equal(t, "example.com_1", listings[0].ID, "updated listing keeps its id")
	assert.Equal(t, "$950", listings[0].Data.Price)
	assert.Equal(t, "example.com_2", listings[1].ID)
	assert.Equal(t, "example.com_4", listings[2].ID, "removed ids are never reused")

	sites, err := store.Sites(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sites[0].ListingCount)
}

func TestStore_ApplyPlan_UnchangedContentSkipped(t *testing.T) {
	t.Parallel()
	store := sqlite.NewStore(MustOpenDB(t))
	ctx := context.Background()

	rec := record("100 First St", "$900")
	_, err := store.ApplyPlan(ctx, "example.com", "https://example.com", &rentsync.SyncPlan{
		Creates: []rentsync.Record{rec},
	})
	require.NoError(t, err)

	// An update carrying identical data is detected by content hash.
	result, err := store.ApplyPlan(ctx, "example.com", "https://example.com", &rentsync.SyncPlan{
		Updates: []rentsync.ListingUpdate{{ID: "example.com_1", Data: rec}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.AddedOrUpdated)
	assert.Equal(t, 0, result.Removed)
}

func TestStore_ApplyPlan_KeepsLeftUntouched(t *testing.T) {
	t.Parallel()
	db := MustOpenDB(t)
	store := sqlite.NewStore(db)
	ctx := context.Background()

	_, err := store.ApplyPlan(ctx, "example.com", "https://example.com", &rentsync.SyncPlan{
		Creates: []rentsync.Record{record("100 First St", "$900")},
	})
	require.NoError(t, err)

	// Backdate the listing so a keep-path write would be visible.
	_, err = db.ExecContext(ctx, `UPDATE listings SET scraped_at = ? WHERE id = ?`,
		"2026-01-01T00:00:00Z", "example.com_1")
	require.NoError(t, err)

	result, err := store.ApplyPlan(ctx, "example.com", "https://example.com", &rentsync.SyncPlan{
		Keeps: []string{"example.com_1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.AddedOrUpdated)
	assert.Equal(t, 0, result.Removed)

	listings, err := store.ListingsBySite(ctx, "example.com")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.True(t, listings[0].ScrapedAt.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		"re-observed unchanged listing must be left untouched")
}

func TestStore_AllListings(t *testing.T) {
	t.Parallel()
	store := sqlite.NewStore(MustOpenDB(t))
	ctx := context.Background()

	_, err := store.ApplyPlan(ctx, "a.example.com", "https://a.example.com", &rentsync.SyncPlan{
		Creates: []rentsync.Record{record("100 First St", "$900")},
	})
	require.NoError(t, err)
	_, err = store.ApplyPlan(ctx, "b.example.com", "https://b.example.com", &rentsync.SyncPlan{
		Creates: []rentsync.Record{record("200 Second St", "$1,000")},
	})
	require.NoError(t, err)

	listings, err := store.AllListings(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, rentsync.Site("a.example.com"), listings[0].Site)
	assert.Equal(t, rentsync.Site("b.example.com"), listings[1].Site)
}

func TestStore_StaleAndMarkUpdated(t *testing.T) {
	t.Parallel()
	store := sqlite.NewStore(MustOpenDB(t))
	ctx := context.Background()

	stale, err := store.Stale(ctx, time.Hour)
	require.NoError(t, err)
	assert.True(t, stale, "a store that was never updated is stale")

	require.NoError(t, store.MarkUpdated(ctx))

	stale, err = store.Stale(ctx, time.Hour)
	require.NoError(t, err)
	assert.False(t, stale)

	stale, err = store.Stale(ctx, 0)
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestStore_Stale_UnparseableMarker(t *testing.T) {
	t.Parallel()
	db := MustOpenDB(t)
	store := sqlite.NewStore(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('last_updated', 'garbage')`)
	require.NoError(t, err)

	stale, err := store.Stale(ctx, time.Hour)
	require.NoError(t, err)
	assert.True(t, stale, "an unreadable last_updated marker reads as stale")
}

func TestStore_PurgeOlderThan(t *testing.T) {
	t.Parallel()
	store := sqlite.NewStore(MustOpenDB(t))
	ctx := context.Background()

	_, err := store.ApplyPlan(ctx, "example.com", "https://example.com", &rentsync.SyncPlan{
		Creates: []rentsync.Record{record("100 First St", "$900")},
	})
	require.NoError(t, err)

	n, err := store.PurgeOlderThan(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = store.PurgeOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	sites, err := store.Sites(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, 0, sites[0].ListingCount, "purge refreshes partition counts")
}
