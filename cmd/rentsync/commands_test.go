package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/rentsync"
	main "github.com/fwojciec/rentsync/cmd/rentsync"
	"github.com/fwojciec/rentsync/mock"
	"github.com/fwojciec/rentsync/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(store *mock.Store) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Store:  store,
	}, stdout, stderr
}

func TestListingsCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists all stored listings", func(t *testing.T) {
		t.Parallel()

		store := &mock.Store{
			AllListingsFn: func(ctx context.Context) ([]*rentsync.Listing, error) {
				return []*rentsync.Listing{{
					ID:   "example.com_1",
					Site: "example.com",
					Data: rentsync.Record{
						Address:       "42 Oak Ave",
						Price:         "$975",
						Bedrooms:      2,
						Bathrooms:     1,
						AvailableDate: "Immediate",
					},
				}}, nil
			},
		}
		deps, stdout, stderr := testDeps(store)

		cmd := &main.ListingsCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "example.com_1")
		assert.Contains(t, stdout.String(), "42 Oak Ave")
		assert.Contains(t, stdout.String(), "$975")
		assert.Contains(t, stdout.String(), "2 bed")
		assert.Empty(t, stderr.String())
	})

	t.Run("filters by site", func(t *testing.T) {
		t.Parallel()

		store := &mock.Store{
			ListingsBySiteFn: func(ctx context.Context, site rentsync.Site) ([]*rentsync.Listing, error) {
				assert.Equal(t, rentsync.Site("example.com"), site)
				return nil, nil
			},
		}
		deps, stdout, _ := testDeps(store)

		cmd := &main.ListingsCmd{URL: "https://example.com/rentals"}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No listings found")
	})

	t.Run("outputs JSON", func(t *testing.T) {
		t.Parallel()

		store := &mock.Store{
			AllListingsFn: func(ctx context.Context) ([]*rentsync.Listing, error) {
				return []*rentsync.Listing{{
					ID:   "example.com_1",
					Site: "example.com",
					Data: rentsync.Record{Address: "42 Oak Ave", Price: "$975"},
				}}, nil
			},
		}
		deps, stdout, _ := testDeps(store)

		cmd := &main.ListingsCmd{JSON: true}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), `"id": "example.com_1"`)
		assert.Contains(t, stdout.String(), `"website": "example.com"`)
	})
}

func TestSitesCmd(t *testing.T) {
	t.Parallel()

	lastScraped := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	store := &mock.Store{
		SitesFn: func(ctx context.Context) ([]*rentsync.SitePartition, error) {
			return []*rentsync.SitePartition{{
				Site:         "example.com",
				URL:          "https://example.com/rentals",
				LastScraped:  &lastScraped,
				ListingCount: 3,
			}}, nil
		},
	}
	deps, stdout, _ := testDeps(store)

	cmd := &main.SitesCmd{}
	require.NoError(t, cmd.Run(deps))
	assert.Contains(t, stdout.String(), "example.com")
	assert.Contains(t, stdout.String(), "3 listings")
	assert.Contains(t, stdout.String(), "2026-08-30")
}

func TestPurgeCmd(t *testing.T) {
	t.Parallel()

	t.Run("purges old listings", func(t *testing.T) {
		t.Parallel()

		store := &mock.Store{
			PurgeOlderThanFn: func(ctx context.Context, cutoff time.Time) (int, error) {
				assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), cutoff, time.Minute)
				return 2, nil
			},
		}
		deps, stdout, _ := testDeps(store)

		cmd := &main.PurgeCmd{Days: 30}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "Deleted 2 listings")
	})

	t.Run("rejects non-positive days", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(&mock.Store{})

		cmd := &main.PurgeCmd{Days: 0}
		require.Error(t, cmd.Run(deps))
	})
}

func TestRefreshCmd(t *testing.T) {
	t.Parallel()

	t.Run("refreshes a single site", func(t *testing.T) {
		t.Parallel()

		store := &mock.Store{
			ListingsBySiteFn: func(ctx context.Context, site rentsync.Site) ([]*rentsync.Listing, error) {
				return nil, nil
			},
			ApplyPlanFn: func(ctx context.Context, site rentsync.Site, sourceURL string, plan *rentsync.SyncPlan) (*rentsync.SyncResult, error) {
				return &rentsync.SyncResult{AddedOrUpdated: len(plan.Creates)}, nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*rentsync.Page, error) {
				return &rentsync.Page{URL: url, Text: "listing text"}, nil
			},
		}
		strategy := &mock.Strategy{
			NameVal: "test",
			ExtractFn: func(ctx context.Context, page *rentsync.Page) ([]rentsync.Record, error) {
				return []rentsync.Record{{Address: "42 Oak Ave", Price: "$975"}}, nil
			},
		}

		deps, stdout, _ := testDeps(store)
		deps.Acquirer = &pipeline.Acquirer{
			Fetcher: fetcher,
			Chain:   pipeline.NewChain(nil, strategy),
			Store:   store,
		}

		cmd := &main.RefreshCmd{URL: "https://example.com/rentals"}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "1 added or updated, 0 removed")
	})

	t.Run("requires a URL without --all", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(&mock.Store{})

		cmd := &main.RefreshCmd{}
		require.Error(t, cmd.Run(deps))
	})
}
