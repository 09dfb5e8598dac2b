package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/rentsync"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Acquirer runs the acquisition pipeline for listing sites: fetch the
// rendered page, extract its main text, run the strategy chain,
// deduplicate, and reconcile the batch against the store.
type Acquirer struct {
	Fetcher   rentsync.Fetcher
	Extractor rentsync.Extractor
	Chain     *Chain
	Store     rentsync.Store
	Limiter   rentsync.DomainLimiter
	Logger    *slog.Logger

	// StaleAfter is how old the store's last_updated marker may be
	// before Query refreshes instead of serving the cache. Zero means
	// rentsync.DefaultRefreshInterval.
	StaleAfter time.Duration

	// Concurrency bounds parallel site refreshes in RefreshAll.
	Concurrency int

	// RetryDelays configures fetch retry backoff. Nil means
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	mu    sync.Mutex
	locks map[rentsync.Site]*sync.Mutex
}

// Acquire fetches a site, extracts its listings, and reconciles them
// against the store. Concurrent acquisitions of the same site are
// serialized; different sites proceed in parallel.
func (a *Acquirer) Acquire(ctx context.Context, rawURL string) (*rentsync.SyncResult, error) {
	site, err := rentsync.NormalizeSite(rawURL)
	if err != nil {
		return nil, err
	}

	lock := a.siteLock(site)
	lock.Lock()
	defer lock.Unlock()

	if a.Limiter != nil {
		if err := a.Limiter.Wait(ctx, string(site)); err != nil {
			return nil, err
		}
	}

	delays := a.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	page, err := FetchWithRetryDelays(ctx, rawURL, a.Fetcher.Fetch, delays)
	if err != nil {
		return nil, rentsync.Errorf(rentsync.EUNAVAILABLE, "fetch %s: %v", rawURL, err)
	}

	if page.Text == "" && a.Extractor != nil {
		if res, eerr := a.Extractor.Extract(page.HTML); eerr == nil {
			page.Text = res.Text
		} else {
			a.logger().Debug("main content extraction failed, strategies will fall back to raw markup",
				"site", site,
				"error", eerr,
			)
		}
	}

	records, err := a.Chain.Extract(ctx, page)
	if err != nil {
		return nil, err
	}
	batch := Deduplicate(records)
	if len(batch) == 0 {
		return nil, rentsync.Errorf(rentsync.ENOTFOUND, "no listings found at %s", rawURL)
	}

	existing, err := a.Store.ListingsBySite(ctx, site)
	if err != nil {
		return nil, err
	}

	plan := BuildPlan(existing, batch)
	result, err := a.Store.ApplyPlan(ctx, site, rawURL, plan)
	if err != nil {
		return nil, err
	}
	if err := a.Store.MarkUpdated(ctx); err != nil {
		return nil, err
	}

	a.logger().Info("site reconciled",
		"site", site,
		"observed", len(batch),
		"added_or_updated", result.AddedOrUpdated,
		"removed", result.Removed,
	)
	return result, nil
}

// Query returns a site's listings, refreshing first when the site has
// no cached listings or the store is stale. When a refresh of a
// previously seen site fails, the cached listings are served instead.
func (a *Acquirer) Query(ctx context.Context, rawURL string) ([]*rentsync.Listing, error) {
	site, err := rentsync.NormalizeSite(rawURL)
	if err != nil {
		return nil, err
	}

	cached, err := a.Store.ListingsBySite(ctx, site)
	if err != nil {
		return nil, err
	}

	maxAge := a.StaleAfter
	if maxAge <= 0 {
		maxAge = rentsync.DefaultRefreshInterval
	}
	stale, err := a.Store.Stale(ctx, maxAge)
	if err != nil {
		return nil, err
	}

	if len(cached) > 0 && !stale {
		return cached, nil
	}

	if _, err := a.Acquire(ctx, rawURL); err != nil {
		if len(cached) == 0 {
			return nil, err
		}
		a.logger().Warn("refresh failed, serving cached listings",
			"site", site,
			"error", err,
		)
		return cached, nil
	}

	return a.Store.ListingsBySite(ctx, site)
}

// RefreshAll re-acquires every site the store knows about, bounded by
// Concurrency. Per-site failures are logged and skipped; the returned
// map holds the result for each site that reconciled.
func (a *Acquirer) RefreshAll(ctx context.Context) (map[rentsync.Site]*rentsync.SyncResult, error) {
	sites, err := a.Store.Sites(ctx)
	if err != nil {
		return nil, err
	}

	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	runID := uuid.New().String()
	logger := a.logger().With("run_id", runID)
	logger.Info("refreshing all sites", "sites", len(sites))

	var mu sync.Mutex
	results := make(map[rentsync.Site]*rentsync.SyncResult, len(sites))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, partition := range sites {
		g.Go(func() error {
			result, err := a.Acquire(gctx, partition.URL)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Warn("site refresh failed",
					"site", partition.Site,
					"error", err,
				)
				return nil
			}
			mu.Lock()
			results[partition.Site] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (a *Acquirer) siteLock(site rentsync.Site) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.locks == nil {
		a.locks = make(map[rentsync.Site]*sync.Mutex)
	}
	lock, ok := a.locks[site]
	if !ok {
		lock = &sync.Mutex{}
		a.locks[site] = lock
	}
	return lock
}

func (a *Acquirer) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}
