package mock

import (
	"context"
	"time"

	"github.com/fwojciec/rentsync"
)

var _ rentsync.Store = (*Store)(nil)

// Store is a mock implementation of rentsync.Store.
type Store struct {
	ListingsBySiteFn func(ctx context.Context, site rentsync.Site) ([]*rentsync.Listing, error)
	AllListingsFn    func(ctx context.Context) ([]*rentsync.Listing, error)
	SitesFn          func(ctx context.Context) ([]*rentsync.SitePartition, error)
	ApplyPlanFn      func(ctx context.Context, site rentsync.Site, sourceURL string, plan *rentsync.SyncPlan) (*rentsync.SyncResult, error)
	StaleFn          func(ctx context.Context, maxAge time.Duration) (bool, error)
	MarkUpdatedFn    func(ctx context.Context) error
	PurgeOlderThanFn func(ctx context.Context, cutoff time.Time) (int, error)
	CloseFn          func() error
}

func (s *Store) ListingsBySite(ctx context.Context, site rentsync.Site) ([]*rentsync.Listing, error) {
	return s.ListingsBySiteFn(ctx, site)
}

func (s *Store) AllListings(ctx context.Context) ([]*rentsync.Listing, error) {
	return s.AllListingsFn(ctx)
}

func (s *Store) Sites(ctx context.Context) ([]*rentsync.SitePartition, error) {
	return s.SitesFn(ctx)
}

func (s *Store) ApplyPlan(ctx context.Context, site rentsync.Site, sourceURL string, plan *rentsync.SyncPlan) (*rentsync.SyncResult, error) {
	return s.ApplyPlanFn(ctx, site, sourceURL, plan)
}

func (s *Store) Stale(ctx context.Context, maxAge time.Duration) (bool, error) {
	return s.StaleFn(ctx, maxAge)
}

func (s *Store) MarkUpdated(ctx context.Context) error {
	if s.MarkUpdatedFn == nil {
		return nil
	}
	return s.MarkUpdatedFn(ctx)
}

func (s *Store) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	return s.PurgeOlderThanFn(ctx, cutoff)
}

func (s *Store) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
