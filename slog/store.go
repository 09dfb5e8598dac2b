// Package slog provides logging decorators for rentsync services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rentsync"
)

// Ensure LoggingStore implements rentsync.Store.
var _ rentsync.Store = (*LoggingStore)(nil)

// LoggingStore wraps a Store with logging on its mutating operations.
// Reads stay quiet; they are frequent and cheap.
type LoggingStore struct {
	next   rentsync.Store
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next rentsync.Store, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// ListingsBySite delegates to the wrapped store.
func (s *LoggingStore) ListingsBySite(ctx context.Context, site rentsync.Site) ([]*rentsync.Listing, error) {
	return s.next.ListingsBySite(ctx, site)
}

// AllListings delegates to the wrapped store.
func (s *LoggingStore) AllListings(ctx context.Context) ([]*rentsync.Listing, error) {
	return s.next.AllListings(ctx)
}

// Sites delegates to the wrapped store.
func (s *LoggingStore) Sites(ctx context.Context) ([]*rentsync.SitePartition, error) {
	return s.next.Sites(ctx)
}

// ApplyPlan logs the plan's shape and outcome and delegates.
func (s *LoggingStore) ApplyPlan(ctx context.Context, site rentsync.Site, sourceURL string, plan *rentsync.SyncPlan) (result *rentsync.SyncResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("apply plan",
			"site", site,
			"creates", len(plan.Creates),
			"updates", len(plan.Updates),
			"keeps", len(plan.Keeps),
			"removes", len(plan.Removes),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ApplyPlan(ctx, site, sourceURL, plan)
}

// Stale delegates to the wrapped store.
func (s *LoggingStore) Stale(ctx context.Context, maxAge time.Duration) (bool, error) {
	return s.next.Stale(ctx, maxAge)
}

// MarkUpdated delegates to the wrapped store.
func (s *LoggingStore) MarkUpdated(ctx context.Context) error {
	return s.next.MarkUpdated(ctx)
}

// PurgeOlderThan logs the purge outcome and delegates.
func (s *LoggingStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (deleted int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("purge",
			"cutoff", cutoff,
			"deleted", deleted,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PurgeOlderThan(ctx, cutoff)
}

// Close delegates to the wrapped store.
func (s *LoggingStore) Close() error {
	return s.next.Close()
}
