package rentsync

import (
	"context"
	"time"
)

// DefaultRefreshInterval is how long cached listings are served before
// the store reports itself stale.
const DefaultRefreshInterval = 24 * time.Hour

// ListingUpdate pairs an existing listing id with its freshly observed
// data.
type ListingUpdate struct {
	ID   string
	Data Record
}

// SyncPlan is the diff between a deduplicated batch of observed records
// and a site's stored listings, computed by the reconciliation engine
// and applied atomically by a Store.
type SyncPlan struct {
	// Creates are observed records with no stored identity match.
	Creates []Record

	// Updates are stored listings whose tracked fields changed.
	Updates []ListingUpdate

	// Keeps are ids of stored listings re-observed without change.
	// Stores leave them untouched; they are recorded for logging and
	// for the touched-set bookkeeping that protects them from removal.
	Keeps []string

	// Removes are ids of stored listings the site no longer reports.
	Removes []string
}

// Empty reports whether applying the plan would change nothing.
func (p *SyncPlan) Empty() bool {
	return len(p.Creates) == 0 && len(p.Updates) == 0 && len(p.Removes) == 0
}

// SyncResult reports the outcome of a reconciliation pass.
type SyncResult struct {
	// AddedOrUpdated counts listings created or rewritten.
	AddedOrUpdated int

	// Removed counts listings deleted because the site no longer
	// reports them.
	Removed int
}

// Store is a durable listing store partitioned by site. Implementations
// must apply a SyncPlan atomically: either the whole plan commits, with
// all partition bookkeeping, or the prior state is retained.
//
// Concurrent ApplyPlan calls for the same site are not safe; the caller
// serializes syncs per site.
type Store interface {
	// ListingsBySite returns all stored listings for a site.
	ListingsBySite(ctx context.Context, site Site) ([]*Listing, error)

	// AllListings returns every stored listing across all sites.
	AllListings(ctx context.Context) ([]*Listing, error)

	// Sites returns the per-site partitions.
	Sites(ctx context.Context) ([]*SitePartition, error)

	// ApplyPlan commits a reconciliation plan for a site: creates get
	// fresh ids from the site's counter, updates rewrite data and bump
	// scraped_at, keeps are left untouched, removes delete, and the
	// partition's last_scraped and listing_count are refreshed.
	ApplyPlan(ctx context.Context, site Site, sourceURL string, plan *SyncPlan) (*SyncResult, error)

	// Stale reports whether the store's global last_updated marker is
	// unset or older than maxAge.
	Stale(ctx context.Context, maxAge time.Duration) (bool, error)

	// MarkUpdated sets the global last_updated marker to now.
	MarkUpdated(ctx context.Context) error

	// PurgeOlderThan deletes listings whose scraped_at predates the
	// cutoff and returns how many were deleted. Housekeeping only;
	// independent of per-site reconciliation.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Close releases store resources.
	Close() error
}
