// Package fs provides a single-file JSON listing store. It suits small
// deployments where the whole dataset fits comfortably in memory and a
// human-readable data file is worth more than query speed.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/rentsync"
)

// Ensure Store implements rentsync.Store at compile time.
var _ rentsync.Store = (*Store)(nil)

// sitePartition adds the id counter, which is store bookkeeping rather
// than part of the domain partition.
type sitePartition struct {
	rentsync.SitePartition
	NextID int64 `json:"next_id"`
}

// root is the on-disk document.
type root struct {
	LastUpdated string                       `json:"last_updated"`
	Websites    map[string]*sitePartition    `json:"websites"`
	Rentals     map[string]*rentsync.Listing `json:"rentals"`
}

func newRoot() *root {
	return &root{
		Websites: make(map[string]*sitePartition),
		Rentals:  make(map[string]*rentsync.Listing),
	}
}

// Store implements rentsync.Store on a single JSON file. Saves go
// through a temp file and rename, so a crash mid-write leaves the
// previous file intact.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a Store backed by the JSON file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// load reads the data file. A missing or unreadable file yields an
// empty document; the store self-heals on the next save.
func (s *Store) load() *root {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return newRoot()
	}
	var r root
	if err := json.Unmarshal(raw, &r); err != nil {
		return newRoot()
	}
	if r.Websites == nil {
		r.Websites = make(map[string]*sitePartition)
	}
	if r.Rentals == nil {
		r.Rentals = make(map[string]*rentsync.Listing)
	}
	return &r
}

func (s *Store) save(r *root) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// ListingsBySite returns a site's listings ordered by id.
func (s *Store) ListingsBySite(ctx context.Context, site rentsync.Site) ([]*rentsync.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.load()
	var listings []*rentsync.Listing
	for _, l := range r.Rentals {
		if l.Site == site {
			listings = append(listings, l)
		}
	}
	sortListings(listings)
	return listings, nil
}

// AllListings returns every stored listing ordered by site and id.
func (s *Store) AllListings(ctx context.Context) ([]*rentsync.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.load()
	listings := make([]*rentsync.Listing, 0, len(r.Rentals))
	for _, l := range r.Rentals {
		listings = append(listings, l)
	}
	sortListings(listings)
	return listings, nil
}

// Sites returns the per-site partitions ordered by site.
func (s *Store) Sites(ctx context.Context) ([]*rentsync.SitePartition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.load()
	partitions := make([]*rentsync.SitePartition, 0, len(r.Websites))
	for site, p := range r.Websites {
		partition := p.SitePartition
		partition.Site = rentsync.Site(site)
		partitions = append(partitions, &partition)
	}
	sort.Slice(partitions, func(i, j int) bool { return partitions[i].Site < partitions[j].Site })
	return partitions, nil
}

// ApplyPlan commits a reconciliation plan. The document is mutated in
// memory and persisted with one atomic save.
func (s *Store) ApplyPlan(ctx context.Context, site rentsync.Site, sourceURL string, plan *rentsync.SyncPlan) (*rentsync.SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.load()
	now := time.Now().UTC()

	partition, ok := r.Websites[string(site)]
	if !ok {
		partition = &sitePartition{NextID: 1}
		r.Websites[string(site)] = partition
	}
	partition.URL = sourceURL

	result := &rentsync.SyncResult{}

	for _, rec := range plan.Creates {
		id := fmt.Sprintf("%s_%d", site, partition.NextID)
		partition.NextID++
		r.Rentals[id] = &rentsync.Listing{
			ID:        id,
			Site:      site,
			SourceURL: sourceURL,
			ScrapedAt: now,
			Data:      rec,
		}
		result.AddedOrUpdated++
	}

	for _, u := range plan.Updates {
		l, ok := r.Rentals[u.ID]
		if !ok || l.Site != site {
			continue
		}
		if l.Data.Hash() == u.Data.Hash() {
			continue
		}
		l.Data = u.Data
		l.SourceURL = sourceURL
		l.ScrapedAt = now
		result.AddedOrUpdated++
	}

	for _, id := range plan.Removes {
		if l, ok := r.Rentals[id]; ok && l.Site == site {
			delete(r.Rentals, id)
			result.Removed++
		}
	}

	count := 0
	for _, l := range r.Rentals {
		if l.Site == site {
			count++
		}
	}
	partition.ListingCount = count
	partition.LastScraped = &now

	if err := s.save(r); err != nil {
		return nil, err
	}
	return result, nil
}

// Stale reports whether last_updated is unset or older than maxAge.
func (s *Store) Stale(ctx context.Context, maxAge time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.load()
	if r.LastUpdated == "" {
		return true, nil
	}
	last, err := time.Parse(time.RFC3339, r.LastUpdated)
	if err != nil {
		// An unreadable marker means freshness is unknown; treat it as
		// stale so the next acquisition rewrites it.
		return true, nil
	}
	return time.Since(last) > maxAge, nil
}

// MarkUpdated sets last_updated to now.
func (s *Store) MarkUpdated(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.load()
	r.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return s.save(r)
}

// PurgeOlderThan deletes listings scraped before the cutoff and
// refreshes partition counts.
func (s *Store) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.load()
	deleted := 0
	for id, l := range r.Rentals {
		if l.ScrapedAt.Before(cutoff) {
			delete(r.Rentals, id)
			deleted++
		}
	}
	if deleted == 0 {
		return 0, nil
	}

	for site, partition := range r.Websites {
		count := 0
		for _, l := range r.Rentals {
			if string(l.Site) == site {
				count++
			}
		}
		partition.ListingCount = count
	}

	if err := s.save(r); err != nil {
		return 0, err
	}
	return deleted, nil
}

// Close is a no-op; the file is not held open between operations.
func (s *Store) Close() error {
	return nil
}

// sortListings orders by site, then by the numeric id suffix, which
// matches insertion order within a site.
func sortListings(listings []*rentsync.Listing) {
	sort.Slice(listings, func(i, j int) bool {
		if listings[i].Site != listings[j].Site {
			return listings[i].Site < listings[j].Site
		}
		return idNumber(listings[i].ID) < idNumber(listings[j].ID)
	})
}

func idNumber(id string) int {
	idx := strings.LastIndex(id, "_")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return 0
	}
	return n
}
