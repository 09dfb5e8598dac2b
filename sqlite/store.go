package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/rentsync"
)

// Compile-time interface verification.
var _ rentsync.Store = (*Store)(nil)

// Store implements rentsync.Store using SQLite. Plans are applied in a
// single transaction; a failure mid-plan leaves the prior state intact.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// ListingsBySite retrieves all stored listings for a site in insertion order.
func (s *Store) ListingsBySite(ctx context.Context, site rentsync.Site) ([]*rentsync.Listing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, site, source_url, scraped_at, data
		FROM listings
		WHERE site = ?
		ORDER BY rowid
	`, string(site))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanListings(rows)
}

// AllListings retrieves every stored listing across all sites.
func (s *Store) AllListings(ctx context.Context) ([]*rentsync.Listing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, site, source_url, scraped_at, data
		FROM listings
		ORDER BY site, rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanListings(rows)
}

// Sites retrieves the per-site partitions.
func (s *Store) Sites(ctx context.Context) ([]*rentsync.SitePartition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT site, url, last_scraped, listing_count
		FROM sites
		ORDER BY site
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partitions []*rentsync.SitePartition
	for rows.Next() {
		var p rentsync.SitePartition
		var site string
		var lastScraped sql.NullString
		if err := rows.Scan(&site, &p.URL, &lastScraped, &p.ListingCount); err != nil {
			return nil, err
		}
		p.Site = rentsync.Site(site)
		if lastScraped.Valid {
			t, err := time.Parse(time.RFC3339, lastScraped.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse last_scraped: %w", err)
			}
			p.LastScraped = &t
		}
		partitions = append(partitions, &p)
	}
	return partitions, rows.Err()
}

// ApplyPlan commits a reconciliation plan for a site in one transaction.
// Creates draw ids from the site's counter; updates are skipped when the
// stored content hash already matches, so a redundant plan stays
// idempotent even if the planner missed it.
func (s *Store) ApplyPlan(ctx context.Context, site rentsync.Site, sourceURL string, plan *rentsync.SyncPlan) (*rentsync.SyncResult, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sites (site, url) VALUES (?, ?)
		ON CONFLICT(site) DO UPDATE SET url = excluded.url
	`, string(site), sourceURL)
	if err != nil {
		return nil, err
	}

	var nextID int64
	if err := tx.QueryRowContext(ctx, `SELECT next_id FROM sites WHERE site = ?`, string(site)).Scan(&nextID); err != nil {
		return nil, err
	}

	result := &rentsync.SyncResult{}

	for _, rec := range plan.Creates {
		id := fmt.Sprintf("%s_%d", site, nextID)
		nextID++

		data, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO listings (id, site, source_url, scraped_at, data, content_hash)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, string(site), sourceURL, now, string(data), rec.Hash())
		if err != nil {
			return nil, err
		}
		result.AddedOrUpdated++
	}

	for _, u := range plan.Updates {
		data, err := json.Marshal(u.Data)
		if err != nil {
			return nil, err
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE listings
			SET data = ?, content_hash = ?, scraped_at = ?, source_url = ?
			WHERE id = ? AND content_hash <> ?
		`, string(data), u.Data.Hash(), now, sourceURL, u.ID, u.Data.Hash())
		if err != nil {
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		result.AddedOrUpdated += int(n)
	}

	for _, id := range plan.Removes {
		res, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE id = ? AND site = ?`, id, string(site))
		if err != nil {
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		result.Removed += int(n)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE sites
		SET next_id = ?,
		    last_scraped = ?,
		    listing_count = (SELECT COUNT(*) FROM listings WHERE site = ?)
		WHERE site = ?
	`, nextID, now, string(site), string(site))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// Stale reports whether the last_updated marker is unset or older than maxAge.
func (s *Store) Stale(ctx context.Context, maxAge time.Duration) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'last_updated'`).Scan(&value)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	last, err := time.Parse(time.RFC3339, value)
	if err != nil {
		// An unreadable marker means freshness is unknown; treat it as
		// stale so the next acquisition rewrites it.
		return true, nil
	}
	return time.Since(last) > maxAge, nil
}

// MarkUpdated sets the last_updated marker to now.
func (s *Store) MarkUpdated(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES ('last_updated', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().UTC().Format(time.RFC3339))
	return err
}

// PurgeOlderThan deletes listings whose scraped_at predates the cutoff
// and refreshes per-site listing counts.
func (s *Store) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Stored timestamps are uniform RFC3339 UTC, so string comparison
	// orders them chronologically.
	res, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE scraped_at < ?`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE sites
		SET listing_count = (SELECT COUNT(*) FROM listings WHERE listings.site = sites.site)
	`)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanListings(rows *sql.Rows) ([]*rentsync.Listing, error) {
	var listings []*rentsync.Listing
	for rows.Next() {
		var l rentsync.Listing
		var site, scrapedAt, data string
		if err := rows.Scan(&l.ID, &site, &l.SourceURL, &scrapedAt, &data); err != nil {
			return nil, err
		}
		l.Site = rentsync.Site(site)

		t, err := time.Parse(time.RFC3339, scrapedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse scraped_at: %w", err)
		}
		l.ScrapedAt = t

		if err := json.Unmarshal([]byte(data), &l.Data); err != nil {
			return nil, fmt.Errorf("failed to decode listing data: %w", err)
		}
		listings = append(listings, &l)
	}
	return listings, rows.Err()
}
