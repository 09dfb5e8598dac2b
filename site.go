package rentsync

import (
	"net/url"
	"strings"
	"time"
)

// Site is a normalized website host acting as the partition key for
// stored listings, e.g. "example.managebuilding.com".
type Site string

// SitePartition holds per-site store metadata.
type SitePartition struct {
	Site         Site       `json:"-"`
	URL          string     `json:"url"`
	LastScraped  *time.Time `json:"last_scraped"`
	ListingCount int        `json:"rental_count"`
}

// NormalizeSite reduces a raw site URL to its host. Scheme-less inputs
// are accepted ("example.com/path" normalizes to "example.com").
func NormalizeSite(rawURL string) (Site, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", Errorf(EINVALID, "site URL required")
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", Errorf(EINVALID, "invalid site URL %q", rawURL)
	}
	return Site(strings.ToLower(u.Host)), nil
}
