package rentsync

import "context"

// Page is a site's rendered content as supplied by a Fetcher. HTML is
// always present; Text is the page's main textual content and may be
// filled in later from HTML by an Extractor.
type Page struct {
	URL  string
	HTML string
	Text string
}

// Strategy extracts candidate records from a page using one heuristic.
// Strategies are tried in priority order by the pipeline chain: a
// strategy that yields no records (or fails) hands off to the next one,
// and the first non-empty result set wins.
type Strategy interface {
	// Extract scans the page and returns zero or more candidate records.
	// An error is recovered by the chain and treated as zero records.
	Extract(ctx context.Context, page *Page) ([]Record, error)

	// Name returns the strategy's identifier (e.g., "structural", "gemini").
	Name() string
}
