package rentsync

import "context"

// Fetcher retrieves rendered page content from site URLs. The pipeline
// does not fetch pages itself; implementations may use browser
// automation to handle JavaScript-rendered listing sites.
type Fetcher interface {
	// Fetch navigates to the URL and returns the rendered page.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Page, error)

	// Close releases fetcher resources (e.g., the browser process).
	Close() error
}

// DomainLimiter rate-limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	Wait(ctx context.Context, domain string) error
}
