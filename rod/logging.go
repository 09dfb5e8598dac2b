package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rentsync"
)

// Ensure LoggingFetcher implements rentsync.Fetcher.
var _ rentsync.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   rentsync.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next rentsync.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *rentsync.Page, err error) {
	defer func(begin time.Time) {
		var htmlBytes, textBytes int
		if page != nil {
			htmlBytes = len(page.HTML)
			textBytes = len(page.Text)
		}
		f.logger.Info("fetch",
			"url", url,
			"html_bytes", htmlBytes,
			"text_bytes", textBytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
