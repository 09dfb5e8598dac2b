// Package pipeline provides listing acquisition orchestration. It
// coordinates fetching, content extraction, the strategy chain,
// deduplication, and reconciliation against the listing store.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rentsync"
)

// Chain tries extraction strategies in priority order. The first
// strategy to yield records wins; a strategy error is recovered and
// treated as zero records so the next strategy gets its turn.
type Chain struct {
	strategies []rentsync.Strategy
	logger     *slog.Logger
}

// NewChain creates a Chain trying the given strategies in order.
func NewChain(logger *slog.Logger, strategies ...rentsync.Strategy) *Chain {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Chain{strategies: strategies, logger: logger}
}

// Extract runs the chain against a page and returns the first non-empty
// result set. It returns an error only when the context is canceled.
func (c *Chain) Extract(ctx context.Context, page *rentsync.Page) ([]rentsync.Record, error) {
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		begin := time.Now()
		records, err := s.Extract(ctx, page)
		if err != nil {
			c.logger.Debug("extraction strategy failed",
				"strategy", s.Name(),
				"url", page.URL,
				"error", err,
			)
			continue
		}
		if len(records) == 0 {
			continue
		}

		c.logger.Info("extraction strategy succeeded",
			"strategy", s.Name(),
			"url", page.URL,
			"records", len(records),
			"duration", time.Since(begin),
		)
		return records, nil
	}
	return nil, nil
}
