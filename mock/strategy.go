package mock

import (
	"context"

	"github.com/fwojciec/rentsync"
)

var _ rentsync.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of rentsync.Strategy.
type Strategy struct {
	NameVal   string
	ExtractFn func(ctx context.Context, page *rentsync.Page) ([]rentsync.Record, error)
}

func (s *Strategy) Extract(ctx context.Context, page *rentsync.Page) ([]rentsync.Record, error) {
	return s.ExtractFn(ctx, page)
}

func (s *Strategy) Name() string {
	return s.NameVal
}
