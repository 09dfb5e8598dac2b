package mock

import (
	"context"

	"github.com/fwojciec/rentsync"
)

var _ rentsync.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of rentsync.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*rentsync.Page, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*rentsync.Page, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ rentsync.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of rentsync.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
