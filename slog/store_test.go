package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/rentsync"
	"github.com/fwojciec/rentsync/mock"
	rentsyncslog "github.com/fwojciec/rentsync/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingStore_ApplyPlan(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := &mock.Store{
		ApplyPlanFn: func(ctx context.Context, site rentsync.Site, sourceURL string, plan *rentsync.SyncPlan) (*rentsync.SyncResult, error) {
			return &rentsync.SyncResult{AddedOrUpdated: 1}, nil
		},
	}

	store := rentsyncslog.NewLoggingStore(next, logger)
	result, err := store.ApplyPlan(context.Background(), "example.com", "https://example.com", &rentsync.SyncPlan{
		Creates: []rentsync.Record{{Address: "42 Oak Ave", Price: "$975"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.AddedOrUpdated)

	out := buf.String()
	assert.Contains(t, out, "apply plan")
	assert.Contains(t, out, "site=example.com")
	assert.Contains(t, out, "creates=1")
}

func TestLoggingStore_DelegatesReads(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := &mock.Store{
		ListingsBySiteFn: func(ctx context.Context, site rentsync.Site) ([]*rentsync.Listing, error) {
			return []*rentsync.Listing{{ID: "example.com_1", Site: site}}, nil
		},
	}

	store := rentsyncslog.NewLoggingStore(next, logger)
	listings, err := store.ListingsBySite(context.Background(), "example.com")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Empty(t, buf.String(), "reads should not log")
}
