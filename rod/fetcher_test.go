//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/rentsync"
	"github.com/fwojciec/rentsync/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements rentsync.Fetcher.
var _ rentsync.Fetcher = (*rod.Fetcher)(nil)

func TestFetcher_Fetch_RendersJavaScript(t *testing.T) {
	t.Parallel()

	// Listings injected client-side, the way property-management SPAs
	// serve them.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<div id="listings"></div>
			<script>
				document.getElementById("listings").innerHTML =
					"<div class=\"rental-unit\">42 Oak Ave - 2 bed 1 bath $975 per month</div>";
			</script>
		</body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	page, err := fetcher.Fetch(ctx, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, page.URL)
	assert.Contains(t, page.HTML, "rental-unit", "markup should include script-injected content")
	assert.Contains(t, page.Text, "42 Oak Ave", "visible text should include rendered listings")
	assert.NotContains(t, page.Text, "getElementById", "visible text should exclude script source")
}

func TestFetcher_RelaunchesBrowserAfterPageQuota(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><div class="rental-unit">42 Oak Ave - $975</div></body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithPagesPerBrowser(1))
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Each fetch spends the quota, so every subsequent fetch crosses a
	// browser relaunch and must still render.
	for i := 0; i < 3; i++ {
		page, err := fetcher.Fetch(ctx, srv.URL)
		require.NoError(t, err)
		assert.Contains(t, page.Text, "42 Oak Ave")
	}
}

func TestFetcher_Fetch_AfterCloseFails(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close(), "close must be idempotent")

	_, err = fetcher.Fetch(context.Background(), "http://example.com")
	require.Error(t, err)
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Don't respond - let context cancellation take effect
		select {}
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, srv.URL)
	require.Error(t, err)
}
