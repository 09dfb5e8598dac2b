// Package rod provides a browser-based implementation of
// rentsync.Fetcher. Listing sites are usually JavaScript-rendered
// single-page apps, so fetching them requires a real browser.
package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/rentsync"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements rentsync.Fetcher at compile time.
var _ rentsync.Fetcher = (*Fetcher)(nil)

// DefaultPagesPerBrowser is how many pages a Chrome instance renders
// before it is replaced with a fresh one.
const DefaultPagesPerBrowser = 50

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithPagesPerBrowser sets how many pages are rendered before the
// browser is relaunched. Defaults to DefaultPagesPerBrowser.
func WithPagesPerBrowser(n int) Option {
	return func(f *Fetcher) {
		f.pagesPerBrowser = n
	}
}

// Fetcher retrieves rendered listing pages using headless Chrome.
// Chrome's memory baseline creeps upward across renders and never fully
// returns, which matters for long refresh sweeps over many tracked
// sites, so the browser is relaunched after a fixed number of fetches.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	pagesPerBrowser int

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	rendered int
	closed   bool
}

// NewFetcher creates a new Fetcher and launches a headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{pagesPerBrowser: DefaultPagesPerBrowser}
	for _, opt := range opts {
		opt(f)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.launch(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered page: the full
// markup plus the body's visible text, which is what the text-pattern
// strategies scan.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*rentsync.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := f.currentBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	// Visible text reflects what a renter would actually read; scripts,
	// styles, and hidden elements are already excluded by the browser.
	var text string
	if obj, err := page.Eval(`() => document.body ? document.body.innerText : ""`); err == nil {
		text = obj.Value.Str()
	}

	f.mu.Lock()
	f.rendered++
	f.mu.Unlock()

	return &rentsync.Page{URL: url, HTML: html, Text: text}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	return f.shutdown()
}

// currentBrowser returns the browser to render with, relaunching it
// once the page quota is spent. A failed relaunch keeps the old browser
// so an in-progress sweep can continue.
func (f *Fetcher) currentBrowser() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, rentsync.Errorf(rentsync.EINTERNAL, "fetcher is closed")
	}

	if f.rendered >= f.pagesPerBrowser {
		old, oldLauncher := f.browser, f.launcher
		f.browser, f.launcher = nil, nil
		if err := f.launch(); err != nil {
			f.browser, f.launcher = old, oldLauncher
			return f.browser, nil
		}
		if old != nil {
			_ = old.Close()
		}
		if oldLauncher != nil {
			oldLauncher.Kill()
		}
		f.rendered = 0
	}

	return f.browser, nil
}

// launch starts a fresh Chrome instance with flags that keep rendering
// active for backgrounded headless pages. Must be called with mu held.
func (f *Fetcher) launch() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = lnchr
	return nil
}

// shutdown closes the browser and kills its launcher. Must be called
// with mu held.
func (f *Fetcher) shutdown() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}
