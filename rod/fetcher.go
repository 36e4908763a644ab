// Package rod implements pagemeta.Fetcher with a headless Chrome browser so
// that metadata written into the page by JavaScript is visible.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/pagemeta"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

var errClosed = pagemeta.Errorf(pagemeta.EINVALID, "fetcher is closed")

// Ensure Fetcher implements pagemeta.Fetcher at compile time.
var _ pagemeta.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser   *browser
	timeout   time.Duration
	userAgent string
	maxPages  int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for rendering a single page.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxPages sets how many pages are rendered before the browser process
// is replaced.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, err := newBrowser(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.browser = b

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
// Returns EINVALID if the Fetcher has been closed.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	g, err := f.browser.acquire()
	if err != nil {
		return "", err
	}
	defer f.browser.release(g)

	page, err := g.rod.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// LauncherPID returns the process ID of the browser launcher, or 0 once
// closed.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.browser.close()
}
