// Package http provides net/http implementations of pagemeta.Fetcher and
// pagemeta.SitemapService for static pages that don't require JavaScript.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pagemeta"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies pagemeta to the sites it fetches.
const DefaultUserAgent = "pagemeta/1.0 (+https://github.com/fwojciec/pagemeta)"

// MaxBodySize caps how many bytes of a response body are read.
const MaxBodySize = 10 << 20

// Ensure Fetcher implements pagemeta.Fetcher at compile time.
var _ pagemeta.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over HTTP and decodes it to UTF-8 using the
// charset declared by the server or the document.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient sets the HTTP client. The client's timeout is overridden by
// the configured fetch timeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}
	client := *f.client
	client.Timeout = f.timeout
	f.client = &client

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Returns ENOTFOUND for 404 and 410 responses.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", pagemeta.Errorf(pagemeta.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", pagemeta.Errorf(pagemeta.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, MaxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", url, err)
	}

	html, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	return string(html), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
