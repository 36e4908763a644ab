package pagemeta

import "context"

// Fetcher retrieves page HTML from URLs.
// Implementations may use plain HTTP or browser automation.
type Fetcher interface {
	// Fetch retrieves the HTML served at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// RobotsChecker decides whether a URL may be fetched according to the
// site's robots.txt.
type RobotsChecker interface {
	// Allowed reports whether url may be fetched.
	// Missing or unreadable robots.txt files allow everything.
	Allowed(ctx context.Context, url string) (bool, error)
}

// DomainLimiter rate limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
