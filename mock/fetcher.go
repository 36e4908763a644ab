package mock

import (
	"context"

	"github.com/fwojciec/pagemeta"
)

var (
	_ pagemeta.Fetcher       = (*Fetcher)(nil)
	_ pagemeta.RobotsChecker = (*RobotsChecker)(nil)
	_ pagemeta.DomainLimiter = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of pagemeta.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// RobotsChecker is a mock implementation of pagemeta.RobotsChecker.
type RobotsChecker struct {
	AllowedFn func(ctx context.Context, url string) (bool, error)
}

func (r *RobotsChecker) Allowed(ctx context.Context, url string) (bool, error) {
	return r.AllowedFn(ctx, url)
}

// DomainLimiter is a mock implementation of pagemeta.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
