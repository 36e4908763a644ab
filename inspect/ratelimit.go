package inspect

import (
	"context"
	"sync"

	"github.com/fwojciec/pagemeta"
	"golang.org/x/time/rate"
)

var _ pagemeta.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to each host with its own token bucket,
// so a batch spread over many sites is not slowed by any single one.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each domain, without bursting. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the domain's limiter allows a request.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
