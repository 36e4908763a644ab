package mock

import (
	"context"

	"github.com/fwojciec/pagemeta"
)

var _ pagemeta.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of pagemeta.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *pagemeta.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagemeta.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
