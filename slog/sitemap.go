package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemeta"
)

// Ensure LoggingSitemapService implements pagemeta.SitemapService.
var _ pagemeta.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   pagemeta.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next pagemeta.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs how many URLs it
// found. Failed discovery is logged as a warning.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagemeta.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "sitemap discovery",
			"url", baseURL,
			"count", len(urls),
			"filtered", filter != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
