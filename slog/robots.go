package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/pagemeta"
)

// Ensure LoggingRobotsChecker implements pagemeta.RobotsChecker.
var _ pagemeta.RobotsChecker = (*LoggingRobotsChecker)(nil)

// LoggingRobotsChecker wraps a RobotsChecker and logs refusals and errors.
// Allowed URLs are logged at debug level only, since almost every URL is.
type LoggingRobotsChecker struct {
	next   pagemeta.RobotsChecker
	logger *slog.Logger
}

// NewLoggingRobotsChecker creates a new LoggingRobotsChecker.
func NewLoggingRobotsChecker(next pagemeta.RobotsChecker, logger *slog.Logger) *LoggingRobotsChecker {
	return &LoggingRobotsChecker{next: next, logger: logger}
}

// Allowed delegates to the wrapped checker.
func (c *LoggingRobotsChecker) Allowed(ctx context.Context, url string) (bool, error) {
	allowed, err := c.next.Allowed(ctx, url)
	switch {
	case err != nil:
		c.logger.Warn("robots check", "url", url, "err", err)
	case !allowed:
		c.logger.Info("robots check", "url", url, "allowed", false)
	default:
		c.logger.Debug("robots check", "url", url, "allowed", true)
	}
	return allowed, err
}
