// Package robots implements pagemeta.RobotsChecker using robots.txt rules
// parsed by github.com/temoto/robotstxt.
package robots

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/fwojciec/pagemeta"
	"github.com/temoto/robotstxt"
)

// Ensure Checker implements pagemeta.RobotsChecker at compile time.
var _ pagemeta.RobotsChecker = (*Checker)(nil)

// maxRobotsSize caps how much of a robots.txt file is read.
const maxRobotsSize = 512 << 10

// Checker answers whether a user agent may fetch a URL. Rules are fetched
// once per scheme and host and cached for the lifetime of the Checker.
type Checker struct {
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	rules map[string]*robotstxt.RobotsData
}

// NewChecker returns a Checker that identifies itself as userAgent.
// If client is nil, http.DefaultClient is used.
func NewChecker(client *http.Client, userAgent string) *Checker {
	if client == nil {
		client = http.DefaultClient
	}
	return &Checker{
		client:    client,
		userAgent: userAgent,
		rules:     make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether rawURL may be fetched. A site whose robots.txt is
// missing or unreachable allows everything; a 5xx response disallows
// everything until the Checker is discarded.
func (c *Checker) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false, pagemeta.Errorf(pagemeta.EINVALID, "invalid URL %q", rawURL)
	}

	data, err := c.robots(ctx, u)
	if err != nil {
		return false, err
	}
	if data == nil {
		return true, nil
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, c.userAgent), nil
}

// robots returns the cached rules for u's host, fetching them on first use.
// A nil result means no usable robots.txt.
func (c *Checker) robots(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	key := u.Scheme + "://" + u.Host

	c.mu.Lock()
	data, ok := c.rules[key]
	c.mu.Unlock()
	if ok {
		return data, nil
	}

	data, err := c.fetch(ctx, key+"/robots.txt")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		data = nil
	}

	c.mu.Lock()
	c.rules[key] = data
	c.mu.Unlock()
	return data, nil
}

func (c *Checker) fetch(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		return nil, err
	}

	return robotstxt.FromStatusAndBytes(resp.StatusCode, body)
}
