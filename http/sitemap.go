package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagemeta"
	"github.com/temoto/robotstxt"
)

// Ensure SitemapService implements pagemeta.SitemapService.
var _ pagemeta.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from sitemaps advertised in robots.txt.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client, opts ...Option) *SitemapService {
	f := &Fetcher{userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(f)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: f.userAgent}
}

// DiscoverURLs returns page URLs from the site's sitemaps, deduplicated in
// document order. Returns an empty slice (not nil) if no sitemaps are found.
//
// When baseURL has a non-root path (e.g. https://example.com/blog/), only
// URLs under that path are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *pagemeta.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "invalid base URL %q", baseURL)
	}

	prefix := strings.TrimSuffix(base.Path, "/")
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	for _, sm := range sitemaps {
		locs, err := s.readSitemap(ctx, sm, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range locs {
			if seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			if prefix != "" && !underPath(u, prefix) {
				continue
			}
			if !filter.Match(u) {
				continue
			}
			urls = append(urls, u)
		}
	}

	return urls, nil
}

// underPath reports whether rawURL's path is prefix or lies beneath it.
// /blog matches /blog and /blog/post but not /blogroll.
func underPath(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}

// locateSitemaps reads Sitemap directives from robots.txt and falls back to
// /sitemap.xml when there are none.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if status, body, err := s.get(ctx, robotsURL); err == nil {
		robots, err := robotstxt.FromStatusAndBytes(status, body)
		if err == nil && len(robots.Sitemaps) > 0 {
			return robots.Sitemaps, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	status, _, err := s.get(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, nil
	}
	return []string{fallback}, nil
}

// readSitemap parses a urlset or follows a sitemapindex.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	status, body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", status, sitemapURL)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap %s", sitemapURL)
	}

	if root.Tag != "sitemapindex" {
		return locs(root, "url"), nil
	}

	var urls []string
	for _, child := range locs(root, "sitemap") {
		found, err := s.readSitemap(ctx, child, seen)
		if err != nil {
			return nil, err
		}
		urls = append(urls, found...)
	}
	return urls, nil
}

// locs returns the trimmed <loc> values of root's children named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *SitemapService) get(ctx context.Context, target string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
