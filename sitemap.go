package pagemeta

import (
	"context"
	"regexp"
)

// SitemapService discovers page URLs from a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the page URLs listed in the sitemaps of baseURL's
	// host. Sitemap locations come from robots.txt, falling back to
	// /sitemap.xml; sitemap indexes are followed. When baseURL has a path,
	// only URLs under that path are returned. A nil filter keeps every URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter includes or excludes URLs by pattern.
type URLFilter struct {
	// Include, when non-empty, keeps only URLs matching at least one pattern.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern. Applied after Include.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include and exclude patterns into a filter.
// Returns EINVALID if a pattern does not compile.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	f := &URLFilter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", p, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// Match reports whether url passes the filter. A nil filter passes everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 && !matchAny(f.Include, url) {
		return false
	}
	return !matchAny(f.Exclude, url)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
