// Package inspect orchestrates page inspection: it checks robots.txt,
// rate-limits and fetches pages, answers title, site name and description
// questions about them, and stores the results.
package inspect

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagemeta"
)

// DefaultConcurrency is the number of pages InspectAll works on at once.
const DefaultConcurrency = 4

// Inspector turns URLs or raw HTML into Inspections. Fetcher and Parser are
// required; every other collaborator is optional and skipped when nil.
type Inspector struct {
	Fetcher     pagemeta.Fetcher
	Parser      pagemeta.Parser
	Extractor   pagemeta.Extractor
	Converter   pagemeta.Converter
	Language    pagemeta.LanguageDetector
	Robots      pagemeta.RobotsChecker
	RateLimiter pagemeta.DomainLimiter
	Inspections pagemeta.InspectionService

	// Concurrency bounds InspectAll. Defaults to DefaultConcurrency.
	Concurrency int

	// RetryDelays are the waits between fetch attempts. Nil means
	// DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration

	// OnRetry, if set, is told about each fetch retry.
	OnRetry RetryFunc
}

// Inspect fetches rawURL and inspects the returned HTML.
// Returns EINVALID for malformed URLs and for URLs robots.txt disallows.
func (i *Inspector) Inspect(ctx context.Context, rawURL string) (*pagemeta.Inspection, error) {
	target, err := pagemeta.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	if i.Robots != nil {
		allowed, err := i.Robots.Allowed(ctx, target)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "disallowed by robots.txt: %s", target)
		}
	}

	if i.RateLimiter != nil {
		if err := i.RateLimiter.Wait(ctx, host(target)); err != nil {
			return nil, err
		}
	}

	delays := i.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, target, i.Fetcher.Fetch, i.OnRetry, delays)
	if err != nil {
		return nil, err
	}

	return i.inspect(ctx, target, html)
}

// InspectHTML inspects markup that was obtained elsewhere, such as a local
// file. pageURL may be empty, in which case the result is not tied to a
// page and relative links in Content stay relative.
func (i *Inspector) InspectHTML(ctx context.Context, pageURL, html string) (*pagemeta.Inspection, error) {
	if pageURL != "" {
		normalized, err := pagemeta.NormalizeURL(pageURL)
		if err != nil {
			return nil, err
		}
		pageURL = normalized
	}
	return i.inspect(ctx, pageURL, html)
}

func (i *Inspector) inspect(ctx context.Context, pageURL, html string) (*pagemeta.Inspection, error) {
	page, err := i.Parser.Parse(html)
	if err != nil {
		return nil, err
	}

	in := pagemeta.NewInspection(pageURL, page)
	in.ContentHash = hashHTML(html)

	var extracted *pagemeta.ExtractResult
	if i.Extractor != nil {
		// Boilerplate removal is best effort; metadata stands without it.
		if res, err := i.Extractor.Extract(html); err == nil {
			extracted = res
		}
	}

	if extracted != nil && i.Converter != nil && strings.TrimSpace(extracted.ContentHTML) != "" {
		if md, err := i.Converter.Convert(extracted.ContentHTML, pageURL); err == nil {
			in.Content = md
		}
	}

	in.Language = i.language(in, page, extracted)

	if i.Inspections != nil {
		if err := i.Inspections.CreateInspection(ctx, in); err != nil {
			return nil, err
		}
	}

	return in, nil
}

// language detects from the best title and description first, then from
// the main content, and finally trusts whatever the document declares.
func (i *Inspector) language(in *pagemeta.Inspection, page *pagemeta.Page, extracted *pagemeta.ExtractResult) string {
	if i.Language != nil {
		var parts []string
		if in.BestTitle != nil {
			parts = append(parts, *in.BestTitle)
		}
		parts = append(parts, in.Description)
		if code, ok := i.Language.DetectLanguage(strings.Join(parts, "\n")); ok {
			return code
		}
		if extracted != nil {
			if code, ok := i.Language.DetectLanguage(extracted.ContentText); ok {
				return code
			}
		}
	}

	if extracted != nil && extracted.Language != "" {
		return primaryTag(extracted.Language)
	}
	if declared := page.Meta().Value(pagemeta.MetaContentLanguage); declared != "" {
		return primaryTag(declared)
	}
	return ""
}

// primaryTag reduces a language tag such as "en-US" or "en_GB, fr" to "en".
func primaryTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_, "); i >= 0 {
		tag = tag[:i]
	}
	return tag
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// hashHTML returns the big-endian hex xxHash of the fetched markup.
func hashHTML(html string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(html))
	return hex.EncodeToString(b[:])
}
