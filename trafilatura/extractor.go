// Package trafilatura implements pagemeta.Extractor with go-trafilatura,
// which also reads title, site name, and language from page metadata.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pagemeta"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagemeta.Extractor at compile time.
var _ pagemeta.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor that falls back to readability-style
// heuristics when trafilatura's own extraction finds too little.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
		},
	}
}

// Extract processes raw HTML and returns the main content and metadata.
func (e *Extractor) Extract(rawHTML string) (*pagemeta.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &pagemeta.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		SiteName:    strings.TrimSpace(result.Metadata.Sitename),
		Description: strings.TrimSpace(result.Metadata.Description),
		Language:    strings.ToLower(strings.TrimSpace(result.Metadata.Language)),
		ContentHTML: contentHTML,
		ContentText: strings.TrimSpace(result.ContentText),
	}, nil
}
