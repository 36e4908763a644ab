// Package readability implements pagemeta.Extractor with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/pagemeta"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagemeta.Extractor at compile time.
var _ pagemeta.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main article and its metadata.
// The article excerpt becomes the description.
func (e *Extractor) Extract(rawHTML string) (*pagemeta.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &pagemeta.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		SiteName:    strings.TrimSpace(article.SiteName),
		Description: strings.TrimSpace(article.Excerpt),
		Language:    strings.ToLower(strings.TrimSpace(article.Language)),
		ContentHTML: article.Content,
		ContentText: strings.TrimSpace(article.TextContent),
	}, nil
}
