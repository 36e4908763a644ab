package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemeta"
)

// Ensure Parser implements pagemeta.Parser at compile time.
var _ pagemeta.Parser = (*Parser)(nil)

// Parser parses HTML with goquery. It accepts any markup a browser would,
// including fragments and unclosed tags.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html and collects its meta tags.
func (p *Parser) Parse(html string) (*pagemeta.Page, error) {
	if strings.TrimSpace(html) == "" {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "failed to parse HTML: %v", err)
	}

	return pagemeta.NewPage(NewDocument(doc), CollectMeta(doc)), nil
}
