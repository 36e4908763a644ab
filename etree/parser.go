package etree

import (
	"encoding/xml"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagemeta"
)

// Ensure Parser implements pagemeta.Parser at compile time.
var _ pagemeta.Parser = (*Parser)(nil)

// metaKeyAttrs lists the attributes that name a meta tag, in lookup order.
var metaKeyAttrs = []string{"name", "property", "itemprop", "http-equiv"}

// Parser parses XHTML with etree. Unknown HTML entities such as &nbsp; are
// resolved and unmatched closing tags are tolerated, but the markup must
// otherwise be well formed.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html and collects its meta tags.
func (p *Parser) Parse(html string) (*pagemeta.Page, error) {
	if strings.TrimSpace(html) == "" {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "empty XHTML input")
	}

	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	doc.ReadSettings.Entity = xml.HTMLEntity
	if err := doc.ReadFromString(html); err != nil {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "failed to parse XHTML: %v", err)
	}

	return pagemeta.NewPage(NewDocument(doc), collectMeta(doc)), nil
}

// collectMeta builds a pagemeta.Meta from every meta element. Keys are
// lowercased; the first non-empty value for a key wins.
func collectMeta(doc *etree.Document) pagemeta.Meta {
	meta := make(pagemeta.Meta)
	for _, e := range doc.FindElements("//meta") {
		key := metaKey(e)
		if key == "" {
			continue
		}
		attr := e.SelectAttr("content")
		if attr == nil {
			continue
		}
		if existing, ok := meta[key]; ok && existing != "" {
			continue
		}
		meta[key] = strings.TrimSpace(attr.Value)
	}
	return meta
}

func metaKey(e *etree.Element) string {
	for _, name := range metaKeyAttrs {
		if v := strings.ToLower(strings.TrimSpace(e.SelectAttrValue(name, ""))); v != "" {
			return v
		}
	}
	return ""
}
