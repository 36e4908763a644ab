package pagemeta

import "strings"

// Node is a text-bearing element of a parsed document.
type Node interface {
	// Text returns the inner text of the node: the concatenation of all
	// descendant text, untrimmed.
	Text() string
}

// Query names a set of document nodes. CSS-backed documents evaluate the CSS
// selector; path-backed documents evaluate the element path.
type Query struct {
	CSS  string
	Path string
}

// Queries used to gather title, site name, and description candidates.
var (
	QueryHeadTitle = Query{CSS: "head title", Path: "//head//title"}
	QueryBodyTitle = Query{CSS: "body title", Path: "//body//title"}
	QueryHeading   = Query{CSS: "h1", Path: "//h1"}
	QueryParagraph = Query{CSS: "p", Path: "//p"}
)

// Document is a read-only parsed document that can be queried for nodes.
type Document interface {
	// Find returns the nodes matching q in document order.
	// Returns an error if the query cannot be evaluated against the document.
	Find(q Query) ([]Node, error)
}

// First returns the first node matching q. It reports false when nothing
// matches or the query fails.
func First(doc Document, q Query) (Node, bool) {
	if doc == nil {
		return nil, false
	}
	nodes, err := doc.Find(q)
	if err != nil || len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

// Meta keys consulted by Page.
const (
	MetaOGTitle         = "og:title"
	MetaOGSiteName      = "og:site_name"
	MetaApplicationName = "application-name"
	MetaDescription     = "description"
)

// MetaContentLanguage is the http-equiv key a page may use to declare its
// language.
const MetaContentLanguage = "content-language"

// Meta maps lowercase meta tag names (name, property, ...) to their content.
type Meta map[string]string

// Lookup returns the value stored for key, which is matched case-insensitively.
func (m Meta) Lookup(key string) (string, bool) {
	v, ok := m[strings.ToLower(key)]
	return v, ok
}

// Value returns the value for key if present and non-empty.
func (m Meta) Value(key string) string {
	v, _ := m.Lookup(key)
	return v
}

// Parser builds a queryable Page from raw markup.
type Parser interface {
	// Parse parses html and collects its meta tags.
	// Returns EINVALID if the input is empty or cannot be parsed.
	Parse(html string) (*Page, error)
}
