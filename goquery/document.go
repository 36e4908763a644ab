// Package goquery implements pagemeta.Parser and pagemeta.Document on top of
// goquery, evaluating queries as CSS selectors.
package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pagemeta"
)

// Ensure types implement pagemeta interfaces at compile time.
var (
	_ pagemeta.Document = (*Document)(nil)
	_ pagemeta.Node     = (*Node)(nil)
)

// Document adapts a goquery document to pagemeta.Document.
type Document struct {
	doc *goquery.Document
}

// NewDocument wraps an already parsed goquery document.
func NewDocument(doc *goquery.Document) *Document {
	return &Document{doc: doc}
}

// Find evaluates the query's CSS selector against the document.
// Returns EINVALID if the selector is empty or cannot be compiled.
func (d *Document) Find(q pagemeta.Query) ([]pagemeta.Node, error) {
	if q.CSS == "" {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "empty CSS selector")
	}

	matcher, err := cascadia.Compile(q.CSS)
	if err != nil {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "invalid CSS selector %q: %v", q.CSS, err)
	}

	sel := d.doc.FindMatcher(matcher)
	nodes := make([]pagemeta.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes, nil
}

// Node is a single HTML element.
type Node struct {
	sel *goquery.Selection
}

// Text returns the combined text of the element and its descendants.
func (n *Node) Text() string {
	return n.sel.Text()
}
