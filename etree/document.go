// Package etree implements pagemeta.Parser and pagemeta.Document on top of
// etree, evaluating queries as element paths. It suits XHTML and other
// well-formed markup.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagemeta"
)

// Ensure types implement pagemeta interfaces at compile time.
var (
	_ pagemeta.Document = (*Document)(nil)
	_ pagemeta.Node     = (*Node)(nil)
)

// Document adapts an etree document to pagemeta.Document.
type Document struct {
	doc *etree.Document
}

// NewDocument wraps an already parsed etree document.
func NewDocument(doc *etree.Document) *Document {
	return &Document{doc: doc}
}

// Find evaluates the query's element path against the document.
// Returns EINVALID if the path is empty or cannot be compiled.
func (d *Document) Find(q pagemeta.Query) ([]pagemeta.Node, error) {
	if q.Path == "" {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "empty element path")
	}

	path, err := etree.CompilePath(q.Path)
	if err != nil {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "invalid element path %q: %v", q.Path, err)
	}

	elements := d.doc.FindElementsPath(path)
	nodes := make([]pagemeta.Node, 0, len(elements))
	for _, e := range elements {
		nodes = append(nodes, &Node{elem: e})
	}
	return nodes, nil
}

// Node is a single element.
type Node struct {
	elem *etree.Element
}

// Text returns the character data of the element and all its descendants.
func (n *Node) Text() string {
	var sb strings.Builder
	writeText(&sb, n.elem)
	return sb.String()
}

func writeText(sb *strings.Builder, e *etree.Element) {
	for _, child := range e.Child {
		switch t := child.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			writeText(sb, t)
		}
	}
}
