package mock

import "github.com/fwojciec/pagemeta"

var (
	_ pagemeta.Document = (*Document)(nil)
	_ pagemeta.Node     = Node("")
	_ pagemeta.Parser   = (*Parser)(nil)
)

// Document is a mock implementation of pagemeta.Document.
type Document struct {
	FindFn func(q pagemeta.Query) ([]pagemeta.Node, error)
}

func (d *Document) Find(q pagemeta.Query) ([]pagemeta.Node, error) {
	return d.FindFn(q)
}

// Node is a pagemeta.Node whose inner text is the string itself.
type Node string

func (n Node) Text() string {
	return string(n)
}

// Nodes converts strings into nodes.
func Nodes(texts ...string) []pagemeta.Node {
	nodes := make([]pagemeta.Node, 0, len(texts))
	for _, t := range texts {
		nodes = append(nodes, Node(t))
	}
	return nodes
}

// Parser is a mock implementation of pagemeta.Parser.
type Parser struct {
	ParseFn func(html string) (*pagemeta.Page, error)
}

func (p *Parser) Parse(html string) (*pagemeta.Page, error) {
	return p.ParseFn(html)
}
