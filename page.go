package pagemeta

import "unicode/utf8"

// MinDescriptionLength is the number of characters a paragraph needs before
// it is used as a fallback description.
const MinDescriptionLength = 120

// Page answers title, site name, and description questions about one parsed
// document. Title, BestTitle, and BestSiteName are computed on first use and
// cached for the lifetime of the Page.
//
// A Page is owned by a single caller and is not safe for concurrent use.
type Page struct {
	doc  Document
	meta Meta

	title        memo
	bestTitle    memo
	bestSiteName memo
}

// memo caches an optional string result.
type memo struct {
	done  bool
	value string
	ok    bool
}

func (m *memo) get(compute func() (string, bool)) (string, bool) {
	if !m.done {
		m.value, m.ok = compute()
		m.done = true
	}
	return m.value, m.ok
}

// NewPage returns a Page over doc and its collected meta tags.
// A nil meta is treated as empty.
func NewPage(doc Document, meta Meta) *Page {
	if meta == nil {
		meta = Meta{}
	}
	return &Page{doc: doc, meta: meta}
}

// Document returns the underlying parsed document.
func (p *Page) Document() Document {
	return p.doc
}

// Meta returns the collected meta tags.
func (p *Page) Meta() Meta {
	return p.meta
}

// Title returns the text of the <title> element in the document head.
// It reports false if the head has no title or the query fails.
func (p *Page) Title() (string, bool) {
	return p.title.get(func() (string, bool) {
		nodes := p.find(QueryHeadTitle)
		if len(nodes) == 0 {
			return "", false
		}
		var text string
		for _, n := range nodes {
			text += n.Text()
		}
		return text, true
	})
}

// BestTitle returns og:title when set, otherwise the longest candidate among
// the head and body titles, og:title, and the first <h1>.
func (p *Page) BestTitle() (string, bool) {
	return p.bestTitle.get(func() (string, bool) {
		if v := p.meta.Value(MetaOGTitle); v != "" {
			return v, true
		}
		return BestCandidate(Longest,
			NodeCandidates(p.find(QueryHeadTitle)),
			NodeCandidates(p.find(QueryBodyTitle)),
			p.metaCandidate(MetaOGTitle),
			p.first(QueryHeading),
		)
	})
}

// BestSiteName returns og:site_name when set, otherwise the shortest candidate
// among application-name, og:site_name, and the first <h1>.
func (p *Page) BestSiteName() (string, bool) {
	return p.bestSiteName.get(func() (string, bool) {
		if v := p.meta.Value(MetaOGSiteName); v != "" {
			return v, true
		}
		return BestCandidate(Shortest,
			p.metaCandidate(MetaApplicationName),
			p.metaCandidate(MetaOGSiteName),
			p.first(QueryHeading),
		)
	})
}

// Description returns the meta description when set, otherwise the text of
// the first paragraph at least MinDescriptionLength characters long.
// Returns an empty string if neither exists.
func (p *Page) Description() string {
	if v := p.meta.Value(MetaDescription); v != "" {
		return v
	}
	return p.secondaryDescription()
}

func (p *Page) secondaryDescription() string {
	for _, n := range p.find(QueryParagraph) {
		if text := n.Text(); utf8.RuneCountInString(text) >= MinDescriptionLength {
			return text
		}
	}
	return ""
}

// find evaluates q, treating a failed query as no matches.
func (p *Page) find(q Query) []Node {
	if p.doc == nil {
		return nil
	}
	nodes, err := p.doc.Find(q)
	if err != nil {
		return nil
	}
	return nodes
}

func (p *Page) first(q Query) []Candidate {
	n, ok := First(p.doc, q)
	if !ok {
		return nil
	}
	return []Candidate{NodeCandidate(n)}
}

// metaCandidate returns the meta value as a candidate. An empty value is
// absent.
func (p *Page) metaCandidate(key string) []Candidate {
	v := p.meta.Value(key)
	if v == "" {
		return nil
	}
	return []Candidate{TextCandidate(v)}
}
