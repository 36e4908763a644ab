package pagemeta

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// asciiSpace is the whitespace trimmed from candidates. Non-breaking and
// other Unicode spaces are kept as text.
const asciiSpace = " \t\n\v\f\r\x00"

var spaceRun = regexp.MustCompile(`[ \t\n\v\f\r]+`)

// SortOrder selects which normalized candidate BestCandidate prefers.
type SortOrder int

// Sort orders for BestCandidate. Longest is the default.
const (
	Longest SortOrder = iota
	Shortest
)

// String returns the name of the sort order.
func (o SortOrder) String() string {
	if o == Shortest {
		return "shortest"
	}
	return "longest"
}

type candidateKind int

const (
	candidateAbsent candidateKind = iota
	candidateNode
	candidateText
)

// Candidate is a possible answer gathered before ranking: either a document
// node, a raw string, or absent. The zero value is absent.
type Candidate struct {
	kind candidateKind
	node Node
	text string
}

// NodeCandidate returns a candidate backed by n. A nil node yields an absent
// candidate.
func NodeCandidate(n Node) Candidate {
	if n == nil {
		return Candidate{}
	}
	return Candidate{kind: candidateNode, node: n}
}

// TextCandidate returns a candidate backed by a raw string.
func TextCandidate(s string) Candidate {
	return Candidate{kind: candidateText, text: s}
}

// NodeCandidates converts nodes into candidates, preserving order.
func NodeCandidates(nodes []Node) []Candidate {
	candidates := make([]Candidate, 0, len(nodes))
	for _, n := range nodes {
		candidates = append(candidates, NodeCandidate(n))
	}
	return candidates
}

// IsAbsent reports whether the candidate carries no value.
func (c Candidate) IsAbsent() bool {
	return c.kind == candidateAbsent
}

// Text returns the node's inner text or the raw string.
func (c Candidate) Text() string {
	switch c.kind {
	case candidateNode:
		return c.node.Text()
	case candidateText:
		return c.text
	}
	return ""
}

// BestCandidate flattens slots into one sequence and returns the best
// normalized candidate for the given order.
//
// Absent candidates are dropped and the rest are trimmed. If none remain the
// result is ("", false). Otherwise whitespace runs are collapsed to a single
// space, duplicates are removed keeping the first occurrence, and candidates
// are stably sorted by character length. A lone blank candidate therefore
// yields ("", true).
func BestCandidate(order SortOrder, slots ...[]Candidate) (string, bool) {
	var texts []string
	for _, slot := range slots {
		for _, c := range slot {
			if c.IsAbsent() {
				continue
			}
			texts = append(texts, strings.Trim(c.Text(), asciiSpace))
		}
	}
	if len(texts) == 0 {
		return "", false
	}

	seen := make(map[string]struct{}, len(texts))
	unique := texts[:0]
	for _, t := range texts {
		t = collapseWhitespace(t)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}

	slices.SortStableFunc(unique, func(a, b string) int {
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if order == Shortest {
			return la - lb
		}
		return lb - la
	})
	return unique[0], true
}

// collapseWhitespace replaces every run of ASCII whitespace with a single
// space.
func collapseWhitespace(s string) string {
	return spaceRun.ReplaceAllString(s, " ")
}
