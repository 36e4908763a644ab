package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemeta"
)

// metaKeyAttrs lists the attributes that name a meta tag, in lookup order.
var metaKeyAttrs = []string{"name", "property", "itemprop", "http-equiv"}

// CollectMeta builds a pagemeta.Meta from every <meta> element in the document.
// Keys are lowercased. The first value seen for a key wins unless it is empty,
// in which case a later non-empty value replaces it.
func CollectMeta(doc *goquery.Document) pagemeta.Meta {
	meta := make(pagemeta.Meta)
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key := metaKey(s)
		if key == "" {
			return
		}
		content, exists := s.Attr("content")
		if !exists {
			return
		}
		content = strings.TrimSpace(content)

		if existing, ok := meta[key]; ok && existing != "" {
			return
		}
		meta[key] = content
	})
	return meta
}

func metaKey(s *goquery.Selection) string {
	for _, attr := range metaKeyAttrs {
		if v, ok := s.Attr(attr); ok {
			if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
				return v
			}
		}
	}
	return ""
}
