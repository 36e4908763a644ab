// Package bloom remembers previously inspected URLs in a Bloom filter, so
// large histories can be checked without holding every URL in memory.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/pagemeta"
)

// DefaultFalsePositiveRate is used by NewFilterFromURLs.
const DefaultFalsePositiveRate = 0.001

// Filter is a probabilistic set of URLs. URLs are normalized before they
// are added or tested, so equivalent spellings share an entry.
// A Filter is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Bloom filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// NewFilterFromURLs returns a filter holding urls, sized for them.
func NewFilterFromURLs(urls []string) *Filter {
	f := NewFilter(uint(len(urls)), DefaultFalsePositiveRate)
	for _, u := range urls {
		f.Add(u)
	}
	return f
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(key(url))
}

// Test reports whether the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(key(url))
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// key falls back to the raw string for URLs that do not normalize.
func key(url string) string {
	if n, err := pagemeta.NormalizeURL(url); err == nil {
		return n
	}
	return url
}
