package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/pagemeta/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	t.Run("reports added URLs", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)
		assert.False(t, f.Test("https://example.com/page1"))

		f.Add("https://example.com/page1")

		assert.True(t, f.Test("https://example.com/page1"))
		assert.False(t, f.Test("https://example.com/page2"))
	})

	t.Run("treats equivalent URLs as the same", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)
		f.Add("https://Example.com")

		assert.True(t, f.Test("https://example.com/"))
		assert.True(t, f.Test("HTTPS://EXAMPLE.COM/#top"))
	})

	t.Run("accepts URLs that do not normalize", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(10, 0.01)
		f.Add("not a url")

		assert.True(t, f.Test("not a url"))
	})

	t.Run("adding twice does not grow the estimate", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)
		f.Add("https://example.com/page1")
		first := f.EstimatedCount()

		f.Add("https://example.com/page1")
		f.Add("https://example.com/page1#again")

		assert.Equal(t, first, f.EstimatedCount())
	})

	t.Run("zero capacity still works", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(0, 0.01)
		f.Add("https://example.com/")

		assert.True(t, f.Test("https://example.com/"))
	})
}

func TestNewFilterFromURLs(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilterFromURLs([]string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	})

	assert.True(t, f.Test("https://example.com/b"))
	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)
	for i := range numItems {
		f.Add(fmt.Sprintf("https://example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://example.com/notadded/%d", i)) {
			falsePositives++
		}
	}

	// Allow 2x the configured rate for variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
