package etree_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagemeta"
	"github.com/fwojciec/pagemeta/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Parser implements pagemeta.Parser at compile time.
var _ pagemeta.Parser = (*etree.Parser)(nil)

const xhtmlPage = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
	<title>Chapter 1 &#8211; Origins</title>
	<meta name="application-name" content="Field Notes" />
	<meta property="OG:Title" content="" />
</head>
<body>
	<h1>Chapter   1</h1>
	<p>Short intro.</p>
	<p>%s</p>
</body>
</html>`

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 30)

	t.Run("answers title questions from an XHTML document", func(t *testing.T) {
		t.Parallel()

		page, err := etree.NewParser().Parse(strings.Replace(xhtmlPage, "%s", long, 1))
		require.NoError(t, err)

		title, ok := page.Title()
		assert.True(t, ok)
		assert.Equal(t, "Chapter 1 – Origins", title)

		best, ok := page.BestTitle()
		assert.True(t, ok)
		assert.Equal(t, "Chapter 1 – Origins", best)

		site, ok := page.BestSiteName()
		assert.True(t, ok)
		assert.Equal(t, "Chapter 1", site)

		assert.Equal(t, long, page.Description())
	})

	t.Run("collects meta with lowercase keys", func(t *testing.T) {
		t.Parallel()

		page, err := etree.NewParser().Parse(strings.Replace(xhtmlPage, "%s", "", 1))
		require.NoError(t, err)

		v, ok := page.Meta().Lookup("og:title")
		assert.True(t, ok)
		assert.Equal(t, "", v)
		assert.Equal(t, "Field Notes", page.Meta()["application-name"])
	})

	t.Run("resolves HTML entities", func(t *testing.T) {
		t.Parallel()

		page, err := etree.NewParser().Parse(`<html><head><title>A&nbsp;B&amp;C</title></head><body/></html>`)
		require.NoError(t, err)

		title, ok := page.Title()
		assert.True(t, ok)
		assert.Equal(t, "A\u00a0B&C", title)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := etree.NewParser().Parse("")

		require.Error(t, err)
		assert.Equal(t, pagemeta.EINVALID, pagemeta.ErrorCode(err))
	})
}
