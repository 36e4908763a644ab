// Package htmltomarkdown implements pagemeta.Converter with
// html-to-markdown, so extracted page content can be stored as Markdown.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pagemeta"
)

// Ensure Converter implements pagemeta.Converter at compile time.
var _ pagemeta.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown, resolving relative links
// against the scheme and host of pageURL.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pagemeta.Errorf(pagemeta.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if domain := origin(pageURL); domain != "" {
		opts = append(opts, converter.WithDomain(domain))
	}

	md, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

func origin(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
