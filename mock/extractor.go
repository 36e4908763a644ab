package mock

import "github.com/fwojciec/pagemeta"

var (
	_ pagemeta.Extractor        = (*Extractor)(nil)
	_ pagemeta.Converter        = (*Converter)(nil)
	_ pagemeta.LanguageDetector = (*LanguageDetector)(nil)
)

// Extractor is a mock implementation of pagemeta.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*pagemeta.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*pagemeta.ExtractResult, error) {
	return e.ExtractFn(html)
}

// Converter is a mock implementation of pagemeta.Converter.
type Converter struct {
	ConvertFn func(html, pageURL string) (string, error)
}

func (c *Converter) Convert(html, pageURL string) (string, error) {
	return c.ConvertFn(html, pageURL)
}

// LanguageDetector is a mock implementation of pagemeta.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(text string) (string, bool)
}

func (d *LanguageDetector) DetectLanguage(text string) (string, bool) {
	return d.DetectLanguageFn(text)
}
