package pagemeta

// ExtractResult holds the main content and the metadata an extractor found
// on an HTML page. Fields are empty when the extractor found nothing.
type ExtractResult struct {
	Title       string
	SiteName    string
	Description string

	// Language is the page language as declared by the document, if any.
	Language string

	// ContentHTML is the main content with boilerplate removed.
	ContentHTML string

	// ContentText is ContentHTML reduced to plain text.
	ContentText string
}

// Extractor extracts main content from HTML pages, removing navigation,
// footers, and other boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., from an Extractor) into Markdown.
	// Relative links are resolved against pageURL when it is non-empty.
	Convert(html, pageURL string) (string, error)
}

// LanguageDetector guesses the natural language of a text.
type LanguageDetector interface {
	// DetectLanguage returns the lowercase ISO 639-1 code of the text's
	// language. It reports false when the language cannot be determined.
	DetectLanguage(text string) (string, bool)
}
