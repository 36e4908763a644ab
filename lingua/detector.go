// Package lingua implements pagemeta.LanguageDetector with lingua-go.
package lingua

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pagemeta"
	"github.com/pemistahl/lingua-go"
)

// Ensure Detector implements pagemeta.LanguageDetector at compile time.
var _ pagemeta.LanguageDetector = (*Detector)(nil)

// DefaultMinTextLength is the shortest text, in characters, that detection
// is attempted on. Shorter texts are too ambiguous to classify.
const DefaultMinTextLength = 12

// Detector guesses the language of page text. Building the underlying
// model is expensive, so a Detector should be created once and shared; it
// is safe for concurrent use.
type Detector struct {
	detector  lingua.LanguageDetector
	minLength int
}

// Option configures a Detector.
type Option func(*Detector)

// WithLanguages restricts detection to the given languages. By default all
// languages lingua knows about are considered.
func WithLanguages(languages ...lingua.Language) Option {
	return func(d *Detector) {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build()
	}
}

// WithMinTextLength sets the shortest text detection is attempted on.
func WithMinTextLength(n int) Option {
	return func(d *Detector) {
		d.minLength = n
	}
}

// ParseLanguages maps ISO 639-1 codes such as "en" to lingua languages.
// Returns EINVALID for codes lingua does not support.
func ParseLanguages(codes []string) ([]lingua.Language, error) {
	languages := make([]lingua.Language, 0, len(codes))
	for _, code := range codes {
		lang, ok := languageOf(strings.TrimSpace(code))
		if !ok {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "unsupported language code %q", code)
		}
		languages = append(languages, lang)
	}
	return languages, nil
}

func languageOf(code string) (lingua.Language, bool) {
	for _, lang := range lingua.AllLanguages() {
		if strings.EqualFold(lang.IsoCode639_1().String(), code) {
			return lang, true
		}
	}
	return lingua.Unknown, false
}

// NewDetector creates a Detector.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{minLength: DefaultMinTextLength}
	for _, opt := range opts {
		opt(d)
	}
	if d.detector == nil {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithPreloadedLanguageModels().
			Build()
	}
	return d
}

// DetectLanguage returns the lowercase ISO 639-1 code of text's language.
// It reports false for short or blank text, or when no language is a
// reliable match.
func (d *Detector) DetectLanguage(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < d.minLength {
		return "", false
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
