package lingua_test

import (
	"testing"

	"github.com/fwojciec/pagemeta"
	"github.com/fwojciec/pagemeta/lingua"
	ll "github.com/pemistahl/lingua-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_DetectLanguage(t *testing.T) {
	t.Parallel()

	d := lingua.NewDetector(lingua.WithLanguages(ll.English, ll.German, ll.French, ll.Spanish))

	t.Run("detects English", func(t *testing.T) {
		t.Parallel()

		code, ok := d.DetectLanguage("The quick brown fox jumps over the lazy dog near the river bank.")

		assert.True(t, ok)
		assert.Equal(t, "en", code)
	})

	t.Run("detects German", func(t *testing.T) {
		t.Parallel()

		code, ok := d.DetectLanguage("Das ist ein kurzer Satz über das Wetter in der Stadt und die Menschen.")

		assert.True(t, ok)
		assert.Equal(t, "de", code)
	})

	t.Run("detects French", func(t *testing.T) {
		t.Parallel()

		code, ok := d.DetectLanguage("Bienvenue sur notre site, nous sommes ravis de vous présenter nos produits.")

		assert.True(t, ok)
		assert.Equal(t, "fr", code)
	})

	t.Run("reports false for short text", func(t *testing.T) {
		t.Parallel()

		_, ok := d.DetectLanguage("Acme")

		assert.False(t, ok)
	})

	t.Run("reports false for blank text", func(t *testing.T) {
		t.Parallel()

		_, ok := d.DetectLanguage("   \n\t   ")

		assert.False(t, ok)
	})

	t.Run("honors minimum text length", func(t *testing.T) {
		t.Parallel()

		strict := lingua.NewDetector(
			lingua.WithLanguages(ll.English, ll.German),
			lingua.WithMinTextLength(200),
		)

		_, ok := strict.DetectLanguage("The quick brown fox jumps over the lazy dog.")

		assert.False(t, ok)
	})
}

func TestParseLanguages(t *testing.T) {
	t.Parallel()

	t.Run("maps iso codes case-insensitively", func(t *testing.T) {
		t.Parallel()

		got, err := lingua.ParseLanguages([]string{"en", "DE", " pt "})

		require.NoError(t, err)
		assert.Equal(t, []ll.Language{ll.English, ll.German, ll.Portuguese}, got)
	})

	t.Run("rejects unknown codes", func(t *testing.T) {
		t.Parallel()

		_, err := lingua.ParseLanguages([]string{"en", "xx"})

		assert.Equal(t, pagemeta.EINVALID, pagemeta.ErrorCode(err))
	})
}
