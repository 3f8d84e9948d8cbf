package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer canonicalizes transcript text before linguistic analysis.
type Normalizer interface {
	Normalize(text string) string
}

// Thai normalizes transcripts the way the corpus expects: NFC
// composition, full-width to half-width folding for Latin runs, removal
// of zero-width characters that recognizers sometimes emit, and
// whitespace collapse.
type Thai struct{}

// NewThai returns the default transcript normalizer.
func NewThai() Thai {
	return Thai{}
}

// Normalize implements Normalizer.
func (Thai) Normalize(text string) string {
	if text == "" {
		return ""
	}

	folded := width.Fold.String(text)
	composed := norm.NFC.String(folded)

	var b strings.Builder
	b.Grow(len(composed))
	for _, r := range composed {
		if isZeroWidth(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\ufeff':
		return true
	}
	return false
}
