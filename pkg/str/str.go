// Package str holds string helpers used by models.
package str

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letters that do not decompose into a base letter plus combining marks.
var transliterate = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O", "đ", "d", "Đ", "D", "ł", "l", "Ł", "L", "þ", "th", "Þ", "TH",
)

var lower = cases.Lower(language.Und)

func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, transliterate.Replace(s))
	if err != nil {
		return s
	}
	return out
}

// Slug turns s into a lower-case, hyphen separated, URL-safe identifier.
// Accents are folded, "@" becomes "at", underscores and whitespace become
// separators and every other non-alphanumeric character is dropped.
//
//	Slug("Acme Inc")      // "acme-inc"
//	Slug("Crème Brûlée")  // "creme-brulee"
func Slug(s string) string {
	s = foldASCII(s)
	s = strings.NewReplacer("_", "-", "@", "-at-").Replace(s)
	s = lower.String(s)

	var b strings.Builder
	b.Grow(len(s))
	sep := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			sep = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			sep = true
		}
	}
	return b.String()
}
