package describer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the words of a canonical key.
const Separator = '_'

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converts a raw header into its canonical comparison key.
//
// The key is lowercased, accent-folded, and every run of underscores, hyphens
// and whitespace becomes a single underscore. Separators at either end are
// dropped. Any input, including the empty string, yields a (possibly empty) key.
func Normalize(header string) string {
	folded, _, err := transform.String(foldAccents, header)
	if err != nil {
		folded = header
	}
	return collapse(folded, Separator)
}

// Humanize turns a raw header into lowercase space-separated words. Accents
// and bytes that are not valid UTF-8 are kept as written.
func Humanize(header string) string {
	return collapse(header, ' ')
}

func collapse(header string, sep rune) string {
	var b strings.Builder
	b.Grow(len(header))
	pending := false
	for i := 0; i < len(header); {
		r, size := utf8.DecodeRuneInString(header[i:])
		if isSeparator(r) {
			pending = b.Len() > 0
			i += size
			continue
		}
		if pending {
			b.WriteRune(sep)
			pending = false
		}
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(header[i])
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		i += size
	}
	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}
