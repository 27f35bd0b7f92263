package renderer

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters without a canonical decomposition that still need an ASCII stand-in.
var foldings = map[rune]string{
	'đ': "dj",
	'Đ': "Dj",
	'ł': "l",
	'Ł': "L",
	'ı': "i",
}

// encodeCoreFont converts s to the single-byte Windows-1252 text that the
// standard PDF fonts draw. Runes outside the code page are folded to their base
// letter; anything still unencodable becomes '?'.
func encodeCoreFont(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var stripMarks transform.Transformer
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		if rep, ok := foldings[r]; ok {
			b.WriteString(rep)
			continue
		}
		if stripMarks == nil {
			// Chains are stateful, so each call gets its own.
			stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		}
		folded, _, err := transform.String(stripMarks, string(r))
		if err != nil {
			b.WriteByte('?')
			continue
		}
		for _, fr := range folded {
			if c, ok := charmap.Windows1252.EncodeRune(fr); ok {
				b.WriteByte(c)
			} else {
				b.WriteByte('?')
			}
		}
	}
	return b.String()
}
