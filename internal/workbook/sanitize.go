package workbook

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes characters and drops combining marks, so that
// "Comissão" and "Comissao" sanitize to the same column name.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeColumn normalizes a header cell into the canonical column
// vocabulary: lower-case, trimmed, accents stripped, "%" spelled out,
// parentheses removed, whitespace collapsed to underscores. Applied on every
// load so downstream code never sees hand-edited header variants.
func SanitizeColumn(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	if out, _, err := transform.String(accentStripper, s); err == nil {
		s = out
	}

	s = strings.ReplaceAll(s, "%", " percent ")
	s = strings.NewReplacer("(", "", ")", "").Replace(s)

	return strings.Join(strings.Fields(s), "_")
}
