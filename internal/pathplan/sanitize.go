package pathplan

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fallbackName substitutes for names that sanitize to nothing.
const fallbackName = "Unknown"

// illegalReplacer swaps filesystem-illegal characters for visually similar
// Unicode lookalikes. The table is fixed; changing it would re-home every
// previously imported track.
var illegalReplacer = strings.NewReplacer(
	"/", "∕", // division slash
	":", "∶", // ratio
	"\\", "⧵", // reverse solidus operator
	"?", "？", // fullwidth question mark
	"*", "＊", // fullwidth asterisk
	"<", "＜", // fullwidth less-than
	">", "＞", // fullwidth greater-than
	"|", "｜", // fullwidth vertical line
	"\"", "”", // right double quotation mark
)

// Sanitize makes a name safe to use as a single path segment. It is pure and
// idempotent, and never returns an empty string. Leading and trailing spaces
// and dots are stripped so no hidden files are created.
func Sanitize(name string) string {
	cleaned := norm.NFC.String(name)
	cleaned = illegalReplacer.Replace(cleaned)
	cleaned = strings.Trim(cleaned, " .")
	if cleaned == "" {
		return fallbackName
	}
	return cleaned
}
