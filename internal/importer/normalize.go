package importer

import "strings"

// Characters that export tools smuggle into header cells: the UTF-8 BOM and
// the zero-width family. They break exact matching while being invisible in
// every spreadsheet UI.
var headerJunk = strings.NewReplacer(
	"\uFEFF", "", // byte-order mark
	"\u200B", "", // zero-width space
	"\u200C", "", // zero-width non-joiner
	"\u200D", "", // zero-width joiner
)

// NormalizeHeader produces the canonical comparison key for a column header:
// BOM and zero-width characters removed, surrounding whitespace trimmed,
// lowercased. Total and idempotent — any input maps to a stable key.
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(headerJunk.Replace(h)))
}
