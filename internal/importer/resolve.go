package importer

// Row is one sheet row addressed by raw header text. Keys preserves the
// sheet's column order so normalized fallback matching stays deterministic
// (Go map iteration order is not).
type Row struct {
	Keys  []string
	Cells map[string]string
}

// Cell returns the raw value under the first matching alias.
//
// Two-tier precedence:
//  1. Exact key match against each alias, in alias order. Cheap, and
//     preserves intent when headers are already clean.
//  2. Normalized match: the normalized form of each alias against the
//     normalized form of each row key — alias order first, then column
//     encounter order. Tolerates real-world header drift (casing, BOM,
//     stray whitespace).
//
// Returns ("", false) when no alias matches under either strategy.
func (r Row) Cell(aliases []string) (string, bool) {
	for _, alias := range aliases {
		if v, ok := r.Cells[alias]; ok {
			return v, true
		}
	}
	for _, alias := range aliases {
		want := NormalizeHeader(alias)
		for _, key := range r.Keys {
			if NormalizeHeader(key) == want {
				return r.Cells[key], true
			}
		}
	}
	return "", false
}
