// Package slug derives URL-safe identifiers from titles for blog permalinks.
package slug

import "strings"

// Make converts a title to a lower-case URL-safe slug. Runs of
// non-alphanumeric characters collapse into a single hyphen and leading or
// trailing hyphens are stripped. Uniqueness is not checked here; the blogs
// table carries the unique constraint.
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	pending := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}

	return b.String()
}
