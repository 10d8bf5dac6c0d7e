package generate

import (
	"strings"
	"unicode"
)

// Sanitize turns free-form model output into a repository name: surrounding
// whitespace and backticks are dropped, spaces become hyphens, the result is
// lowercased, and only letters, digits, '-' and '_' survive.
func Sanitize(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "`", "")
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
