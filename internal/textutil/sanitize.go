package textutil

import "strings"

// SanitizePathComponent converts a tag value to a string safe to use as a
// single path segment. ASCII letters, digits, spaces, dots, underscores and
// hyphens pass through; everything else becomes an underscore. Returns
// "Unknown" for values that sanitize to nothing.
func SanitizePathComponent(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "Unknown"
	}
	return out
}
