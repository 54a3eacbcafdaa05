package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// NormalizeShoutingCase rewrites all-uppercase strings into title case.
// Mixed-case input is returned unchanged so deliberate capitalization
// ("iTunes Session") survives. CDDB mirrors frequently store entries as
// "MONEY FOR NOTHING / DIRE STRAITS".
func NormalizeShoutingCase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return trimmed
	}
	if trimmed != strings.ToUpper(trimmed) {
		return trimmed
	}
	if strings.ToLower(trimmed) == trimmed {
		// No letters at all (digits, punctuation).
		return trimmed
	}
	return titleCaser.String(strings.ToLower(trimmed))
}
