package textutil

import (
	"strings"
	"unicode"
)

// SanitizeFileName makes name safe to use as a file name. Path separators,
// colons and asterisks become dashes; other reserved characters and control
// characters are dropped. Runs of whitespace, including tabs and newlines,
// collapse to one space and trailing dots are removed.
func SanitizeFileName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*':
			return '-'
		case '?', '"', '<', '>', '|':
			return -1
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	return strings.TrimRight(strings.Join(strings.Fields(mapped), " "), ".")
}
