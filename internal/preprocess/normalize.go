package preprocess

import "strings"

// Normalize drops every rune outside [A-Za-z ] and lowercases the rest.
// Line breaks are removed rather than replaced, so words split across lines merge.
func Normalize(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r == ' ':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, text)
}
