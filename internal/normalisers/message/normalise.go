package message

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContentLimit is the maximum number of characters kept from a body.
const ContentLimit = 4000

// TruncationMarker is appended to content cut at the limit.
const TruncationMarker = "... (TRUNCATED)"

// Normalise collapses every run of whitespace to a single space, trims the
// ends and, if the result is longer than limit characters, keeps exactly
// limit characters followed by TruncationMarker.
// Characters are counted as runes, not bytes. The information separators
// U+001C to U+001F count as whitespace alongside the Unicode space set.
func Normalise(text string, limit int) string {
	if text == "" {
		return ""
	}
	cleaned := strings.Join(strings.FieldsFunc(text, isSpace), " ")
	if utf8.RuneCountInString(cleaned) <= limit {
		return cleaned
	}
	return truncateRunes(cleaned, limit) + TruncationMarker
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// truncateRunes returns the first n runes of s.
func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
