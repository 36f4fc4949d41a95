package utils

import (
	"strings"
	"unicode"
)

// ExcerptLength is the maximum number of characters in a post excerpt.
const ExcerptLength = 250

// DeriveExcerpt mechanically derives a post excerpt: the first 250 characters
// of the content, trimmed, with a literal ellipsis suffix. Deriving twice
// from the same content always yields the identical string.
func DeriveExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) > ExcerptLength {
		runes = runes[:ExcerptLength]
	}
	return strings.TrimSpace(string(runes)) + "..."
}

// NormalizeEditInput applies the edit-path normalization used by the post
// form: leading whitespace is stripped and the first character is
// capitalized.
func NormalizeEditInput(s string) string {
	s = strings.TrimLeft(s, " \t\r\n")
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// TruncateRunes caps a string at n characters, counting runes so multi-byte
// characters are never split.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
