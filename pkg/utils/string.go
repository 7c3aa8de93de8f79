// Package utils provides common utility functions.
package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeWhitespace replaces multiple whitespace with single space.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TitleCase upper-cases the first letter of every space-separated word and
// lower-cases the rest of it.
func TitleCase(str string) string {
	words := strings.Fields(str)
	for i, w := range words {
		words[i] = titleWord(w)
	}

	return strings.Join(words, " ")
}

func titleWord(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return strings.ToLower(w)
	}

	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

// StringPtr returns a pointer to the trimmed string, or nil when it is empty.
func StringPtr(str string) *string {
	str = strings.TrimSpace(str)
	if str == "" {
		return nil
	}

	return &str
}
