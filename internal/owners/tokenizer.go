// Package owners resolves free-text and structured owner mentions into
// canonical person and company records and links them to dated events.
package owners

import (
	"regexp"
	"strings"
)

var nonNameChars = regexp.MustCompile(`[^A-Za-z&'\-\s.]`)

// Tokenize splits a raw name fragment into normalized tokens. A leading "*"
// marker is dropped and characters outside letters, "&", "'", "-", "." and
// whitespace become separators.
func Tokenize(raw string) []string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "*")
	s = nonNameChars.ReplaceAllString(s, " ")

	return strings.Fields(s)
}

// Clean returns the tokens of raw joined by single spaces.
func Clean(raw string) string {
	return strings.Join(Tokenize(raw), " ")
}

// splitConjunctions splits tokens on "&" and "AND". A token with an embedded
// ampersand ("JOHN&MARY") is split as well.
func splitConjunctions(tokens []string) [][]string {
	var parts [][]string

	var cur []string

	flush := func() {
		parts = append(parts, cur)
		cur = nil
	}

	for _, tok := range tokens {
		if strings.EqualFold(tok, "and") {
			flush()
			continue
		}

		if !strings.Contains(tok, "&") {
			cur = append(cur, tok)
			continue
		}

		pieces := strings.Split(tok, "&")
		for i, piece := range pieces {
			if i > 0 {
				flush()
			}

			if piece != "" {
				cur = append(cur, piece)
			}
		}
	}

	flush()

	return parts
}

func hasConjunction(tokens []string) bool {
	for _, tok := range tokens {
		if strings.EqualFold(tok, "and") || strings.Contains(tok, "&") {
			return true
		}
	}

	return false
}
