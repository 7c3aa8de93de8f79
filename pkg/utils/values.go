package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISODate is the layout of normalized dates.
const ISODate = "2006-01-02"

var dateLayouts = []string{
	ISODate,
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"01/02/06",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

var numberPattern = regexp.MustCompile(`-?\d+`)

// ParseDate parses the date formats seen on appraiser pages.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// NormalizeDate returns s as YYYY-MM-DD, or "" when it cannot be parsed.
func NormalizeDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}

	return t.Format(ISODate)
}

// ParseCurrency parses "$1,234.50" and "(1,000)" style amounts.
func ParseCurrency(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	s = strings.Trim(s, "()")
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)

	if s == "" || s == "-" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	if negative {
		v = -v
	}

	return v, true
}

// CurrencyPtr is ParseCurrency returning nil on failure.
func CurrencyPtr(s string) *float64 {
	v, ok := ParseCurrency(s)
	if !ok {
		return nil
	}

	return &v
}

// ParseInt extracts the first integer found in s.
func ParseInt(s string) (int, bool) {
	match := numberPattern.FindString(strings.ReplaceAll(s, ",", ""))
	if match == "" {
		return 0, false
	}

	v, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}

	return v, true
}
