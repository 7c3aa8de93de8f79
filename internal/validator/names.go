package validator

import (
	"fmt"
	"regexp"
)

// DefaultNamePattern is the shape expected of a title-cased name component.
const DefaultNamePattern = `^[A-Z][a-z]*(?:[ \-'.,][A-Za-z][a-z]*)*\.?$`

// NameValidator checks name components against a compiled pattern.
type NameValidator struct {
	pattern *regexp.Regexp
}

// NewNameValidator compiles pattern; an empty pattern selects DefaultNamePattern.
func NewNameValidator(pattern string) (*NameValidator, error) {
	if pattern == "" {
		pattern = DefaultNamePattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid name pattern: %w", err)
	}

	return &NameValidator{pattern: re}, nil
}

// Check returns an issue when value does not match. Empty values are not checked.
func (v *NameValidator) Check(path, value string) *Issue {
	if value == "" || v.pattern.MatchString(value) {
		return nil
	}

	return &Issue{
		Code:    CodeNamePattern,
		Path:    path,
		Value:   value,
		Message: "does not match expected name pattern " + v.pattern.String(),
	}
}
