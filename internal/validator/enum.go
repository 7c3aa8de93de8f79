package validator

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// minHintSimilarity is the Jaro-Winkler score below which no hint is offered.
const minHintSimilarity = 0.8

// Enum is a closed set of canonical values matched case-insensitively,
// with an optional trailing period.
type Enum struct {
	name   string
	values []string
	lookup map[string]string
}

// NewEnum builds an enum from its canonical values.
func NewEnum(name string, values ...string) *Enum {
	e := &Enum{
		name:   name,
		lookup: make(map[string]string, len(values)),
	}

	for _, v := range values {
		e.values = append(e.values, v)
		e.lookup[enumKey(v)] = v
	}

	return e
}

// Alias maps an additional spelling onto a canonical value.
func (e *Enum) Alias(alias, canonical string) *Enum {
	e.lookup[enumKey(alias)] = canonical
	return e
}

// Match returns the canonical spelling of v.
func (e *Enum) Match(v string) (string, bool) {
	if e == nil {
		return "", false
	}

	c, ok := e.lookup[enumKey(v)]

	return c, ok
}

// Closest returns the canonical value most similar to v, or "" when nothing is close.
func (e *Enum) Closest(v string) string {
	key := enumKey(v)
	if key == "" {
		return ""
	}

	best := ""
	bestScore := 0.0

	for _, c := range e.values {
		score := matchr.JaroWinkler(key, enumKey(c), false)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}

	if bestScore < minHintSimilarity {
		return ""
	}

	return best
}

// Check matches v and returns an issue carrying a hint when it does not match.
func (e *Enum) Check(code, path, v string) (string, *Issue) {
	if c, ok := e.Match(v); ok {
		return c, nil
	}

	return "", &Issue{
		Code:    code,
		Path:    path,
		Value:   v,
		Message: "value is not a recognized " + e.name + "; set to null",
		Hint:    e.Closest(v),
	}
}

func enumKey(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	return strings.TrimSuffix(v, ".")
}
