package owners

import (
	"regexp"
	"sort"
	"strings"
)

// Role is the part a keyword plays inside an owner name.
type Role int

// Keyword roles.
const (
	RoleNone Role = iota
	RoleCompany
	RoleSuffix
)

// Kind classifies an owner name.
type Kind string

// Owner kinds.
const (
	KindPerson  Kind = "person"
	KindCompany Kind = "company"
)

// DefaultCompanyKeywords denote business, trust and estate entities.
var DefaultCompanyKeywords = []string{
	"LLC", "L.L.C.", "INC", "INCORPORATED", "CORP", "CORPORATION", "COMPANY",
	"LTD", "LIMITED", "LP", "LLP", "PLLC", "TRUST", "TRUSTEE", "TRUSTEES",
	"BANK", "ASSOCIATION", "ASSN", "PARTNERSHIP", "PARTNERS", "ESTATE",
	"CHURCH", "MINISTRIES", "UNIVERSITY", "AUTHORITY", "DISTRICT", "FUND",
	"GROUP", "PROPERTIES", "INVESTMENTS", "MANAGEMENT", "DEVELOPMENT",
	"REALTY", "HOA",
}

// DefaultSuffixTokens are generational and professional suffixes removed
// from middle names.
var DefaultSuffixTokens = []string{
	"JR", "SR", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X",
	"MD", "PHD", "ESQ", "ESQUIRE",
}

// DefaultPrefixes are the accepted person titles.
var DefaultPrefixes = []string{
	"Mr.", "Mrs.", "Ms.", "Miss", "Mx.", "Dr.", "Prof.", "Rev.", "Fr.",
	"Capt.", "Col.", "Maj.", "Lt.", "Sgt.", "Hon.", "Judge", "Sir", "Dame",
}

// DefaultSuffixes are the accepted person suffixes.
var DefaultSuffixes = []string{
	"Jr.", "Sr.", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X",
	"PhD", "MD", "DDS", "DVM", "Esq.", "CPA", "JD", "RN", "PE", "MBA", "Ret.",
}

// Lexicon is a keyword table mapping normalized tokens to their role.
type Lexicon struct {
	roles          map[string]Role
	companyPattern *regexp.Regexp
}

// NewLexicon builds a lexicon from company keywords and suffix tokens.
// Multi-word company keywords ("CITY OF") are matched as phrases.
func NewLexicon(companyKeywords, suffixTokens []string) *Lexicon {
	l := &Lexicon{roles: make(map[string]Role)}

	for _, s := range suffixTokens {
		l.roles[roleKey(s)] = RoleSuffix
	}

	var alternatives []string

	for _, kw := range companyKeywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}

		l.roles[roleKey(kw)] = RoleCompany

		words := strings.Fields(kw)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}

		alternatives = append(alternatives, strings.Join(words, `\s+`))
	}

	// Longest first so "L\.L\.C\." wins over shorter overlaps.
	sort.SliceStable(alternatives, func(i, j int) bool {
		return len(alternatives[i]) > len(alternatives[j])
	})

	if len(alternatives) > 0 {
		l.companyPattern = regexp.MustCompile(
			`(?i)(?:^|[^A-Za-z0-9])(?:` + strings.Join(alternatives, "|") + `)(?:[^A-Za-z0-9]|$)`)
	}

	return l
}

// Role returns the role of a single token.
func (l *Lexicon) Role(token string) Role {
	return l.roles[roleKey(token)]
}

// Classify returns KindCompany when name contains a company keyword on word
// boundaries, otherwise KindPerson.
func (l *Lexicon) Classify(name string) Kind {
	if l.companyPattern != nil && l.companyPattern.MatchString(name) {
		return KindCompany
	}

	return KindPerson
}

func roleKey(token string) string {
	return strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(token), "."))
}
