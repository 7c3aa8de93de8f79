package owners

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"countygraph/internal/models"
	"countygraph/internal/validator"
	"countygraph/pkg/utils"
)

// Company casing rules.
const (
	CasingTitle    = "title"
	CasingUpper    = "upper"
	CasingPreserve = "preserve"
)

// ErrUnknownCasing is returned for an unsupported company casing rule.
var ErrUnknownCasing = errors.New("company casing must be one of: title, upper, preserve")

// Options configures name resolution for one county.
type Options struct {
	// ExtraCompanyKeywords extend DefaultCompanyKeywords.
	ExtraCompanyKeywords []string
	// SuffixTokens replaces DefaultSuffixTokens when set.
	SuffixTokens []string
	// Prefixes and Suffixes replace the closed enumerations when set.
	Prefixes []string
	Suffixes []string
	// SharedSurnameSplit enables the LAST FIRST1 MIDDLE1 FIRST2 MIDDLE2 split.
	SharedSurnameSplit bool
	// SplitOnComma treats commas as owner separators.
	SplitOnComma bool
	// CompanyCasing is one of CasingTitle, CasingUpper, CasingPreserve.
	CompanyCasing string
	// NamePattern overrides validator.DefaultNamePattern.
	NamePattern string
}

// DefaultOptions returns the settings shared by most counties.
func DefaultOptions() Options {
	return Options{
		SharedSurnameSplit: true,
		SplitOnComma:       true,
		CompanyCasing:      CasingTitle,
	}
}

// Owner is a resolved person or company.
type Owner struct {
	Kind    Kind
	Person  models.Person
	Company models.Company
}

// Key returns the identity used for deduplication.
func (o Owner) Key() string {
	if o.Kind == KindCompany {
		return companyKey(o.Company.Name)
	}

	return personKey(o.Person)
}

func personKey(p models.Person) string {
	return "p:" + strings.ToLower(strings.TrimSpace(p.FirstName)) + "\x00" + strings.ToLower(strings.TrimSpace(p.LastName))
}

func companyKey(name string) string {
	return "c:" + strings.ToLower(strings.TrimSpace(name))
}

// Parser turns owner mentions into owners.
type Parser struct {
	lex           *Lexicon
	names         *validator.NameValidator
	prefixes      *validator.Enum
	suffixes      *validator.Enum
	splitShared   bool
	splitComma    bool
	companyCasing string
}

// NewParser builds a parser from options.
func NewParser(opts Options) (*Parser, error) {
	switch opts.CompanyCasing {
	case "":
		opts.CompanyCasing = CasingTitle
	case CasingTitle, CasingUpper, CasingPreserve:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCasing, opts.CompanyCasing)
	}

	names, err := validator.NewNameValidator(opts.NamePattern)
	if err != nil {
		return nil, err
	}

	keywords := append(append([]string{}, DefaultCompanyKeywords...), opts.ExtraCompanyKeywords...)

	suffixTokens := opts.SuffixTokens
	if len(suffixTokens) == 0 {
		suffixTokens = DefaultSuffixTokens
	}

	prefixes := opts.Prefixes
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}

	suffixes := opts.Suffixes
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}

	return &Parser{
		lex:           NewLexicon(keywords, suffixTokens),
		names:         names,
		prefixes:      validator.NewEnum("prefix", prefixes...),
		suffixes:      validator.NewEnum("suffix", suffixes...).Alias("ESQUIRE", "Esq."),
		splitShared:   opts.SharedSurnameSplit,
		splitComma:    opts.SplitOnComma,
		companyCasing: opts.CompanyCasing,
	}, nil
}

// Classify returns the kind of a cleaned name string.
func (p *Parser) Classify(name string) Kind {
	return p.lex.Classify(name)
}

// BuildPerson builds a person from LAST FIRST [MIDDLE...] tokens. It returns
// false when fewer than two tokens are given.
func (p *Parser) BuildPerson(tokens []string) (models.Person, bool) {
	if len(tokens) < 2 {
		return models.Person{}, false
	}

	var middle []string

	var suffix string

	for _, tok := range tokens[2:] {
		if p.lex.Role(tok) == RoleSuffix {
			if suffix == "" {
				suffix = tok
			}

			continue
		}

		middle = append(middle, tok)
	}

	person := models.Person{
		LastName:  utils.TitleCase(tokens[0]),
		FirstName: utils.TitleCase(tokens[1]),
	}

	if len(middle) > 0 {
		m := utils.TitleCase(strings.Join(middle, " "))
		person.MiddleName = &m
	}

	if suffix != "" {
		if c, ok := p.suffixes.Match(suffix); ok {
			person.SuffixName = &c
		}
	}

	return person, true
}

// ParseText resolves a free-text owner line such as "SMITH JOHN & MARY".
// A line containing a company keyword anywhere is one company. Issues are
// advisory; owners that could not be built are skipped.
func (p *Parser) ParseText(raw, path string) ([]Owner, validator.Result) {
	var res validator.Result

	whole := Clean(raw)
	if whole == "" {
		return nil, res
	}

	if p.lex.Classify(whole) == KindCompany {
		return []Owner{p.company(raw)}, res
	}

	var owners []Owner

	for _, tokens := range p.segments(raw) {
		if hasConjunction(tokens) {
			owners = append(owners, p.parseJoined(tokens, path, &res)...)
			continue
		}

		if p.splitShared && len(tokens) >= 4 {
			if people := p.splitSharedSurname(tokens); len(people) >= 2 {
				for _, person := range people {
					owners = append(owners, p.person(person, path, &res))
				}

				continue
			}
		}

		person, ok := p.BuildPerson(tokens)
		if !ok {
			res.Warn(validator.CodeAmbiguousName, path, strings.Join(tokens, " "),
				"fewer than two name tokens; owner skipped")

			continue
		}

		owners = append(owners, p.person(person, path, &res))
	}

	return owners, res
}

// segments splits raw into token groups, one per owner segment. With comma
// splitting on, a lone token before a comma is the surname of the segment
// that follows it, so "SMITH, JOHN" reads as one person.
func (p *Parser) segments(raw string) [][]string {
	if !p.splitComma {
		if tokens := Tokenize(raw); len(tokens) > 0 {
			return [][]string{tokens}
		}

		return nil
	}

	var (
		out     [][]string
		surname string
	)

	for _, part := range strings.Split(raw, ",") {
		tokens := Tokenize(part)
		if len(tokens) == 0 {
			continue
		}

		if surname != "" {
			tokens = append([]string{surname}, tokens...)
			surname = ""
		} else if len(tokens) == 1 && !hasConjunction(tokens) {
			surname = tokens[0]
			continue
		}

		out = append(out, tokens)
	}

	if surname != "" {
		out = append(out, []string{surname})
	}

	return out
}

// parseJoined handles "&"/"AND" separated parts of one segment. A one-token
// part takes the last surname seen earlier in the segment.
func (p *Parser) parseJoined(tokens []string, path string, res *validator.Result) []Owner {
	var owners []Owner

	lastSurname := ""

	for _, part := range splitConjunctions(tokens) {
		if len(part) == 0 {
			continue
		}

		if len(part) == 1 && lastSurname != "" {
			part = append([]string{lastSurname}, part...)
		}

		person, ok := p.BuildPerson(part)
		if !ok {
			res.Warn(validator.CodeAmbiguousName, path, strings.Join(part, " "),
				"fewer than two name tokens; owner skipped")

			continue
		}

		lastSurname = part[0]

		owners = append(owners, p.person(person, path, res))
	}

	return owners
}

// splitSharedSurname reads LAST FIRST1 [MIDDLE1] FIRST2 [MIDDLE2]... as several
// people with one surname. Suffix tokens are ignored. Every first name must
// have at least two letters, so initials and annotations such as "L/E" never
// start a new person.
func (p *Parser) splitSharedSurname(tokens []string) []models.Person {
	surname := tokens[0]

	var rest []string

	for _, tok := range tokens[1:] {
		if p.lex.Role(tok) != RoleSuffix {
			rest = append(rest, tok)
		}
	}

	var people []models.Person

	for i := 0; i < len(rest); i += 2 {
		if letters(rest[i]) < 2 {
			return nil
		}

		end := min(i+2, len(rest))

		person, ok := p.BuildPerson(append([]string{surname}, rest[i:end]...))
		if ok {
			people = append(people, person)
		}
	}

	return people
}

func letters(token string) int {
	n := 0

	for _, r := range token {
		if unicode.IsLetter(r) {
			n++
		}
	}

	return n
}

// FromMention resolves one owner_data.json entry.
func (p *Parser) FromMention(m models.OwnerMention, path string) ([]Owner, validator.Result) {
	switch {
	case m.Type == models.OwnerTypeCompany:
		name := m.Name
		if name == "" {
			name = strings.TrimSpace(m.FirstName + " " + m.LastName)
		}

		if utils.NormalizeWhitespace(name) == "" {
			return nil, validator.Result{}
		}

		return []Owner{p.company(name)}, validator.Result{}

	case m.Type == models.OwnerTypePerson && m.HasStructuredName():
		return p.structuredPerson(m, path)

	default:
		return p.ParseText(m.Name, path)
	}
}

func (p *Parser) structuredPerson(m models.OwnerMention, path string) ([]Owner, validator.Result) {
	var res validator.Result

	first := Clean(m.FirstName)
	last := Clean(m.LastName)

	if first == "" || last == "" {
		res.Warn(validator.CodeAmbiguousName, path, strings.TrimSpace(m.FirstName+" "+m.LastName),
			"person is missing a first or last name; owner skipped")

		return nil, res
	}

	person := models.Person{
		FirstName: utils.TitleCase(first),
		LastName:  utils.TitleCase(last),
	}

	if m.MiddleName != nil {
		var middle []string

		for _, tok := range Tokenize(*m.MiddleName) {
			if p.lex.Role(tok) != RoleSuffix {
				middle = append(middle, tok)
			}
		}

		if len(middle) > 0 {
			v := utils.TitleCase(strings.Join(middle, " "))
			person.MiddleName = &v
		}
	}

	if m.PrefixName != nil && strings.TrimSpace(*m.PrefixName) != "" {
		c, issue := p.prefixes.Check(validator.CodeInvalidPrefix, path+".prefix_name", *m.PrefixName)
		if issue != nil {
			res.Add(*issue)
		} else {
			person.PrefixName = &c
		}
	}

	if m.SuffixName != nil && strings.TrimSpace(*m.SuffixName) != "" {
		c, issue := p.suffixes.Check(validator.CodeInvalidSuffix, path+".suffix_name", *m.SuffixName)
		if issue != nil {
			res.Add(*issue)
		} else {
			person.SuffixName = &c
		}
	}

	return []Owner{p.person(person, path, &res)}, res
}

// person wraps a built person and records pattern mismatches; values are kept as-is.
func (p *Parser) person(person models.Person, path string, res *validator.Result) Owner {
	fields := [][2]string{
		{"first_name", person.FirstName},
		{"last_name", person.LastName},
	}

	if person.MiddleName != nil {
		fields = append(fields, [2]string{"middle_name", *person.MiddleName})
	}

	for _, f := range fields {
		if issue := p.names.Check(path+"."+f[0], f[1]); issue != nil {
			res.Add(*issue)
		}
	}

	return Owner{Kind: KindPerson, Person: person}
}

func (p *Parser) company(raw string) Owner {
	name := utils.NormalizeWhitespace(strings.TrimPrefix(strings.TrimSpace(raw), "*"))

	switch p.companyCasing {
	case CasingUpper:
		name = strings.ToUpper(name)
	case CasingTitle:
		name = utils.TitleCase(name)
	}

	return Owner{Kind: KindCompany, Company: models.Company{Name: name}}
}
