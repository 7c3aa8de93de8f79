package owners

import (
	"fmt"
	"sort"

	"countygraph/internal/models"
	"countygraph/internal/validator"
	"countygraph/pkg/utils"
)

// Entity kinds used in output refs.
const (
	RefPerson  = "person"
	RefCompany = "company"
)

// Registry holds the canonical owners of one extraction run in first-seen order.
type Registry struct {
	people       []models.Person
	companies    []models.Company
	personIndex  map[string]int
	companyIndex map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		personIndex:  make(map[string]int),
		companyIndex: make(map[string]int),
	}
}

// Add merges o into the registry and returns its canonical ref. A person
// already present only gains a middle name it did not have.
func (r *Registry) Add(o Owner) models.Ref {
	key := o.Key()

	if o.Kind == KindCompany {
		if i, ok := r.companyIndex[key]; ok {
			return models.IndexedRef(RefCompany, i+1)
		}

		r.companyIndex[key] = len(r.companies)
		r.companies = append(r.companies, o.Company)

		return models.IndexedRef(RefCompany, len(r.companies))
	}

	if i, ok := r.personIndex[key]; ok {
		if r.people[i].MiddleName == nil && o.Person.MiddleName != nil {
			m := *o.Person.MiddleName
			r.people[i].MiddleName = &m
		}

		return models.IndexedRef(RefPerson, i+1)
	}

	r.personIndex[key] = len(r.people)
	r.people = append(r.people, o.Person)

	return models.IndexedRef(RefPerson, len(r.people))
}

// People returns canonical persons; person_<n> is People()[n-1].
func (r *Registry) People() []models.Person {
	return r.people
}

// Companies returns canonical companies; company_<n> is Companies()[n-1].
func (r *Registry) Companies() []models.Company {
	return r.companies
}

// Put writes every canonical owner into the graph.
func (r *Registry) Put(g *models.Graph) {
	for i, p := range r.people {
		g.Put(models.IndexedRef(RefPerson, i+1), p)
	}

	for i, c := range r.companies {
		g.Put(models.IndexedRef(RefCompany, i+1), c)
	}
}

// Resolved maps each snapshot date key to the canonical refs listed on it.
// Parseable date keys are normalized to YYYY-MM-DD.
type Resolved struct {
	Order  []string
	Owners map[string][]models.Ref
}

// On returns the refs listed for a date key.
func (r *Resolved) On(key string) []models.Ref {
	if r == nil {
		return nil
	}

	return r.Owners[key]
}

// Current returns the refs of the present-day owners.
func (r *Resolved) Current() []models.Ref {
	return r.On(models.CurrentKey)
}

// ProcessingOrder returns "current" first, then the dated keys ascending when
// every one of them parses as a date, otherwise in source order.
func ProcessingOrder(snap *models.OwnershipSnapshot) []string {
	var (
		order    []string
		dated    []string
		hasCur   bool
		sortable = true
		times    = make(map[string]int64)
	)

	for _, key := range snap.Keys() {
		if key == models.CurrentKey {
			hasCur = true
			continue
		}

		t, ok := utils.ParseDate(key)
		if !ok {
			sortable = false
		} else {
			times[key] = t.Unix()
		}

		dated = append(dated, key)
	}

	if sortable {
		sort.SliceStable(dated, func(i, j int) bool {
			return times[dated[i]] < times[dated[j]]
		})
	}

	if hasCur {
		order = append(order, models.CurrentKey)
	}

	return append(order, dated...)
}

// Resolve canonicalizes every mention of snap into reg, in ProcessingOrder.
func (p *Parser) Resolve(reg *Registry, snap *models.OwnershipSnapshot) (*Resolved, validator.Result) {
	var res validator.Result

	resolved := &Resolved{Owners: make(map[string][]models.Ref)}

	for _, key := range ProcessingOrder(snap) {
		mentions, _ := snap.Get(key)

		norm := key
		if key != models.CurrentKey {
			if iso := utils.NormalizeDate(key); iso != "" {
				norm = iso
			}
		}

		if _, seen := resolved.Owners[norm]; !seen {
			resolved.Order = append(resolved.Order, norm)
		}

		refs := resolved.Owners[norm]

		for i, m := range mentions {
			owners, issues := p.FromMention(m, fmt.Sprintf("owners_by_date[%s][%d]", key, i))
			res.Merge(issues)

			for _, o := range owners {
				refs = appendUnique(refs, reg.Add(o))
			}
		}

		resolved.Owners[norm] = refs
	}

	return resolved, res
}

func appendUnique(refs []models.Ref, ref models.Ref) []models.Ref {
	for _, r := range refs {
		if r == ref {
			return refs
		}
	}

	return append(refs, ref)
}
