package models

import (
	"fmt"
	"strings"
)

// Ref names an entity by its output file stem, e.g. "person_1".
type Ref string

// Path returns the relative file path used inside relationship documents.
func (r Ref) Path() string {
	return "./" + string(r) + ".json"
}

// FileName returns the entity's output file name.
func (r Ref) FileName() string {
	return string(r) + ".json"
}

// IndexedRef builds refs such as "sales_history_3".
func IndexedRef(kind string, n int) Ref {
	return Ref(fmt.Sprintf("%s_%d", kind, n))
}

// Link is the content-addressed pointer format used by the ingestion stage.
type Link struct {
	Path string `json:"/"`
}

// Relationship is the JSON body of a relationship file.
type Relationship struct {
	From Link `json:"from"`
	To   Link `json:"to"`
}

// Edge is a directed "has" relationship between two entities.
type Edge struct {
	From Ref
	To   Ref
}

// FileName returns the relationship file name; it is also the edge identity.
func (e Edge) FileName() string {
	return fmt.Sprintf("relationship_%s_has_%s.json", e.From, e.To)
}

// Relationship renders the edge body.
func (e Edge) Relationship() Relationship {
	return Relationship{
		From: Link{Path: e.From.Path()},
		To:   Link{Path: e.To.Path()},
	}
}

// Entity is an output record paired with its ref.
type Entity struct {
	Ref    Ref
	Record any
}

// Graph collects the entities and relationships produced by one extraction run.
type Graph struct {
	entities []Entity
	index    map[Ref]int
	edges    []Edge
	edgeSet  map[string]struct{}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index:   make(map[Ref]int),
		edgeSet: make(map[string]struct{}),
	}
}

// Put adds or replaces an entity. Replacement keeps the original position.
func (g *Graph) Put(ref Ref, record any) {
	if i, ok := g.index[ref]; ok {
		g.entities[i].Record = record
		return
	}

	g.index[ref] = len(g.entities)
	g.entities = append(g.entities, Entity{Ref: ref, Record: record})
}

// Get returns the record stored under ref.
func (g *Graph) Get(ref Ref) (any, bool) {
	i, ok := g.index[ref]
	if !ok {
		return nil, false
	}

	return g.entities[i].Record, true
}

// Has reports whether ref was added.
func (g *Graph) Has(ref Ref) bool {
	_, ok := g.index[ref]
	return ok
}

// Link records an edge once. It returns false when the edge already exists.
func (g *Graph) Link(from, to Ref) bool {
	e := Edge{From: from, To: to}

	name := e.FileName()
	if _, dup := g.edgeSet[name]; dup {
		return false
	}

	g.edgeSet[name] = struct{}{}
	g.edges = append(g.edges, e)

	return true
}

// Entities returns entities in insertion order.
func (g *Graph) Entities() []Entity {
	return g.entities
}

// Edges returns edges in insertion order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// CountKind counts entities whose ref is kind or kind_<n>.
func (g *Graph) CountKind(kind string) int {
	n := 0

	for _, e := range g.entities {
		s := string(e.Ref)
		if s == kind || strings.HasPrefix(s, kind+"_") && isDigits(s[len(kind)+1:]) {
			n++
		}
	}

	return n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
