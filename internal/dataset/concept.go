package dataset

import "sort"

// Concept is a coded clinical question or answer.
type Concept struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ConceptSet is a set of concepts keyed by concept id.
type ConceptSet map[int]Concept

// NewConceptSet builds a set from concepts.
func NewConceptSet(concepts ...Concept) ConceptSet {
	s := make(ConceptSet, len(concepts))
	for _, c := range concepts {
		s[c.ID] = c
	}
	return s
}

func (s ConceptSet) Add(c Concept) { s[c.ID] = c }

func (s ConceptSet) Remove(id int) { delete(s, id) }

func (s ConceptSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

func (s ConceptSet) Len() int { return len(s) }

// IDs returns the concept ids in ascending order.
func (s ConceptSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Concepts returns the members ordered by id.
func (s ConceptSet) Concepts() []Concept {
	out := make([]Concept, 0, len(s))
	for _, id := range s.IDs() {
		out = append(out, s[id])
	}
	return out
}
