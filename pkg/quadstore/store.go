// Package quadstore is the host-facing adapter over the forest: it
// translates the operations surface spec.md describes — nilable-pointer
// optionals and flat packed-array payloads, the calling convention the
// original's wasm boundary used — into calls against internal/forest, so
// nothing outside this package and cmd/quadforest ever imports internal/*
// directly.
package quadstore

import (
	"github.com/aleksaelezovic/quadforest/internal/forest"
	"github.com/aleksaelezovic/quadforest/internal/order"
	"github.com/aleksaelezovic/quadforest/pkg/quad"
)

// Store is one forest, addressed through the public operations surface.
type Store struct {
	f *forest.Forest
}

// NewDefault constructs a store using the six default component orders.
func NewDefault() *Store {
	return &Store{f: forest.NewDefault()}
}

// NewWithOrders constructs a store with an explicit primary order and
// declared secondary orders, given as four-position permutations (slot 0
// first). Panics if primary or any secondary is not a permutation of the
// four positions, or if any two orders repeat.
func NewWithOrders(primary [4]quad.Position, secondaries [][4]quad.Position) *Store {
	primaryOrder, err := order.TryNew(primary[0], primary[1], primary[2], primary[3])
	if err != nil {
		panic(err)
	}
	secondaryOrders := make([]order.Order, len(secondaries))
	for i, s := range secondaries {
		o, err := order.TryNew(s[0], s[1], s[2], s[3])
		if err != nil {
			panic(err)
		}
		secondaryOrders[i] = o
	}
	return &Store{f: forest.NewWithOrders(primaryOrder, secondaryOrders)}
}

// NewAnti constructs a store whose primary order best fits queries that
// leave exactly the free-marked positions unconstrained.
func NewAnti(sFree, pFree, oFree, gFree bool) *Store {
	return &Store{f: forest.NewAnti(sFree, pFree, oFree, gFree)}
}

// Size returns the number of distinct quads stored.
func (s *Store) Size() int {
	return s.f.Size()
}

// Add inserts a quad, reporting whether it was not already present.
func (s *Store) Add(subj, pred, obj, graph uint32) bool {
	return s.f.Insert(quad.New(subj, pred, obj, graph))
}

// Remove deletes a quad, reporting whether it was present.
func (s *Store) Remove(subj, pred, obj, graph uint32) bool {
	return s.f.Delete(quad.New(subj, pred, obj, graph))
}

// Has reports whether a quad is present.
func (s *Store) Has(subj, pred, obj, graph uint32) bool {
	return s.f.Contains(quad.New(subj, pred, obj, graph))
}

// GetAll returns every quad matching the pattern (nil components are
// wildcards) as a flat packed array, in the traversal order of whichever
// index answers the query; a secondary may be materialized as a side
// effect.
func (s *Store) GetAll(subj, pred, obj, graph *uint32) []uint32 {
	pattern := patternOf(subj, pred, obj, graph)
	quads := make([]quad.Quad, 0)
	for q := range s.f.Match(pattern, true) {
		quads = append(quads, q)
	}
	out := make([]uint32, 0, len(quads)*4)
	for _, q := range quads {
		out = append(out, q.S, q.P, q.O, q.G)
	}
	return out
}

// MatchCount counts the quads matching the pattern without allocating a
// result array.
func (s *Store) MatchCount(subj, pred, obj, graph *uint32) int {
	return s.f.MatchCount(patternOf(subj, pred, obj, graph), true)
}

// NewFrom builds a new store, under the default order configuration,
// holding the subset of s matching the pattern.
func (s *Store) NewFrom(subj, pred, obj, graph *uint32) *Store {
	pattern := patternOf(subj, pred, obj, graph)
	out := NewDefault()
	for q := range s.f.Match(pattern, true) {
		out.f.Insert(q)
	}
	return out
}

// DeleteMatches removes every quad matching the pattern, returning how many
// were removed.
func (s *Store) DeleteMatches(subj, pred, obj, graph *uint32) int {
	return s.f.DeleteMatches(patternOf(subj, pred, obj, graph))
}

// EnsureIndexFor forces materialization of the best secondary for a
// pattern shape (bound/free per position), without running a query.
func (s *Store) EnsureIndexFor(sBound, pBound, oBound, gBound bool) string {
	pattern := quad.Pattern{
		S: boundFlag(sBound),
		P: boundFlag(pBound),
		O: boundFlag(oBound),
		G: boundFlag(gBound),
	}
	return s.f.EnsureIndexFor(pattern)
}

// NumberOfMaterializedSecondaries returns how many declared secondaries are
// currently populated.
func (s *Store) NumberOfMaterializedSecondaries() int {
	return s.f.NumberOfMaterializedSecondaries()
}

// Union, Intersect, and Difference return a new store holding the
// corresponding set-algebra result against other.
func (s *Store) Union(other *Store) *Store      { return &Store{f: s.f.Union(other.f)} }
func (s *Store) Intersect(other *Store) *Store  { return &Store{f: s.f.Intersect(other.f)} }
func (s *Store) Difference(other *Store) *Store { return &Store{f: s.f.Difference(other.f)} }

// Contains reports whether s is a superset of other.
func (s *Store) Contains(other *Store) bool {
	return s.f.IsSupersetOf(other.f)
}

// EqualsAsSets reports whether s and other hold exactly the same quads.
func (s *Store) EqualsAsSets(other *Store) bool {
	return s.f.EqualsAsSets(other.f)
}

// InsertFromList bulk-inserts every quad packed in encoded, returning how
// many were newly inserted.
func (s *Store) InsertFromList(encoded []uint32) int {
	return s.f.ImportPackedArray(encoded)
}

// FromList builds a new default-configured store from a packed array.
func FromList(encoded []uint32) *Store {
	s := NewDefault()
	s.f.ImportPackedArray(encoded)
	return s
}

// UnionList, IntersectList, and DifferenceList are the packed-array
// variants of Union, Intersect, and Difference.
func (s *Store) UnionList(encoded []uint32) *Store      { return &Store{f: s.f.UnionList(encoded)} }
func (s *Store) IntersectList(encoded []uint32) *Store  { return &Store{f: s.f.IntersectList(encoded)} }
func (s *Store) DifferenceList(encoded []uint32) *Store { return &Store{f: s.f.DifferenceList(encoded)} }

// ContainsList reports whether every quad packed in encoded is present in
// s. encoded's length must be an exact multiple of 4; violating that is a
// programmer-contract error and panics.
func (s *Store) ContainsList(encoded []uint32) bool {
	return s.f.ContainsList(encoded)
}

// EqualsList reports whether s holds exactly the quads packed in encoded,
// as a set.
func (s *Store) EqualsList(encoded []uint32) bool {
	other := FromList(encoded)
	return s.EqualsAsSets(other)
}

func patternOf(subj, pred, obj, graph *uint32) quad.Pattern {
	return quad.Pattern{
		S: optionalOf(subj),
		P: optionalOf(pred),
		O: optionalOf(obj),
		G: optionalOf(graph),
	}
}

func optionalOf(v *uint32) quad.OptionalID {
	if v == nil {
		return quad.Unbound
	}
	return quad.Bound(*v)
}

func boundFlag(bound bool) quad.OptionalID {
	if bound {
		return quad.Bound(0)
	}
	return quad.Unbound
}
