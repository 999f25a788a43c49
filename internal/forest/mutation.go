package forest

import (
	"iter"

	"github.com/aleksaelezovic/quadforest/pkg/quad"
)

// Insert adds q to every materialized index (the primary always, plus any
// secondary that has already been materialized), reporting whether q was
// not already present. Unmaterialized secondaries are left untouched; they
// will observe q the next time they are materialized from the primary.
func (f *Forest) Insert(q quad.Quad) bool {
	isNew := f.primary.Insert(q)
	if !isNew {
		return false
	}
	for _, s := range f.secondaries {
		if s.materialized {
			s.idx.Insert(q)
		}
	}
	return true
}

// Delete removes q from every materialized index, reporting whether it was
// present.
func (f *Forest) Delete(q quad.Quad) bool {
	existed := f.primary.Delete(q)
	if !existed {
		return false
	}
	for _, s := range f.secondaries {
		if s.materialized {
			s.idx.Delete(q)
		}
	}
	return true
}

// Contains reports whether q is a member. A fully bound pattern ties at
// prefix-score 4 on every candidate index, so this goes straight to the
// primary rather than routing through the planner.
func (f *Forest) Contains(q quad.Quad) bool {
	return f.primary.Contains(q)
}

// Match streams every quad satisfying pattern, planning which index to
// scan (materializing a secondary on demand when allowMaterializing is
// true).
func (f *Forest) Match(pattern quad.Pattern, allowMaterializing bool) iter.Seq[quad.Quad] {
	idx := f.planQuery(pattern, allowMaterializing)
	return idx.Filter(pattern)
}

// MatchCount counts the quads satisfying pattern without materializing
// allocations for each one.
func (f *Forest) MatchCount(pattern quad.Pattern, allowMaterializing bool) int {
	n := 0
	for range f.Match(pattern, allowMaterializing) {
		n++
	}
	return n
}

// All streams every quad in the forest, via the primary index.
func (f *Forest) All() iter.Seq[quad.Quad] {
	return f.primary.All()
}
