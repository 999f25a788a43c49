package forest

import (
	"github.com/aleksaelezovic/quadforest/internal/index"
	"github.com/aleksaelezovic/quadforest/pkg/quad"
)

// candidate is one index under consideration for a query, annotated with
// the planner-relevant facts about it.
type candidate struct {
	idx          *index.Index
	materialized bool
	declOrder    int // 0 for primary, 1.. for secondaries in declaration order
}

func (f *Forest) candidates() []candidate {
	out := make([]candidate, 0, 1+len(f.secondaries))
	out = append(out, candidate{idx: f.primary, materialized: true, declOrder: 0})
	for i, s := range f.secondaries {
		out = append(out, candidate{idx: s.idx, materialized: s.materialized, declOrder: i + 1})
	}
	return out
}

// best picks the candidate a query against pattern should use, among the
// indexes eligible under allowMaterializing: highest prefix score wins;
// ties prefer an already-materialized index over one that would need
// materializing; further ties prefer earlier declaration order (primary
// before any secondary, and secondaries in declared order).
func (f *Forest) best(pattern quad.Pattern, allowMaterializing bool) *candidate {
	var chosen *candidate
	var chosenScore int
	for _, c := range f.candidates() {
		if !c.materialized && !allowMaterializing {
			continue
		}
		score := c.idx.Order.PrefixScore(pattern)
		if chosen == nil {
			cc := c
			chosen, chosenScore = &cc, score
			continue
		}
		if score > chosenScore {
			cc := c
			chosen, chosenScore = &cc, score
			continue
		}
		if score == chosenScore && better(c, *chosen) {
			cc := c
			chosen, chosenScore = &cc, score
		}
	}
	return chosen
}

// better reports whether candidate a should be preferred over the current
// best b, given they tie on score: materialized beats unmaterialized,
// then earlier declaration order wins.
func better(a, b candidate) bool {
	if a.materialized != b.materialized {
		return a.materialized
	}
	return a.declOrder < b.declOrder
}

// materialize populates a declared secondary by scanning the primary index
// once, translating every quad into the secondary's key order. A no-op if
// already materialized.
func (f *Forest) materialize(s *secondary) {
	if s.materialized {
		return
	}
	for q := range f.primary.All() {
		s.idx.Insert(q)
	}
	s.materialized = true
}

// EnsureIndexFor forces the best candidate index for pattern to be
// materialized (if it is a secondary and not already), without running the
// query. It returns the order string of the index that is now guaranteed
// materialized, for callers that want to confirm which one was chosen.
func (f *Forest) EnsureIndexFor(pattern quad.Pattern) string {
	c := f.best(pattern, true)
	if c == nil {
		return f.primary.Order.String()
	}
	if c.declOrder > 0 {
		f.materialize(f.secondaries[c.declOrder-1])
	}
	return c.idx.Order.String()
}

// planQuery picks the index to scan for pattern, materializing a secondary
// on demand when permitted. allowMaterializing mirrors the host adapter's
// per-call policy knob (a caller may want read-only queries that never pay
// a materialization cost).
func (f *Forest) planQuery(pattern quad.Pattern, allowMaterializing bool) *index.Index {
	c := f.best(pattern, allowMaterializing)
	if c == nil {
		return f.primary
	}
	if allowMaterializing && c.declOrder > 0 {
		f.materialize(f.secondaries[c.declOrder-1])
	}
	return c.idx
}
