package forest

import (
	"github.com/aleksaelezovic/quadforest/internal/keyset"
	"github.com/aleksaelezovic/quadforest/pkg/quad"
)

// DeleteMatches removes every quad satisfying pattern, returning how many
// were removed. Small deletions remove one-by-one, keeping every
// materialized secondary in sync; deletions past a threshold instead
// rebuild the primary by filtering it in one pass and drop every secondary
// back to empty, since re-filtering each secondary individually would cost
// more than re-materializing them lazily on next demand.
//
// The threshold divisor is 2 plus the number of currently materialized
// secondaries: rebuilding the primary plus re-walking it to re-materialize n
// secondaries costs roughly 1+n full scans, against one-by-one deletion's
// per-match cost across 1+n indexes, so the crossover sits at that fraction
// of the current size.
func (f *Forest) DeleteMatches(pattern quad.Pattern) int {
	matches := make([]quad.Quad, 0)
	for q := range f.Match(pattern, false) {
		matches = append(matches, q)
	}

	threshold := 2 + f.NumberOfMaterializedSecondaries()
	if len(matches) < f.Size()/threshold {
		for _, q := range matches {
			f.Delete(q)
		}
		return len(matches)
	}

	f.primary.Keys = f.primary.BuildByFilteringOut(pattern)
	for _, s := range f.secondaries {
		s.idx.Keys = keyset.New()
		s.materialized = false
	}
	return len(matches)
}
