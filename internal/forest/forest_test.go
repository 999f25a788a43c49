package forest

import (
	"math/rand"
	"testing"

	"github.com/aleksaelezovic/quadforest/internal/order"
	"github.com/aleksaelezovic/quadforest/pkg/quad"
)

func bound(v uint32) quad.OptionalID { return quad.Bound(v) }

var free = quad.Unbound

func TestNewDefault_HasFivePrimarySecondaries(t *testing.T) {
	f := NewDefault()
	if f.Size() != 0 {
		t.Errorf("new forest should be empty, got size %d", f.Size())
	}
	if len(f.secondaries) != 5 {
		t.Errorf("expected 5 secondary orders, got %d", len(f.secondaries))
	}
	if f.NumberOfMaterializedSecondaries() != 0 {
		t.Error("no secondary should be materialized at construction")
	}
}

func TestNewWithOrders_PanicsOnDuplicateOrder(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a duplicate order")
		}
	}()
	primary := defaultOrders()[0]
	NewWithOrders(primary, []order.Order{primary})
}

func TestInsertDeleteContains(t *testing.T) {
	f := NewDefault()
	q := quad.New(1, 2, 3, 4)

	if f.Contains(q) {
		t.Error("empty forest should not contain anything")
	}
	if !f.Insert(q) {
		t.Error("first insert should report new")
	}
	if f.Insert(q) {
		t.Error("second insert should report not-new")
	}
	if f.Size() != 1 {
		t.Errorf("Size() = %d, want 1", f.Size())
	}
	if !f.Delete(q) {
		t.Error("delete of present quad should report true")
	}
	if f.Delete(q) {
		t.Error("delete of absent quad should report false")
	}
	if f.Size() != 0 {
		t.Errorf("Size() after delete = %d, want 0", f.Size())
	}
}

func TestMaterialization_InsertPropagatesToMaterializedSecondary(t *testing.T) {
	f := NewDefault()
	f.Insert(quad.New(1, 2, 3, 4))

	pattern := quad.Pattern{P: bound(2)}
	f.EnsureIndexFor(pattern)
	if f.NumberOfMaterializedSecondaries() == 0 {
		t.Fatal("EnsureIndexFor should materialize a secondary for a predicate-only pattern")
	}

	f.Insert(quad.New(5, 2, 6, 7))
	count := f.MatchCount(pattern, false)
	if count != 2 {
		t.Errorf("MatchCount(P=2) = %d, want 2 (insert should reach the already-materialized secondary)", count)
	}
}

func TestMaterializeTwiceIsIdempotent(t *testing.T) {
	f := NewDefault()
	f.Insert(quad.New(1, 2, 3, 4))
	pattern := quad.Pattern{P: bound(2)}
	f.EnsureIndexFor(pattern)
	before := f.MatchCount(pattern, false)
	f.EnsureIndexFor(pattern)
	after := f.MatchCount(pattern, false)
	if before != after {
		t.Errorf("materializing twice changed the result: before=%d after=%d", before, after)
	}
}

// Scenario 1 from the end-to-end list: add three quads, delete-matches on
// predicate=2 leaves exactly the one quad whose predicate is 9.
func TestScenario1_AddThenDeleteMatches(t *testing.T) {
	f := NewDefault()
	f.Insert(quad.New(1, 2, 3, 4))
	f.Insert(quad.New(1, 2, 3, 5))
	f.Insert(quad.New(1, 9, 3, 4))
	if f.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", f.Size())
	}

	all := collect(f.Match(quad.Pattern{S: bound(1), O: bound(3)}, false))
	if len(all) != 3 {
		t.Fatalf("Match(S=1,O=3) returned %d, want 3", len(all))
	}

	removed := f.DeleteMatches(quad.Pattern{P: bound(2)})
	if removed != 2 {
		t.Errorf("DeleteMatches(P=2) removed %d, want 2", removed)
	}
	remaining := collect(f.All())
	if len(remaining) != 1 || remaining[0] != quad.New(1, 9, 3, 4) {
		t.Errorf("remaining = %v, want [(1 9 3 4)]", remaining)
	}
}

// Scenario 2: repeated insertion of the same quad is reported, not an
// error.
func TestScenario2_DuplicateInsertReported(t *testing.T) {
	f := NewDefault()
	q := quad.New(10, 20, 30, 40)
	if !f.Insert(q) {
		t.Error("first insert should be new")
	}
	if f.Insert(q) {
		t.Error("second insert should report already-present")
	}
	if f.Size() != 1 {
		t.Errorf("Size() = %d, want 1", f.Size())
	}
}

// Scenario 3: intersect-list against an empty forest, then a populated one.
func TestScenario3_IntersectListGrowsWithData(t *testing.T) {
	f := NewDefault()
	packed := []uint32{1, 2, 3, 4}
	if got := f.IntersectList(packed).Size(); got != 0 {
		t.Errorf("IntersectList on empty forest = %d, want 0", got)
	}
	f.Insert(quad.New(1, 2, 3, 4))
	if got := f.IntersectList(packed).Size(); got != 1 {
		t.Errorf("IntersectList after insert = %d, want 1", got)
	}
}

// Scenario 4: union/intersect/difference/contains across two forests.
func TestScenario4_SetAlgebra(t *testing.T) {
	a := NewDefault()
	a.Insert(quad.New(1, 1, 1, 1))
	a.Insert(quad.New(2, 2, 2, 2))

	b := NewDefault()
	b.Insert(quad.New(2, 2, 2, 2))
	b.Insert(quad.New(3, 3, 3, 3))

	if got := a.Union(b).Size(); got != 3 {
		t.Errorf("Union size = %d, want 3", got)
	}
	if got := a.Intersect(b).Size(); got != 1 {
		t.Errorf("Intersect size = %d, want 1", got)
	}
	diff := a.Difference(b)
	if diff.Size() != 1 || !diff.Contains(quad.New(1, 1, 1, 1)) {
		t.Errorf("Difference = %v, want only (1 1 1 1)", collect(diff.All()))
	}
	if a.IsSupersetOf(b) {
		t.Error("contains(A,B) should be false")
	}
	if !a.Union(b).IsSupersetOf(a) {
		t.Error("contains(union,A) should be true")
	}
}

// Scenario 5: 1000 random quads, get-all against all 16 pattern masks must
// match a brute-force linear filter.
func TestScenario5_RandomQuadsAgainstBruteForce(t *testing.T) {
	f := NewDefault()
	rng := rand.New(rand.NewSource(1))
	// ground is the set of distinct quads inserted: random draws repeat, and
	// the forest holds each quad once.
	ground := make([]quad.Quad, 0, 1000)
	for i := 0; i < 1000; i++ {
		q := quad.New(rng.Uint32()%10, rng.Uint32()%10, rng.Uint32()%10, rng.Uint32()%10)
		if f.Insert(q) {
			ground = append(ground, q)
		}
	}

	probe := ground[0]
	for mask := 0; mask < 16; mask++ {
		pattern := quad.Pattern{}
		if mask&1 != 0 {
			pattern.S = bound(probe.S)
		}
		if mask&2 != 0 {
			pattern.P = bound(probe.P)
		}
		if mask&4 != 0 {
			pattern.O = bound(probe.O)
		}
		if mask&8 != 0 {
			pattern.G = bound(probe.G)
		}

		got := collect(f.Match(pattern, true))
		want := bruteForce(ground, pattern)
		if len(got) != len(want) {
			t.Errorf("mask %04b: got %d quads, want %d", mask, len(got), len(want))
			continue
		}
		gotSet := make(map[quad.Quad]int)
		for _, q := range got {
			gotSet[q]++
		}
		for _, q := range want {
			gotSet[q]--
		}
		for q, diff := range gotSet {
			if diff != 0 {
				t.Errorf("mask %04b: quad %v count mismatch by %d", mask, q, diff)
			}
		}
	}
}

// Scenario 6: pattern-delete compaction empties the forest and
// re-materialization works correctly afterward.
func TestScenario6_CompactionThenReMaterialize(t *testing.T) {
	f := NewDefault()
	for i := uint32(0); i < 100; i++ {
		f.Insert(quad.New(7, i, i, i))
	}
	f.EnsureIndexFor(quad.Pattern{S: bound(7)})

	removed := f.DeleteMatches(quad.Pattern{S: bound(7)})
	if removed != 100 {
		t.Errorf("DeleteMatches removed %d, want 100", removed)
	}
	if f.Size() != 0 {
		t.Errorf("Size() after compaction = %d, want 0", f.Size())
	}
	if f.NumberOfMaterializedSecondaries() != 0 {
		t.Error("compaction should reset all secondaries to empty")
	}

	f.Insert(quad.New(7, 0, 0, 0))
	if !f.Contains(quad.New(7, 0, 0, 0)) {
		t.Error("has(7,0,0,0) should be true after re-add")
	}
}

// Universal invariant 6: trivially-mergeable fast path must agree with the
// quad-by-quad fallback.
func TestInvariant_TriviallyMergeableMatchesFallback(t *testing.T) {
	a := NewDefault()
	b := NewDefault()
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		a.Insert(quad.New(rng.Uint32()%10, 0, 0, 0))
		b.Insert(quad.New(rng.Uint32()%10, 0, 0, 0))
	}
	fastUnion := a.Union(b)

	fallback := a.likeConfig()
	for q := range a.All() {
		fallback.Insert(q)
	}
	for q := range b.All() {
		fallback.Insert(q)
	}

	if !fastUnion.EqualsAsSets(fallback) {
		t.Error("trivially-mergeable union should equal the fallback quad-by-quad union")
	}
}

func TestEqualsAsSets(t *testing.T) {
	a := NewDefault()
	a.Insert(quad.New(1, 1, 1, 1))
	b := NewDefault()
	b.Insert(quad.New(1, 1, 1, 1))
	if !a.EqualsAsSets(b) {
		t.Error("equal-content forests should be equal as sets")
	}
	b.Insert(quad.New(2, 2, 2, 2))
	if a.EqualsAsSets(b) {
		t.Error("forests with different sizes should not be equal as sets")
	}
}

func TestContainsList_PanicsOnPartialQuad(t *testing.T) {
	f := NewDefault()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a non-multiple-of-4 packed array")
		}
	}()
	f.ContainsList([]uint32{1, 2, 3})
}

func TestRoundTrip_FromPackedArray(t *testing.T) {
	f := NewDefault()
	f.Insert(quad.New(1, 2, 3, 4))
	f.Insert(quad.New(5, 6, 7, 8))

	packed := f.ToPackedArray()
	rebuilt := NewDefault()
	rebuilt.ImportPackedArray(packed)

	if !f.EqualsAsSets(rebuilt) {
		t.Error("round trip through ToPackedArray/ImportPackedArray should preserve the set of quads")
	}
}

func collect(seq func(func(quad.Quad) bool)) []quad.Quad {
	var out []quad.Quad
	seq(func(q quad.Quad) bool {
		out = append(out, q)
		return true
	})
	return out
}

func bruteForce(ground []quad.Quad, pattern quad.Pattern) []quad.Quad {
	var out []quad.Quad
	for _, q := range ground {
		if pattern.Matches(q) {
			out = append(out, q)
		}
	}
	return out
}
