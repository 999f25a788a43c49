// Package forest implements the forest of sorted indexes: a fixed primary
// index plus zero or more lazily materialized secondary indexes, the query
// planner that picks among them, mutation, pattern-delete compaction, and
// set algebra. This is the hard part of the system; everything else in the
// module is a client of it.
package forest

import (
	"github.com/aleksaelezovic/quadforest/internal/index"
	"github.com/aleksaelezovic/quadforest/internal/order"
	"github.com/aleksaelezovic/quadforest/pkg/quad"
)

// secondary is a declared, lazily materialized index: a two-state latch
// (empty or materialized) distinct from "materialized but empty", because
// insert/delete must skip the former and update the latter.
type secondary struct {
	idx          *index.Index
	materialized bool
}

// Forest is a fixed primary index plus a declared list of secondaries.
type Forest struct {
	primary     *index.Index
	secondaries []*secondary
}

// defaultOrders lists the six component orders the reference forest uses:
// index 0 is the default primary ([O, G, P, S]); the rest are its declared
// secondaries, in declaration order. This is also the full candidate pool
// NewAnti scores against. Taken directly from the corrected Rust ancestor's
// new_anti candidate list (see DESIGN.md).
func defaultOrders() [6]order.Order {
	return [6]order.Order{
		order.New(quad.O, quad.G, quad.P, quad.S),
		order.New(quad.S, quad.P, quad.O, quad.G),
		order.New(quad.G, quad.P, quad.S, quad.O),
		order.New(quad.P, quad.O, quad.G, quad.S),
		order.New(quad.G, quad.S, quad.P, quad.O),
		order.New(quad.O, quad.S, quad.G, quad.P),
	}
}

// NewDefault builds a forest with primary order [O, G, P, S] and the five
// remaining default orders declared as empty secondaries.
func NewDefault() *Forest {
	orders := defaultOrders()
	return NewWithOrders(orders[0], orders[1:])
}

// NewWithOrders builds a forest with the given primary order and declared
// secondary orders (each initially empty). Panics if any two of the
// primary-plus-secondaries repeat the same permutation, matching the
// forest invariant that every order is distinct.
func NewWithOrders(primary order.Order, secondaries []order.Order) *Forest {
	f := &Forest{primary: index.New(primary)}
	seen := []order.Order{primary}
	for _, o := range secondaries {
		for _, s := range seen {
			if s.Equal(o) {
				panic("forest: duplicate order declared: " + o.String())
			}
		}
		seen = append(seen, o)
		f.secondaries = append(f.secondaries, &secondary{idx: index.New(o)})
	}
	return f
}

// NewAnti builds a forest whose primary order is the best-scoring candidate
// (among the six default orders) for queries that pin exactly the
// positions named false here and leave the positions named true free
// (unconstrained). The remaining five candidates are declared as
// secondaries, in the order they appear in defaultOrders (excluding the
// chosen primary).
func NewAnti(sFree, pFree, oFree, gFree bool) *Forest {
	complement := quad.Pattern{
		S: boundUnless(sFree),
		P: boundUnless(pFree),
		O: boundUnless(oFree),
		G: boundUnless(gFree),
	}

	candidates := defaultOrders()
	best := 0
	bestScore := -1
	for i, o := range candidates {
		if score := o.PrefixScore(complement); score > bestScore {
			bestScore = score
			best = i
		}
	}

	primary := candidates[best]
	var secondaries []order.Order
	for i, o := range candidates {
		if i != best {
			secondaries = append(secondaries, o)
		}
	}
	return NewWithOrders(primary, secondaries)
}

// boundUnless returns an arbitrary bound value (0) when free is false, and
// Unbound when free is true: the anti-pattern constructor scores candidate
// orders against the complement of "which positions are free", since a
// position that is NOT free is the one a real query would pin.
func boundUnless(free bool) quad.OptionalID {
	if free {
		return quad.Unbound
	}
	return quad.Bound(0)
}

// Size returns the number of distinct quads in the forest.
func (f *Forest) Size() int {
	return f.primary.Len()
}

// NumberOfMaterializedSecondaries returns how many declared secondaries are
// currently populated.
func (f *Forest) NumberOfMaterializedSecondaries() int {
	n := 0
	for _, s := range f.secondaries {
		if s.materialized {
			n++
		}
	}
	return n
}

// secondaryOrders returns the declared secondary orders, for forests
// produced as the result of set-algebra operations that must replicate a
// receiver's configuration (see DESIGN.md, Open Question 4).
func (f *Forest) secondaryOrders() []order.Order {
	out := make([]order.Order, len(f.secondaries))
	for i, s := range f.secondaries {
		out[i] = s.idx.Order
	}
	return out
}

// likeConfig builds a new, empty forest sharing f's primary order and
// declared secondary orders.
func (f *Forest) likeConfig() *Forest {
	return NewWithOrders(f.primary.Order, f.secondaryOrders())
}
