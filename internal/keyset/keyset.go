// Package keyset is the ordered-set layer of the forest: a thin wrapper
// around google/btree's generic BTreeG, specialized to order.Key, adding
// the inclusive-range iteration and the four set-algebra primitives
// (union, intersection, difference, superset) the forest's set-algebra
// fast path needs as single linear-merge passes.
package keyset

import (
	"github.com/google/btree"

	"github.com/aleksaelezovic/quadforest/internal/order"
)

// degree mirrors a common choice for B-tree fan-out in Go btree users
// (gravitational-teleport's sortcache uses 8); there is nothing
// quad-specific about it, so the same value is kept here.
const degree = 8

func less(a, b order.Key) bool {
	return a.Less(b)
}

// Set is an ordered set of unique keys under a single, fixed component
// order (the order itself is not stored here; internal/index pairs a Set
// with the order.Order that produced its keys).
type Set struct {
	tree *btree.BTreeG[order.Key]
}

// New returns an empty key set.
func New() *Set {
	return &Set{tree: btree.NewG(degree, less)}
}

// Insert adds k, reporting whether it was not already present.
func (s *Set) Insert(k order.Key) (isNew bool) {
	_, existed := s.tree.ReplaceOrInsert(k)
	return !existed
}

// Delete removes k, reporting whether it was present.
func (s *Set) Delete(k order.Key) (existed bool) {
	_, existed = s.tree.Delete(k)
	return existed
}

// Contains reports whether k is a member.
func (s *Set) Contains(k order.Key) bool {
	return s.tree.Has(k)
}

// Len returns the number of keys.
func (s *Set) Len() int {
	return s.tree.Len()
}

// Range walks every key in the inclusive range [lo, hi], in ascending
// order, until yield returns false. The walk is implemented as an
// AscendGreaterOrEqual starting at lo with a manual cutoff at hi, rather
// than AscendRange's exclusive upper bound, because hi may already be
// math.MaxUint32 in every slot and computing "hi's successor" would
// overflow.
func (s *Set) Range(lo, hi order.Key, yield func(order.Key) bool) {
	s.tree.AscendGreaterOrEqual(lo, func(k order.Key) bool {
		if hi.Less(k) {
			return false
		}
		return yield(k)
	})
}

// All walks every key in ascending order.
func (s *Set) All(yield func(order.Key) bool) {
	s.tree.Ascend(func(k order.Key) bool {
		return yield(k)
	})
}

// sorted materializes the set's keys in ascending order, the basis for the
// linear-merge set-algebra primitives below.
func (s *Set) sorted() []order.Key {
	out := make([]order.Key, 0, s.tree.Len())
	s.tree.Ascend(func(k order.Key) bool {
		out = append(out, k)
		return true
	})
	return out
}

// fromSorted bulk-loads a new Set from an already-ascending, duplicate-free
// key slice, as produced by the merge helpers below.
func fromSorted(keys []order.Key) *Set {
	s := New()
	for _, k := range keys {
		s.tree.ReplaceOrInsert(k)
	}
	return s
}

// Union returns a new Set holding every key in s or other, in a single
// linear merge pass over both sorted key sequences.
func (s *Set) Union(other *Set) *Set {
	a, b := s.sorted(), other.sorted()
	out := make([]order.Key, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Less(b[j]):
			out = append(out, a[i])
			i++
		case b[j].Less(a[i]):
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return fromSorted(out)
}

// Intersect returns a new Set holding every key present in both s and
// other.
func (s *Set) Intersect(other *Set) *Set {
	a, b := s.sorted(), other.sorted()
	out := make([]order.Key, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Less(b[j]):
			i++
		case b[j].Less(a[i]):
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return fromSorted(out)
}

// Difference returns a new Set holding every key in s that is absent from
// other.
func (s *Set) Difference(other *Set) *Set {
	a, b := s.sorted(), other.sorted()
	out := make([]order.Key, 0, len(a))
	i, j := 0, 0
	for i < len(a) {
		if j >= len(b) || a[i].Less(b[j]) {
			out = append(out, a[i])
			i++
			continue
		}
		if b[j].Less(a[i]) {
			j++
			continue
		}
		// equal: a[i] is present in other, skip it
		i++
		j++
	}
	return fromSorted(out)
}

// IsSupersetOf reports whether every key of other is present in s.
func (s *Set) IsSupersetOf(other *Set) bool {
	a, b := s.sorted(), other.sorted()
	i, j := 0, 0
	for j < len(b) {
		if i >= len(a) || b[j].Less(a[i]) {
			return false
		}
		if a[i].Less(b[j]) {
			i++
			continue
		}
		i++
		j++
	}
	return true
}

