// Package index pairs one component order with one ordered key set,
// translating quad-level operations (insert, delete, contains, filter)
// into key-level operations on that set.
package index

import (
	"iter"

	"github.com/aleksaelezovic/quadforest/internal/keyset"
	"github.com/aleksaelezovic/quadforest/internal/order"
	"github.com/aleksaelezovic/quadforest/pkg/quad"
)

// Index is one (order, key-set) pair.
type Index struct {
	Order order.Order
	Keys  *keyset.Set
}

// New returns an empty index under the given order.
func New(o order.Order) *Index {
	return &Index{Order: o, Keys: keyset.New()}
}

// Insert adds q, reporting whether it was not already present.
func (idx *Index) Insert(q quad.Quad) bool {
	return idx.Keys.Insert(idx.Order.ToKey(q))
}

// Delete removes q, reporting whether it was present.
func (idx *Index) Delete(q quad.Quad) bool {
	return idx.Keys.Delete(idx.Order.ToKey(q))
}

// Contains reports whether q is a member.
func (idx *Index) Contains(q quad.Quad) bool {
	return idx.Keys.Contains(idx.Order.ToKey(q))
}

// Len returns the number of quads indexed.
func (idx *Index) Len() int {
	return idx.Keys.Len()
}

// Filter streams every quad matching pattern, scanning only the key range
// the pattern's pinned prefix collapses to and checking the residual
// filter-key against the rest.
func (idx *Index) Filter(pattern quad.Pattern) iter.Seq[quad.Quad] {
	lo, hi, residual := idx.Order.Range(pattern)
	return func(yield func(quad.Quad) bool) {
		idx.Keys.Range(lo, hi, func(k order.Key) bool {
			if !residual.Match(k) {
				return true
			}
			return yield(idx.Order.ToQuad(k))
		})
	}
}

// All streams every quad in the index, in this order's sort order.
func (idx *Index) All() iter.Seq[quad.Quad] {
	return func(yield func(quad.Quad) bool) {
		idx.Keys.All(func(k order.Key) bool {
			return yield(idx.Order.ToQuad(k))
		})
	}
}

// BuildByFilteringOut returns a new key set holding every key of idx whose
// quad does NOT match pattern — the bulk-rebuild primitive pattern-delete
// compaction uses on the primary index.
func (idx *Index) BuildByFilteringOut(pattern quad.Pattern) *keyset.Set {
	out := keyset.New()
	idx.Keys.All(func(k order.Key) bool {
		if !pattern.Matches(idx.Order.ToQuad(k)) {
			out.Insert(k)
		}
		return true
	})
	return out
}
