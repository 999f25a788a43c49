// Package order implements component orders: permutations of the four quad
// positions that determine how a quad is laid out as a sortable key, plus
// the range/prefix-score arithmetic the forest's planner relies on.
package order

import (
	"errors"
	"fmt"
	"math"

	"github.com/aleksaelezovic/quadforest/pkg/quad"
)

// ErrInvalidOrder is returned by TryNew when the four supplied positions are
// not exactly one each of S, P, O, G.
var ErrInvalidOrder = errors.New("order: positions must be a permutation of S, P, O, G")

// Key is a quad permuted into one component order's slot layout. Two keys
// are only comparable when they were produced by the same Order; nothing in
// this package prevents mixing them, so callers must keep keys scoped to
// the Order that produced them (as internal/index and internal/keyset do).
type Key [4]quad.ID

// Less orders two keys lexicographically by slot, ascending.
func (k Key) Less(other Key) bool {
	for i := 0; i < 4; i++ {
		if k[i] != other[i] {
			return k[i] < other[i]
		}
	}
	return false
}

// FilterKey is a pattern permuted into key-slot order; each slot remains
// optional.
type FilterKey [4]quad.OptionalID

// Match reports whether every bound slot of fk equals the corresponding
// slot of k.
func (fk FilterKey) Match(k Key) bool {
	for i := 0; i < 4; i++ {
		if fk[i].Present && fk[i].Value != k[i] {
			return false
		}
	}
	return true
}

// Order is a permutation of the four quad positions together with its two
// derived lookup tables.
type Order struct {
	// toQuad[slot] is the quad position held at that key slot.
	toQuad [4]quad.Position
	// toKey[quadPosition] is the key slot holding that quad position.
	toKey [4]int
}

// New builds an Order from four slot positions (slot 0 first) and panics if
// they are not a permutation of S, P, O, G. Intended for call sites that
// construct orders from compile-time-fixed literals (the default forest,
// NewAnti's candidate list), where a malformed order is a programmer error,
// not caller input to validate gracefully.
func New(slot0, slot1, slot2, slot3 quad.Position) Order {
	o, err := TryNew(slot0, slot1, slot2, slot3)
	if err != nil {
		panic(err)
	}
	return o
}

// TryNew builds an Order from four slot positions, returning ErrInvalidOrder
// instead of panicking when they do not form a permutation. Used where the
// orders come from the caller (quadstore.NewWithOrders).
func TryNew(slot0, slot1, slot2, slot3 quad.Position) (Order, error) {
	positions := [4]quad.Position{slot0, slot1, slot2, slot3}
	var seen [4]bool
	for _, p := range positions {
		if p < quad.S || p > quad.G || seen[p] {
			return Order{}, fmt.Errorf("%w: got %v", ErrInvalidOrder, positions)
		}
		seen[p] = true
	}

	var toKey [4]int
	for slot, pos := range positions {
		toKey[pos] = slot
	}

	return Order{toQuad: positions, toKey: toKey}, nil
}

// Positions returns the slot layout (slot 0 first).
func (o Order) Positions() [4]quad.Position {
	return o.toQuad
}

func (o Order) String() string {
	return fmt.Sprintf("%v%v%v%v", o.toQuad[0], o.toQuad[1], o.toQuad[2], o.toQuad[3])
}

// Equal reports whether two orders are the same permutation.
func (o Order) Equal(other Order) bool {
	return o.toQuad == other.toQuad
}

// ToKey permutes a quad into this order's key layout.
func (o Order) ToKey(q quad.Quad) Key {
	var k Key
	for slot := 0; slot < 4; slot++ {
		k[slot] = q.Get(o.toQuad[slot])
	}
	return k
}

// ToQuad is the inverse of ToKey.
func (o Order) ToQuad(k Key) quad.Quad {
	var q quad.Quad
	for slot := 0; slot < 4; slot++ {
		v := k[slot]
		switch o.toQuad[slot] {
		case quad.S:
			q.S = v
		case quad.P:
			q.P = v
		case quad.O:
			q.O = v
		case quad.G:
			q.G = v
		}
	}
	return q
}

// ToFilterKey permutes a pattern into this order's key-slot layout.
func (o Order) ToFilterKey(p quad.Pattern) FilterKey {
	var fk FilterKey
	for slot := 0; slot < 4; slot++ {
		fk[slot] = p.Get(o.toQuad[slot])
	}
	return fk
}

// PrefixScore is the count of leading key slots bound by the pattern: the
// length of the key prefix that range() can pin to a single value. The
// planner ranks candidate indexes by it; candidates with equal scores are
// told apart by the planner's own tie-break rules (internal/forest).
func (o Order) PrefixScore(p quad.Pattern) int {
	score := 0
	for slot := 0; slot < 4; slot++ {
		if !p.Get(o.toQuad[slot]).Present {
			break
		}
		score++
	}
	return score
}

// Range computes the inclusive [lo, hi] key range a pattern collapses to
// under this order, plus the residual filter-key a scanner must still check
// against each key in that range (slots beyond the pinned prefix, and any
// bound slot that happens to sit outside of it).
func (o Order) Range(p quad.Pattern) (lo, hi Key, residual FilterKey) {
	residual = o.ToFilterKey(p)

	pinned := true
	for slot := 0; slot < 4; slot++ {
		v := residual[slot]
		if pinned && v.Present {
			lo[slot] = v.Value
			hi[slot] = v.Value
			continue
		}
		pinned = false
		lo[slot] = 0
		hi[slot] = math.MaxUint32
	}
	return lo, hi, residual
}
