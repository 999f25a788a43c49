// Package xhash provides fixed-width key hashing and a small hash set of
// quads, used to accelerate the parts of forest set algebra that cannot
// use the sorted-merge fast path: the cross-primary-order fallback of
// Intersect and Difference, and IntersectList and DifferenceList, none of
// which has a b-tree to binary-search against on the "other" side.
package xhash

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"

	"github.com/aleksaelezovic/quadforest/pkg/quad"
)

// HashQuad hashes a quad's big-endian-packed bytes with xxh3, the same
// hashing dependency (and the same big-endian packing convention) the
// teacher's encoding package used for string interning, here aimed at a
// fixed-width numeric key instead.
func HashQuad(q quad.Quad) uint64 {
	var buf [16]byte
	binary.BigEndian.PutUint32(buf[0:4], q.S)
	binary.BigEndian.PutUint32(buf[4:8], q.P)
	binary.BigEndian.PutUint32(buf[8:12], q.O)
	binary.BigEndian.PutUint32(buf[12:16], q.G)
	return xxh3.Hash(buf[:])
}

// Set is a bucketed hash set of quads. Collisions are resolved with a short
// per-bucket slice and an exact equality check, rather than a Go map keyed
// directly on quad.Quad, so that the hashing dependency is actually
// exercised instead of merely computed and discarded.
type Set struct {
	buckets map[uint64][]quad.Quad
	size    int
}

// NewSet returns an empty set, optionally pre-sizing its bucket map for n
// expected elements.
func NewSet(n int) *Set {
	if n < 0 {
		n = 0
	}
	return &Set{buckets: make(map[uint64][]quad.Quad, n)}
}

// NewSetFrom builds a set from a sequence of quads.
func NewSetFrom(quads []quad.Quad) *Set {
	s := NewSet(len(quads))
	for _, q := range quads {
		s.Add(q)
	}
	return s
}

// Add inserts q, reporting whether it was not already present.
func (s *Set) Add(q quad.Quad) bool {
	h := HashQuad(q)
	for _, existing := range s.buckets[h] {
		if existing == q {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], q)
	s.size++
	return true
}

// Contains reports whether q is a member.
func (s *Set) Contains(q quad.Quad) bool {
	h := HashQuad(q)
	for _, existing := range s.buckets[h] {
		if existing == q {
			return true
		}
	}
	return false
}

// Len returns the number of distinct quads stored.
func (s *Set) Len() int {
	return s.size
}
