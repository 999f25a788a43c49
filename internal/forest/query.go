package forest

import "github.com/aleksaelezovic/quadforest/internal/packedquad"

// ToPackedArray exports every quad in the forest as a flat packed array, in
// primary-order traversal order.
func (f *Forest) ToPackedArray() []uint32 {
	quads := make([]uint32, 0, f.Size()*4)
	for q := range f.All() {
		quads = append(quads, q.S, q.P, q.O, q.G)
	}
	return quads
}

// ImportPackedArray bulk-inserts every quad packed in encoded, returning how
// many were newly inserted (duplicates already present are skipped, not
// errors). A trailing partial quad is truncated rather than rejected.
func (f *Forest) ImportPackedArray(encoded []uint32) int {
	inserted := 0
	for _, q := range packedquad.Decode(encoded) {
		if f.Insert(q) {
			inserted++
		}
	}
	return inserted
}
