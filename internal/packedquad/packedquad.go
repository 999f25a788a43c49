// Package packedquad marshals quads to and from the flat packed-array
// format the host adapter exchanges with callers: a flat sequence of
// uint32 ids, four per quad, in (S, P, O, G) order.
package packedquad

import "github.com/aleksaelezovic/quadforest/pkg/quad"

// Decode unpacks a flat array into quads. A trailing partial quad (a
// length not a multiple of 4) is truncated rather than rejected, per the
// import error surface: "invalid packed-array lengths ... truncate the
// trailing partial quad (import)".
//
// Each quad i is read from encoded[4*i : 4*i+4] — the corrected indexing;
// an earlier variant of this routine read encoded[i*4] in some call paths
// and encoded[i] in others, silently ingesting garbage from overlapping
// windows.
func Decode(encoded []quad.ID) []quad.Quad {
	n := len(encoded) / 4
	out := make([]quad.Quad, n)
	for i := 0; i < n; i++ {
		out[i] = quad.New(
			encoded[4*i+0],
			encoded[4*i+1],
			encoded[4*i+2],
			encoded[4*i+3],
		)
	}
	return out
}

// DecodeExact is Decode, but panics if the input is not an exact multiple
// of 4 ids long, for the one call site (ContainsList) that requires
// exactness rather than tolerating a truncated trailing quad.
func DecodeExact(encoded []quad.ID) []quad.Quad {
	if len(encoded)%4 != 0 {
		panic("packedquad: packed array length must be a multiple of 4")
	}
	return Decode(encoded)
}

// Encode flattens quads into the packed array format, in traversal order.
func Encode(quads []quad.Quad) []quad.ID {
	out := make([]quad.ID, 0, len(quads)*4)
	for _, q := range quads {
		out = append(out, q.S, q.P, q.O, q.G)
	}
	return out
}
