package forest

import (
	"github.com/aleksaelezovic/quadforest/internal/packedquad"
	"github.com/aleksaelezovic/quadforest/internal/xhash"
	"github.com/aleksaelezovic/quadforest/pkg/quad"
)

// triviallyMergeable reports whether f and other share the exact same
// primary component order, making their primary key sets directly
// comparable without any quad-level re-permutation: the fast path every
// set-algebra operation below tries first.
func (f *Forest) triviallyMergeable(other *Forest) bool {
	return f.primary.Order.Equal(other.primary.Order)
}

// Union returns a new forest (configured like the receiver) holding every
// quad present in f or other.
func (f *Forest) Union(other *Forest) *Forest {
	out := f.likeConfig()
	if f.triviallyMergeable(other) {
		out.primary.Keys = f.primary.Keys.Union(other.primary.Keys)
		return out
	}
	for q := range f.All() {
		out.primary.Insert(q)
	}
	for q := range other.All() {
		out.primary.Insert(q)
	}
	return out
}

// Intersect returns a new forest holding every quad present in both f and
// other.
func (f *Forest) Intersect(other *Forest) *Forest {
	out := f.likeConfig()
	if f.triviallyMergeable(other) {
		out.primary.Keys = f.primary.Keys.Intersect(other.primary.Keys)
		return out
	}
	members := xhash.NewSet(other.Size())
	for q := range other.All() {
		members.Add(q)
	}
	for q := range f.All() {
		if members.Contains(q) {
			out.primary.Insert(q)
		}
	}
	return out
}

// Difference returns a new forest holding every quad present in f but
// absent from other.
func (f *Forest) Difference(other *Forest) *Forest {
	out := f.likeConfig()
	if f.triviallyMergeable(other) {
		out.primary.Keys = f.primary.Keys.Difference(other.primary.Keys)
		return out
	}
	members := xhash.NewSet(other.Size())
	for q := range other.All() {
		members.Add(q)
	}
	for q := range f.All() {
		if !members.Contains(q) {
			out.primary.Insert(q)
		}
	}
	return out
}

// IsSupersetOf reports whether every quad of other is present in f.
func (f *Forest) IsSupersetOf(other *Forest) bool {
	if f.triviallyMergeable(other) {
		return f.primary.Keys.IsSupersetOf(other.primary.Keys)
	}
	for q := range other.All() {
		if !f.Contains(q) {
			return false
		}
	}
	return true
}

// EqualsAsSets reports whether f and other hold exactly the same quads,
// irrespective of which component orders either one has materialized.
func (f *Forest) EqualsAsSets(other *Forest) bool {
	return f.Size() == other.Size() && f.IsSupersetOf(other)
}

// UnionList is the packed-array variant of Union: it decodes encoded (a
// trailing partial quad truncated) and unions it against f without ever
// building a throwaway forest for the right-hand side.
func (f *Forest) UnionList(encoded []quad.ID) *Forest {
	out := f.likeConfig()
	for q := range f.All() {
		out.primary.Insert(q)
	}
	for _, q := range packedquad.Decode(encoded) {
		out.primary.Insert(q)
	}
	return out
}

// IntersectList is the packed-array variant of Intersect.
func (f *Forest) IntersectList(encoded []quad.ID) *Forest {
	members := xhash.NewSetFrom(packedquad.Decode(encoded))
	out := f.likeConfig()
	for q := range f.All() {
		if members.Contains(q) {
			out.primary.Insert(q)
		}
	}
	return out
}

// DifferenceList is the packed-array variant of Difference.
func (f *Forest) DifferenceList(encoded []quad.ID) *Forest {
	members := xhash.NewSetFrom(packedquad.Decode(encoded))
	out := f.likeConfig()
	for q := range f.All() {
		if !members.Contains(q) {
			out.primary.Insert(q)
		}
	}
	return out
}

// ContainsList reports whether every quad packed in encoded is present in
// f. Unlike the decoding used by the other list variants, this requires
// encoded to be an exact multiple of 4 ids long: a caller asking "does the
// store contain these quads" almost certainly made an encoding mistake if
// it hands over a truncated trailing quad, so this is the one call site
// that asserts instead of tolerating it.
func (f *Forest) ContainsList(encoded []quad.ID) bool {
	for _, q := range packedquad.DecodeExact(encoded) {
		if !f.Contains(q) {
			return false
		}
	}
	return true
}
