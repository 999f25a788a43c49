package keyset

import (
	"testing"

	"github.com/aleksaelezovic/quadforest/internal/order"
)

func k(a, b, c, d uint32) order.Key { return order.Key{a, b, c, d} }

func TestSet_InsertDeleteContains(t *testing.T) {
	s := New()
	if s.Contains(k(1, 2, 3, 4)) {
		t.Error("empty set should not contain anything")
	}
	if !s.Insert(k(1, 2, 3, 4)) {
		t.Error("first insert should report new")
	}
	if s.Insert(k(1, 2, 3, 4)) {
		t.Error("second insert of the same key should report not-new")
	}
	if !s.Contains(k(1, 2, 3, 4)) {
		t.Error("set should contain the inserted key")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if !s.Delete(k(1, 2, 3, 4)) {
		t.Error("delete of present key should report true")
	}
	if s.Delete(k(1, 2, 3, 4)) {
		t.Error("delete of absent key should report false")
	}
}

func TestSet_Range(t *testing.T) {
	s := New()
	for i := uint32(0); i < 10; i++ {
		s.Insert(k(i, 0, 0, 0))
	}
	var got []order.Key
	s.Range(k(3, 0, 0, 0), k(6, 0, 0, 0), func(key order.Key) bool {
		got = append(got, key)
		return true
	})
	if len(got) != 4 {
		t.Fatalf("Range() returned %d keys, want 4", len(got))
	}
	for i, key := range got {
		want := k(uint32(3+i), 0, 0, 0)
		if key != want {
			t.Errorf("got[%d] = %v, want %v", i, key, want)
		}
	}
}

func TestSet_Range_MaxUpperBoundDoesNotOverflow(t *testing.T) {
	s := New()
	s.Insert(k(^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0)))
	var got []order.Key
	s.Range(k(0, 0, 0, 0), k(^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0)), func(key order.Key) bool {
		got = append(got, key)
		return true
	})
	if len(got) != 1 {
		t.Fatalf("Range() returned %d keys, want 1", len(got))
	}
}

func buildSet(keys ...order.Key) *Set {
	s := New()
	for _, key := range keys {
		s.Insert(key)
	}
	return s
}

func TestSet_Union(t *testing.T) {
	a := buildSet(k(1, 0, 0, 0), k(2, 0, 0, 0))
	b := buildSet(k(2, 0, 0, 0), k(3, 0, 0, 0))
	u := a.Union(b)
	if u.Len() != 3 {
		t.Errorf("Union Len() = %d, want 3", u.Len())
	}
}

func TestSet_Intersect(t *testing.T) {
	a := buildSet(k(1, 0, 0, 0), k(2, 0, 0, 0))
	b := buildSet(k(2, 0, 0, 0), k(3, 0, 0, 0))
	i := a.Intersect(b)
	if i.Len() != 1 || !i.Contains(k(2, 0, 0, 0)) {
		t.Errorf("Intersect() = %+v, want only {2,0,0,0}", i)
	}
}

func TestSet_Difference(t *testing.T) {
	a := buildSet(k(1, 0, 0, 0), k(2, 0, 0, 0))
	b := buildSet(k(2, 0, 0, 0), k(3, 0, 0, 0))
	d := a.Difference(b)
	if d.Len() != 1 || !d.Contains(k(1, 0, 0, 0)) {
		t.Errorf("Difference() = %+v, want only {1,0,0,0}", d)
	}
}

func TestSet_IsSupersetOf(t *testing.T) {
	a := buildSet(k(1, 0, 0, 0), k(2, 0, 0, 0), k(3, 0, 0, 0))
	b := buildSet(k(1, 0, 0, 0), k(3, 0, 0, 0))
	c := buildSet(k(1, 0, 0, 0), k(9, 0, 0, 0))
	if !a.IsSupersetOf(b) {
		t.Error("a should be a superset of b")
	}
	if a.IsSupersetOf(c) {
		t.Error("a should not be a superset of c")
	}
	if !a.IsSupersetOf(New()) {
		t.Error("every set is a superset of the empty set")
	}
}
