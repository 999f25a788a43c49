package packedquad

import (
	"testing"

	"github.com/aleksaelezovic/quadforest/pkg/quad"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	quads := []quad.Quad{quad.New(1, 2, 3, 4), quad.New(5, 6, 7, 8)}
	encoded := Encode(quads)
	decoded := Decode(encoded)
	if len(decoded) != len(quads) {
		t.Fatalf("Decode returned %d quads, want %d", len(decoded), len(quads))
	}
	for i, q := range quads {
		if decoded[i] != q {
			t.Errorf("decoded[%d] = %v, want %v", i, decoded[i], q)
		}
	}
}

func TestDecode_TruncatesTrailingPartialQuad(t *testing.T) {
	encoded := []quad.ID{1, 2, 3, 4, 5, 6} // six ids: one full quad plus a partial one
	decoded := Decode(encoded)
	if len(decoded) != 1 {
		t.Fatalf("Decode truncated length = %d, want 1", len(decoded))
	}
	if decoded[0] != quad.New(1, 2, 3, 4) {
		t.Errorf("decoded[0] = %v, want (1 2 3 4)", decoded[0])
	}
}

func TestDecodeExact_PanicsOnPartialQuad(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a non-multiple-of-4 length")
		}
	}()
	DecodeExact([]quad.ID{1, 2, 3, 4, 5})
}

func TestDecode_IndexingDoesNotOverlap(t *testing.T) {
	// Regression guard for the corrected encoded[4i+k] indexing: with two
	// quads, the second quad's components must not echo the first's.
	encoded := []quad.ID{10, 20, 30, 40, 50, 60, 70, 80}
	decoded := Decode(encoded)
	if decoded[1] != quad.New(50, 60, 70, 80) {
		t.Errorf("decoded[1] = %v, want (50 60 70 80)", decoded[1])
	}
}
