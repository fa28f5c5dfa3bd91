package source

import "testing"

func TestSpanCoverAndShift(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}

	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Fatalf("Cover across files must keep receiver, got %v", got)
	}
	if got := a.ShiftLeft(15); got != a {
		t.Fatalf("ShiftLeft past start must keep span, got %v", got)
	}
	if got := a.ShiftLeft(10); got != (Span{File: 1, Start: 0, End: 10}) {
		t.Fatalf("ShiftLeft = %v", got)
	}
	if got := a.ShiftRight(1); got != (Span{File: 1, Start: 11, End: 21}) {
		t.Fatalf("ShiftRight = %v", got)
	}
	if !a.Contains(Span{File: 1, Start: 12, End: 20}) || a.Contains(b) {
		t.Fatalf("Contains mismatch")
	}
	if p := a.EndPoint(); !p.Empty() || p.Start != 20 {
		t.Fatalf("EndPoint = %v", p)
	}
}
