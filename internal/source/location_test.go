package source

import "testing"

func TestLocationString(t *testing.T) {
	loc := At(12, 5, 9)
	if got := loc.String(); got != "12:5-9" {
		t.Fatalf("expected 12:5-9, got %q", got)
	}
}

func TestLocationCover(t *testing.T) {
	a := At(3, 4, 6)
	b := At(3, 10, 12)
	got := a.Cover(b)
	if got != At(3, 4, 12) {
		t.Fatalf("unexpected cover: %v", got)
	}
	if other := a.Cover(At(4, 1, 2)); other != a {
		t.Fatalf("cover across rows must keep receiver, got %v", other)
	}
	if z := (Location{}).Cover(b); z != b {
		t.Fatalf("zero location should adopt other, got %v", z)
	}
}

func TestLocationBefore(t *testing.T) {
	if !At(1, 9, 9).Before(At(2, 1, 1)) {
		t.Fatalf("row 1 must precede row 2")
	}
	if At(2, 5, 6).Before(At(2, 3, 4)) {
		t.Fatalf("column 5 must not precede column 3")
	}
}
