package diag

import (
	"testing"

	"minic/internal/source"
)

func TestFormatLine(t *testing.T) {
	d := NewError(SemaReferenceMustBeInitialized, source.At(3, 10, 10), "Reference requires an initializer")
	if got, want := FormatLine(d), "3:10-10\tError: Reference requires an initializer"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	w := New(SevWarning, SemaImplicitIntToFloat, source.At(4, 5, 9), "Implicit cast from integer to float point\nextra")
	if got, want := FormatLine(w), "4:5-9\tWarning: Implicit cast from integer to float point"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatShortWithNotes(t *testing.T) {
	d := NewError(SemaRedeclaration, source.At(4, 5, 5), "Redeclaration of 'x'").
		WithNote(source.At(2, 5, 5), "previous declaration is here")
	got := FormatShort([]Diagnostic{d}, true)
	want := "4:5-5\tError: Redeclaration of 'x'\n  2:5-5\tNote: previous declaration is here\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCodeIDs(t *testing.T) {
	if SemaArgumentCountMismatch.ID() != "SEM3014" {
		t.Fatalf("unexpected id %s", SemaArgumentCountMismatch.ID())
	}
	if IODecodeError.ID() != "IO4002" {
		t.Fatalf("unexpected id %s", IODecodeError.ID())
	}
	if Code(9999).Title() != "Unknown error" {
		t.Fatalf("unknown codes should fall back to the generic title")
	}
}
