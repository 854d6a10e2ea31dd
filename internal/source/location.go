package source

import "fmt"

// Location is a position in the source program: one row and a column range on it.
// Columns are 1-based; ColEnd is inclusive.
type Location struct {
	Row      uint32
	ColStart uint32
	ColEnd   uint32
}

// At builds a location on a single row.
func At(row, colStart, colEnd uint32) Location {
	return Location{Row: row, ColStart: colStart, ColEnd: colEnd}
}

// IsZero reports whether the location carries no position (unit-level diagnostics).
func (l Location) IsZero() bool {
	return l.Row == 0 && l.ColStart == 0 && l.ColEnd == 0
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d-%d", l.Row, l.ColStart, l.ColEnd)
}

// Cover extends the column range of l to include other when both sit on the same row.
func (l Location) Cover(other Location) Location {
	if l.IsZero() {
		return other
	}
	if other.IsZero() || l.Row != other.Row {
		return l
	}
	if other.ColStart < l.ColStart {
		l.ColStart = other.ColStart
	}
	if other.ColEnd > l.ColEnd {
		l.ColEnd = other.ColEnd
	}
	return l
}

// Before orders locations by row, then by starting column.
func (l Location) Before(other Location) bool {
	if l.Row != other.Row {
		return l.Row < other.Row
	}
	return l.ColStart < other.ColStart
}
