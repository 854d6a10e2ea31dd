package lower

import (
	"fmt"

	"minic/internal/diag"
	"minic/internal/source"
)

// Failure is the error returned by lowering functions. The matching
// diagnostic has already been reported when a Failure is returned.
type Failure struct {
	Code diag.Code
	Loc  source.Location
	Msg  string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Loc, f.Msg)
}

func (l *Lowerer) fail(code diag.Code, loc source.Location, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	diag.ReportError(l.rep, code, loc, msg).Emit()
	l.errors++
	return &Failure{Code: code, Loc: loc, Msg: msg}
}

// failNote is fail with a note pointing at a related location.
func (l *Lowerer) failNote(code diag.Code, loc, noteLoc source.Location, note, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	b := diag.ReportError(l.rep, code, loc, msg)
	if !noteLoc.IsZero() {
		b.WithNote(noteLoc, note)
	}
	b.Emit()
	l.errors++
	return &Failure{Code: code, Loc: loc, Msg: msg}
}

func (l *Lowerer) warn(code diag.Code, loc source.Location, msg string) {
	diag.ReportWarning(l.rep, code, loc, msg).Emit()
	l.warnings++
}

// firstErr keeps the earliest failure of an aggregation.
func firstErr(have, next error) error {
	if have != nil {
		return have
	}
	return next
}
