package lower

import (
	"context"
	"testing"

	"github.com/nalgeon/be"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/trace"
)

func TestDeclarationSpans(t *testing.T) {
	rec := trace.NewRecorder(0, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), rec)
	ctx = trace.WithParent(ctx, 42)

	bag := diag.NewBag(0)
	unit := ast.Unit(
		ast.Var(ast.TypeInt, ast.Name("g"), ast.IntLit(1)),
		mainFunc(ast.Return(ast.Ident("missing"))),
	)
	_, _ = LowerUnit(ctx, "test", unit, diag.BagReporter{Bag: bag}, DefaultOptions())

	var ends []trace.Event
	for _, ev := range rec.Events() {
		be.Equal(t, ev.Scope, trace.ScopeDecl)
		be.Equal(t, ev.ParentID, uint64(42))
		if ev.Kind == trace.KindSpanEnd {
			ends = append(ends, ev)
		}
	}
	be.Equal(t, len(ends), 2)
	be.Equal(t, ends[0].Name, "var g")
	be.Equal(t, ends[0].Detail, "errors=0 warnings=0")
	be.Equal(t, ends[1].Name, "func main")
	be.Equal(t, ends[1].Detail, "errors=1 warnings=0")
}
