package lower

import (
	"context"
	"fmt"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/source"
	"minic/internal/symbols"
	"minic/internal/trace"
	"minic/internal/types"
)

// Lowerer holds the state of one translation unit traversal. It is not safe
// for concurrent use; lower independent units with separate Lowerers.
type Lowerer struct {
	opts     Options
	types    *types.Interner
	builtins types.Builtins
	mod      *ir.Module
	b        *ir.Builder
	rep      diag.Reporter
	tracer   trace.Tracer
	spanID   uint64

	scope   *symbols.Scope
	fn      *funcState
	startup *ir.Func

	// declaration sites of functions, for notes
	funcDecls map[*ir.Func]source.Location
	// user functions by source name; block-scope redeclarations share them
	userFuncs map[string]*ir.Func

	errors   int
	warnings int
}

// funcState describes the function whose body is being lowered.
type funcState struct {
	name      string
	ir        *ir.Func
	result    types.TypeID
	resultRef bool
}

// Result is the outcome of lowering one unit.
type Result struct {
	Module   *ir.Module
	Errors   int
	Warnings int
}

// New creates a Lowerer emitting into a fresh module.
func New(ctx context.Context, name string, rep diag.Reporter, opts Options) *Lowerer {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	typesIn := types.NewInterner()
	mod := ir.NewModule(name, typesIn)
	return &Lowerer{
		opts:      opts.withDefaults(),
		types:     typesIn,
		builtins:  typesIn.Builtins(),
		mod:       mod,
		b:         ir.NewBuilder(mod),
		rep:       rep,
		tracer:    trace.FromContext(ctx),
		spanID:    trace.ParentID(ctx),
		scope:     symbols.NewUnit(),
		funcDecls: make(map[*ir.Func]source.Location),
		userFuncs: make(map[string]*ir.Func),
	}
}

// LowerUnit lowers a whole translation unit. The module is returned even on
// failure; the error is the first *Failure met and every problem has been
// reported to rep.
func LowerUnit(ctx context.Context, name string, unit *ast.DeclarationList, rep diag.Reporter, opts Options) (Result, error) {
	l := New(ctx, name, rep, opts)
	err := l.Unit(unit)
	return Result{Module: l.mod, Errors: l.errors, Warnings: l.warnings}, err
}

// Module returns the module being built.
func (l *Lowerer) Module() *ir.Module { return l.mod }

// Types returns the interner shared with the module.
func (l *Lowerer) Types() *types.Interner { return l.types }

func (l *Lowerer) curFunc() *ir.Func {
	return l.b.Func()
}

// enterScope opens a child of the current scope and returns a function
// restoring the previous one.
func (l *Lowerer) enterScope(kind symbols.ScopeKind) func() {
	saved := l.scope
	l.scope = saved.AddChild(kind)
	return func() { l.scope = saved }
}

func (l *Lowerer) label(t types.TypeID) string {
	return types.Label(l.types, t)
}

func (l *Lowerer) internalError(loc source.Location, node any) error {
	return l.fail(diag.SemaError, loc, "unsupported syntax node %T", node)
}

func (l *Lowerer) beginSpan(name string) *trace.Span {
	return trace.Begin(l.tracer, trace.ScopeDecl, name, l.spanID)
}

func countDetail(errs, warns int) string {
	return fmt.Sprintf("errors=%d warnings=%d", errs, warns)
}
