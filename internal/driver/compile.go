package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"minic/internal/ast"
	"minic/internal/astio"
	"minic/internal/diag"
	"minic/internal/ir"
	"minic/internal/lower"
	"minic/internal/observ"
	"minic/internal/source"
	"minic/internal/trace"
)

type Options struct {
	Lower          lower.Options
	MaxDiagnostics int
	// EmitIR renders the module as text when the program has no errors.
	EmitIR bool
	// Timings appends an OBS6001 diagnostic with the phase durations.
	Timings  bool
	Progress ProgressSink
}

type Result struct {
	Path   string
	Module *ir.Module
	IR     string
	Bag    *diag.Bag
	// Lines is the C source next to the input (same stem, .c), if present.
	Lines  []string
	Timing *observ.Report
}

// Failed reports whether the program has error diagnostics.
func (r *Result) Failed() bool {
	return r.Bag.HasErrors()
}

// CompileFile runs the pipeline on the interchange file at path. The format
// comes from the extension.
func CompileFile(ctx context.Context, path string, opts Options) (*Result, error) {
	format, err := astio.FormatFromPath(path)
	if err != nil {
		return loadFailure(path, opts, err), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return loadFailure(path, opts, err), nil
	}
	defer f.Close()

	res, err := Compile(ctx, path, f, format, opts)
	if res != nil {
		res.Lines = readSourceLines(path)
	}
	return res, err
}

func loadFailure(path string, opts Options, err error) *Result {
	res := &Result{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Location{}, "failed to load file: "+err.Error()))
	emit(opts.Progress, Event{File: path, Stage: StageDecode, Status: StatusError, Err: err})
	return res
}

// Compile runs the pipeline on an interchange tree read from r. name labels
// the input in traces and progress events.
func Compile(ctx context.Context, name string, r io.Reader, format astio.Format, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &Result{Path: name, Bag: diag.NewBag(opts.MaxDiagnostics)}
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "file")
	span.WithExtra("path", name)
	timer := observ.NewTimer()

	err := runPhases(ctx, res, r, format, opts, timer)

	report := timer.Report()
	res.Timing = &report
	if opts.Timings {
		appendTimingDiagnostic(res.Bag, name, report)
	}
	status := StatusDone
	if err != nil || res.Failed() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: name, Stage: StageEmit, Status: status, Err: err, Elapsed: timer.Total()})
	span.End(fmt.Sprintf("errors=%d warnings=%d", res.Bag.Count(diag.SevError), res.Bag.Count(diag.SevWarning)))
	return res, err
}

func runPhases(ctx context.Context, res *Result, r io.Reader, format astio.Format, opts Options, timer *observ.Timer) error {
	tracer := trace.FromContext(ctx)
	parent := trace.ParentID(ctx)

	emit(opts.Progress, Event{File: res.Path, Stage: StageDecode, Status: StatusWorking})
	idx := timer.Begin(string(StageDecode))
	span := trace.Begin(tracer, trace.ScopePhase, string(StageDecode), parent).WithExtra("format", format.String())
	unit, err := astio.Decode(r, format)
	if err != nil {
		timer.End(idx, "failed")
		span.End("failed")
		trace.Point(tracer, trace.ScopeDriver, "decode failed", res.Path+": "+err.Error(), parent)
		res.Bag.Add(diag.NewError(diag.IODecodeError, source.Location{}, "failed to decode AST: "+err.Error()))
		return nil
	}
	note := strconv.Itoa(len(unit.Decls)) + " decls"
	timer.End(idx, note)
	span.End(note)

	if err := ctx.Err(); err != nil {
		return err
	}
	emit(opts.Progress, Event{File: res.Path, Stage: StageLower, Status: StatusWorking})
	if err := lowerPhase(ctx, res, unit, opts, timer); err != nil {
		return err
	}
	if res.Failed() || !opts.EmitIR {
		return nil
	}

	emit(opts.Progress, Event{File: res.Path, Stage: StageEmit, Status: StatusWorking})
	idx = timer.Begin(string(StageEmit))
	span = trace.Begin(tracer, trace.ScopePhase, string(StageEmit), parent)
	text, err := ir.EmitModule(res.Module)
	timer.End(idx, "")
	span.End("")
	if err != nil {
		return fmt.Errorf("%s: emit: %w", res.Path, err)
	}
	res.IR = text
	return nil
}

func lowerPhase(ctx context.Context, res *Result, unit *ast.DeclarationList, opts Options, timer *observ.Timer) error {
	idx := timer.Begin(string(StageLower))
	span, lctx := trace.Start(ctx, trace.ScopePhase, string(StageLower))

	lr, err := lower.LowerUnit(lctx, moduleName(res.Path), unit, diag.BagReporter{Bag: res.Bag}, opts.Lower)
	note := fmt.Sprintf("errors=%d warnings=%d", lr.Errors, lr.Warnings)
	timer.End(idx, note)
	span.End(note)
	res.Module = lr.Module

	// *lower.Failure is already in the bag; anything else is a broken module.
	var failure *lower.Failure
	if err != nil && !errors.As(err, &failure) {
		return fmt.Errorf("%s: %w", res.Path, err)
	}
	return nil
}

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readSourceLines(path string) []string {
	src := strings.TrimSuffix(path, filepath.Ext(path)) + ".c"
	f, err := os.Open(src)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if sc.Err() != nil {
		return nil
	}
	return lines
}
