package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nalgeon/be"

	"minic/internal/diag"
	"minic/internal/lower"
	"minic/internal/trace"
)

const okProgram = `{"kind": "unit", "children": [
  {"kind": "func_decl", "type": "int", "children": [
    {"kind": "func", "name": "main", "loc": [1, 5, 8]},
    {"kind": "block", "children": [
      {"kind": "return", "loc": [1, 12, 20], "children": [{"kind": "const", "lit": {"kind": "int", "int": 0}}]}
    ]}
  ]}
]}`

const badProgram = `{"kind": "unit", "children": [
  {"kind": "func_decl", "type": "int", "children": [
    {"kind": "func", "name": "main", "loc": [1, 5, 8]},
    {"kind": "block", "children": [
      {"kind": "return", "loc": [2, 3, 11], "children": [{"kind": "var", "name": "x", "loc": [2, 10, 10]}]}
    ]}
  ]}
]}`

const brokenProgram = `{"kind": "unit", "children": [{"kind": "bogus"}]}`

func writeInputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func testOptions() Options {
	return Options{Lower: lower.DefaultOptions(), EmitIR: true}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestCompileFileEmitsIR(t *testing.T) {
	dir := writeInputs(t, map[string]string{"ok.json": okProgram, "ok.c": "int main() { return 0; }\n"})
	res, err := CompileFile(context.Background(), filepath.Join(dir, "ok.json"), testOptions())
	be.Err(t, err, nil)
	be.True(t, !res.Failed())
	be.True(t, strings.Contains(res.IR, "define i32 @main()"))
	be.True(t, strings.Contains(res.IR, "@__minic_main"))
	be.Equal(t, res.Lines, []string{"int main() { return 0; }"})
	be.Equal(t, len(res.Timing.Phases), 3)
}

func TestCompileFileReportsProgramErrors(t *testing.T) {
	dir := writeInputs(t, map[string]string{"bad.json": badProgram})
	res, err := CompileFile(context.Background(), filepath.Join(dir, "bad.json"), testOptions())
	be.Err(t, err, nil)
	be.True(t, res.Failed())
	be.Equal(t, res.Bag.Codes(), []diag.Code{diag.SemaUndeclaredIdentifier})
	be.Equal(t, res.IR, "")
	be.Equal(t, res.Lines, []string(nil))
}

func TestCompileFileDecodeFailure(t *testing.T) {
	dir := writeInputs(t, map[string]string{"broken.json": brokenProgram})
	rec := trace.NewRecorder(0, trace.LevelError)
	ctx := trace.WithTracer(context.Background(), rec)

	res, err := CompileFile(ctx, filepath.Join(dir, "broken.json"), testOptions())
	be.Err(t, err, nil)
	be.Equal(t, res.Bag.Codes(), []diag.Code{diag.IODecodeError})
	be.True(t, strings.Contains(res.Bag.Items()[0].Message, "failed to decode AST"))

	evs := rec.Events()
	be.Equal(t, len(evs), 1)
	be.Equal(t, evs[0].Kind, trace.KindPoint)
	be.Equal(t, evs[0].Name, "decode failed")
}

func TestCompileFileLoadFailure(t *testing.T) {
	res, err := CompileFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"), testOptions())
	be.Err(t, err, nil)
	be.Equal(t, res.Bag.Codes(), []diag.Code{diag.IOLoadFileError})

	res, err = CompileFile(context.Background(), "prog.txt", testOptions())
	be.Err(t, err, nil)
	be.Equal(t, res.Bag.Codes(), []diag.Code{diag.IOLoadFileError})
}

func TestCompileTimingsDiagnostic(t *testing.T) {
	dir := writeInputs(t, map[string]string{"ok.json": okProgram})
	opts := testOptions()
	opts.Timings = true
	res, err := CompileFile(context.Background(), filepath.Join(dir, "ok.json"), opts)
	be.Err(t, err, nil)
	be.Equal(t, res.Bag.Codes(), []diag.Code{diag.ObsTimings})
	be.True(t, !res.Failed())
	note := res.Bag.Items()[0].Notes[0].Msg
	be.True(t, strings.Contains(note, `"name":"decode"`))
}

func TestCompilePhaseSpans(t *testing.T) {
	dir := writeInputs(t, map[string]string{"ok.json": okProgram})
	rec := trace.NewRecorder(0, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), rec)

	_, err := CompileFile(ctx, filepath.Join(dir, "ok.json"), testOptions())
	be.Err(t, err, nil)

	begins := map[string]trace.Event{}
	for _, ev := range rec.Events() {
		if ev.Kind == trace.KindSpanBegin {
			begins[ev.Name] = ev
		}
	}
	file := begins["file"]
	be.Equal(t, begins["decode"].ParentID, file.SpanID)
	be.Equal(t, begins["lower"].ParentID, file.SpanID)
	be.Equal(t, begins["emit"].ParentID, file.SpanID)
	be.Equal(t, begins["func main"].ParentID, begins["lower"].SpanID)
}

func TestListInputs(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"a.json":       okProgram,
		"nested/b.mpk": "",
		"nested/c.c":   "",
		"notes.txt":    "",
	})
	files, err := ListInputs([]string{dir, filepath.Join(dir, "a.json")})
	be.Err(t, err, nil)
	be.Equal(t, files, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "nested", "b.mpk")})

	_, err = ListInputs([]string{filepath.Join(dir, "nope")})
	be.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCompileFilesKeepsOrder(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"1.json": okProgram,
		"2.json": badProgram,
		"3.json": brokenProgram,
	})
	files, err := ListInputs([]string{dir})
	be.Err(t, err, nil)

	sink := &recordingSink{}
	opts := testOptions()
	opts.Progress = sink
	results, err := CompileFiles(context.Background(), files, opts, 2)
	be.Err(t, err, nil)
	be.Equal(t, len(results), 3)
	be.True(t, !results[0].Failed())
	be.Equal(t, results[1].Bag.Codes(), []diag.Code{diag.SemaUndeclaredIdentifier})
	be.Equal(t, results[2].Bag.Codes(), []diag.Code{diag.IODecodeError})

	final := map[string]Status{}
	queued := 0
	for _, ev := range sink.events {
		if ev.Status == StatusQueued {
			queued++
		}
		if ev.File != "" && ev.Stage == StageEmit {
			final[ev.File] = ev.Status
		}
	}
	be.Equal(t, queued, 3)
	be.Equal(t, final[files[0]], StatusDone)
	be.Equal(t, final[files[1]], StatusError)
	be.Equal(t, final[files[2]], StatusError)
	last := sink.events[len(sink.events)-1]
	be.Equal(t, last.File, "")
	be.Equal(t, last.Status, StatusDone)
}

func TestCompileFilesCanceled(t *testing.T) {
	dir := writeInputs(t, map[string]string{"ok.json": okProgram})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CompileFiles(ctx, []string{filepath.Join(dir, "ok.json")}, testOptions(), 1)
	be.True(t, errors.Is(err, context.Canceled))
}
