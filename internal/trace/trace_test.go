package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"":       LevelOff,
		"off":    LevelOff,
		"ERROR":  LevelError,
		"phase":  LevelPhase,
		"detail": LevelDetail,
		"debug":  LevelDebug,
	} {
		got, err := ParseLevel(in)
		be.Err(t, err, nil)
		be.Equal(t, got, want)
	}
	_, err := ParseLevel("loud")
	be.True(t, err != nil)
}

func TestShouldEmit(t *testing.T) {
	be.True(t, !LevelOff.ShouldEmit(ScopeDriver, KindPoint))
	be.True(t, LevelError.ShouldEmit(ScopeDriver, KindPoint))
	be.True(t, !LevelError.ShouldEmit(ScopeDriver, KindSpanBegin))
	be.True(t, LevelPhase.ShouldEmit(ScopePhase, KindSpanBegin))
	be.True(t, !LevelPhase.ShouldEmit(ScopeDecl, KindSpanBegin))
	be.True(t, LevelDetail.ShouldEmit(ScopeDecl, KindSpanEnd))
}

func TestSpanNesting(t *testing.T) {
	rec := NewRecorder(0, LevelDetail)
	root := Begin(rec, ScopeDriver, "file", 0)
	phase := Begin(rec, ScopePhase, "lower", root.ID())
	decl := Begin(rec, ScopeDecl, "func main", phase.ID())
	decl.End("errors=0 warnings=0")
	phase.WithExtra("funcs", "1").End("")
	root.End("")

	evs := rec.Events()
	be.Equal(t, len(evs), 6)
	be.Equal(t, evs[0].Kind, KindSpanBegin)
	be.Equal(t, evs[2].ParentID, phase.ID())
	be.Equal(t, evs[3].Detail, "errors=0 warnings=0")
	be.Equal(t, evs[4].Extra["funcs"], "1")
	for i := 1; i < len(evs); i++ {
		be.True(t, evs[i].Seq > evs[i-1].Seq)
	}
}

func TestLevelFiltersSpans(t *testing.T) {
	rec := NewRecorder(0, LevelPhase)
	Begin(rec, ScopePhase, "lower", 0).End("")
	Begin(rec, ScopeDecl, "func main", 0).End("")
	be.Equal(t, len(rec.Events()), 2)
}

func TestRecorderLimit(t *testing.T) {
	rec := NewRecorder(3, LevelDebug)
	for range 5 {
		Point(rec, ScopeDriver, "p", "", 0)
	}
	be.Equal(t, len(rec.Events()), 3)
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Output: &buf})
	be.Err(t, err, nil)
	span := Begin(tr, ScopePhase, "decode", 0)
	span.End("ok")
	out := buf.String()
	be.True(t, strings.Contains(out, "→ decode"))
	be.True(t, strings.Contains(out, "← decode (ok)"))
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelError, Format: FormatNDJSON, Output: &buf})
	be.Err(t, err, nil)
	Point(tr, ScopeDriver, "failed", "bad.json", 0)
	line := buf.String()
	be.True(t, strings.HasSuffix(line, "\n"))
	be.True(t, strings.Contains(line, `"kind":"point"`))
	be.True(t, strings.Contains(line, `"detail":"bad.json"`))
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{})
	be.Err(t, err, nil)
	be.True(t, !tr.Enabled())
	be.Equal(t, Begin(tr, ScopeDriver, "x", 0).ID(), uint64(0))
}

func TestContext(t *testing.T) {
	rec := NewRecorder(0, LevelDebug)
	ctx := WithTracer(context.Background(), rec)
	ctx = WithParent(ctx, 7)
	be.Equal(t, FromContext(ctx), Tracer(rec))
	be.Equal(t, ParentID(ctx), uint64(7))
	be.Equal(t, FromContext(context.Background()), Nop)
	be.Equal(t, ParentID(context.Background()), uint64(0))

	span, inner := Start(ctx, ScopePhase, "lower")
	be.Equal(t, ParentID(inner), span.ID())
	be.Equal(t, FromContext(inner), Tracer(rec))
	span.End("")
	be.Equal(t, rec.Events()[0].ParentID, uint64(7))

	off := WithTracer(context.Background(), Nop)
	_, same := Start(off, ScopePhase, "lower")
	be.Equal(t, same, off)
}

func TestMultiTracer(t *testing.T) {
	a := NewRecorder(0, LevelDebug)
	b := NewRecorder(0, LevelPhase)
	m := NewMultiTracer(LevelDebug, a, b)
	Begin(m, ScopeDecl, "func f", 0).End("")
	be.Equal(t, len(a.Events()), 2)
	be.Equal(t, len(b.Events()), 0)
	be.Err(t, m.Close(), nil)
}

func TestRecorderDump(t *testing.T) {
	rec := NewRecorder(0, LevelPhase)
	Begin(rec, ScopePhase, "lower", 0).End("errors=0 warnings=0")
	var buf bytes.Buffer
	be.Err(t, rec.Dump(&buf, FormatText), nil)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	be.Equal(t, len(lines), 2)
	be.True(t, strings.HasSuffix(lines[1], "← lower (errors=0 warnings=0)"))
}
