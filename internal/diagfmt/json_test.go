package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONBasic(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{Path: "prog.json", IncludeNotes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got count=%d len=%d", output.Count, len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SEM3002" {
		t.Errorf("unexpected severity/code %s/%s", d.Severity, d.Code)
	}
	if d.Location != (LocationJSON{File: "prog.json", Row: 3, ColStart: 5, ColEnd: 5}) {
		t.Errorf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.Row != 2 {
		t.Errorf("expected one note on row 2, got %+v", d.Notes)
	}
	if output.Diagnostics[1].Severity != "WARNING" {
		t.Errorf("expected WARNING, got %s", output.Diagnostics[1].Severity)
	}
}

func TestJSONMaxAndNotes(t *testing.T) {
	out := BuildDiagnosticsOutput(sampleBag(), JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("expected count=1, got %d", out.Count)
	}
	if out.Dropped != 1 {
		t.Errorf("expected dropped=1, got %d", out.Dropped)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Errorf("expected notes to be omitted, got %+v", out.Diagnostics[0].Notes)
	}
}
