package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"minic/internal/diag"
	"minic/internal/source"
)

type palette struct {
	err, warn, info, note, loc, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan, color.Bold),
		note:  color.New(color.FgBlue, color.Bold),
		loc:   color.New(color.Bold),
		caret: color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.loc, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty renders diagnostics for humans, in bag order (call bag.Sort first
// for location order):
//
//	<path>:<row>:<col>: <SEV> <CODE>: <message>
//
// followed by the source row with a ^~~~ underline when opts.Lines has it,
// then the notes.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var sb strings.Builder
	for _, d := range bag.Items() {
		sb.WriteString(p.loc.Sprint(prettyLocation(opts.Path, d.Primary)))
		sb.WriteString(": ")
		sb.WriteString(p.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()))
		sb.WriteString(": ")
		sb.WriteString(d.Message)
		sb.WriteByte('\n')
		writeContext(&sb, p, opts.Lines, d.Primary)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			sb.WriteString("  ")
			sb.WriteString(p.loc.Sprint(prettyLocation(opts.Path, n.Loc)))
			sb.WriteString(": ")
			sb.WriteString(p.note.Sprint("note"))
			sb.WriteString(": ")
			sb.WriteString(n.Msg)
			sb.WriteByte('\n')
			writeContext(&sb, p, opts.Lines, n.Loc)
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(&sb, "... %d more diagnostics not shown\n", dropped)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func prettyLocation(path string, loc source.Location) string {
	if loc.IsZero() {
		if path == "" {
			return "<unit>"
		}
		return path
	}
	if path == "" {
		return fmt.Sprintf("%d:%d", loc.Row, loc.ColStart)
	}
	return fmt.Sprintf("%s:%d:%d", path, loc.Row, loc.ColStart)
}

// writeContext prints the row and underlines columns ColStart..ColEnd.
// Columns count runes; the underline is padded by display width so wide
// characters line up.
func writeContext(sb *strings.Builder, p palette, lines []string, loc source.Location) {
	if loc.IsZero() || int(loc.Row) > len(lines) {
		return
	}
	line := strings.TrimRight(lines[loc.Row-1], "\r\n")
	runes := []rune(strings.ReplaceAll(line, "\t", " "))

	start := int(loc.ColStart) - 1
	start = max(0, min(start, len(runes)))
	end := int(loc.ColEnd)
	end = max(start+1, min(end, len(runes)))

	pad := runewidth.StringWidth(string(runes[:start]))
	width := 1
	if end <= len(runes) {
		width = max(1, runewidth.StringWidth(string(runes[start:end])))
	}

	fmt.Fprintf(sb, "%5d | %s\n", loc.Row, string(runes))
	sb.WriteString("      | ")
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(p.caret.Sprint("^" + strings.Repeat("~", width-1)))
	sb.WriteByte('\n')
}
