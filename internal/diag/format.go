package diag

import (
	"strings"
)

// FormatLine renders the canonical single-line form:
// row:colStart-colEnd<TAB>Error: message
func FormatLine(d Diagnostic) string {
	var sb strings.Builder
	sb.WriteString(d.Primary.String())
	sb.WriteByte('\t')
	sb.WriteString(d.Severity.Label())
	sb.WriteString(": ")
	sb.WriteString(firstLine(d.Message))
	return sb.String()
}

// FormatShort renders every diagnostic of the bag with FormatLine, one per line.
// Notes follow their diagnostic, indented, when includeNotes is set.
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := range diags {
		d := diags[i]
		sb.WriteString(FormatLine(d))
		sb.WriteByte('\n')
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			sb.WriteString("  ")
			sb.WriteString(n.Loc.String())
			sb.WriteString("\tNote: ")
			sb.WriteString(firstLine(n.Msg))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func firstLine(msg string) string {
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		return msg[:idx]
	}
	return msg
}
