package diagfmt

import (
	"io"

	"minic/internal/diag"
)

// Short writes the canonical row:colStart-colEnd<TAB>Severity: message form.
func Short(w io.Writer, bag *diag.Bag, includeNotes bool) error {
	_, err := io.WriteString(w, diag.FormatShort(bag.Items(), includeNotes))
	return err
}

// Write renders bag in opts.Format.
func Write(w io.Writer, bag *diag.Bag, opts Options) error {
	switch opts.Format {
	case FormatShort:
		return Short(w, bag, opts.Pretty.ShowNotes)
	case FormatJSON:
		return JSON(w, bag, opts.JSON)
	default:
		return Pretty(w, bag, opts.Pretty)
	}
}
