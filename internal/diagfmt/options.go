package diagfmt

import (
	"fmt"
	"strings"
)

// Format selects a renderer.
type Format uint8

const (
	FormatPretty Format = iota
	FormatShort
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatShort:
		return "short"
	case FormatJSON:
		return "json"
	}
	return "pretty"
}

// ParseFormat converts pretty|short|json to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "pretty", "":
		return FormatPretty, nil
	case "short":
		return FormatShort, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatPretty, fmt.Errorf("invalid diagnostics format: %q (expected: pretty|short|json)", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Path prefixes every location; empty prints bare locations.
	Path string
	// Lines is the program text split into rows, when available. Rows that
	// exist get a context line with a ^~~~ underline.
	Lines     []string
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Path         string
	Max          int // output cut, not the Bag cap
	IncludeNotes bool
}

// Options bundles everything Write needs for any format.
type Options struct {
	Format Format
	Pretty PrettyOpts
	JSON   JSONOpts
}
