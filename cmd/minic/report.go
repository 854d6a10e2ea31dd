package main

import (
	"fmt"
	"io"
	"os"

	"minic/internal/diagfmt"
	"minic/internal/driver"
)

// printDiagnostics renders the diagnostics of one program to stderr and
// reports whether it failed under the warnings-as-errors setting.
func printDiagnostics(res *driver.Result, s settings) (bool, error) {
	if s.warningsAsErrors {
		res.Bag.Promote()
	}
	res.Bag.Sort()
	if res.Bag.Len() == 0 {
		return false, nil
	}
	opts, err := s.renderOptions(res, colorEnabled(s.cfg.Diagnostics.Color, os.Stderr))
	if err != nil {
		return false, err
	}
	if err := diagfmt.Write(os.Stderr, res.Bag, opts); err != nil {
		return false, err
	}
	return res.Failed(), nil
}

func printTimings(out io.Writer, res *driver.Result) {
	if res.Timing == nil {
		return
	}
	fmt.Fprintf(out, "%s: %.2f ms\n", res.Path, res.Timing.TotalMS)
	for _, p := range res.Timing.Phases {
		fmt.Fprintf(out, "  %-8s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(out, "  // %s", p.Note)
		}
		fmt.Fprintln(out)
	}
}
