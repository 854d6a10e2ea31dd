package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"minic/internal/config"
	"minic/internal/diagfmt"
	"minic/internal/driver"
)

// settings is minic.toml with the command-line flags applied on top.
type settings struct {
	cfg              config.Config
	timings          bool
	warningsAsErrors bool
}

// loadSettings reads --config, or the minic.toml above anchor, and lets
// explicitly set flags override it.
func loadSettings(cmd *cobra.Command, anchor string) (settings, error) {
	flags := cmd.Root().PersistentFlags()
	var (
		cfg config.Config
		err error
	)
	if path, _ := flags.GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		dir := "."
		if anchor != "" && anchor != "-" {
			dir = filepath.Dir(anchor)
		}
		cfg, err = config.Discover(dir)
	}
	if err != nil {
		return settings{}, err
	}

	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("color", &cfg.Diagnostics.Color)
	override("diagnostics", &cfg.Diagnostics.Format)
	override("trace", &cfg.Trace.Output)
	override("trace-level", &cfg.Trace.Level)
	override("trace-format", &cfg.Trace.Format)
	if flags.Changed("max-diagnostics") {
		cfg.Diagnostics.Max, _ = flags.GetInt("max-diagnostics")
	}
	// check-only flags; other commands do not define them
	local := cmd.Flags()
	if f := local.Lookup("ui"); f != nil && f.Changed {
		cfg.Check.Progress = f.Value.String()
	}
	if f := local.Lookup("jobs"); f != nil && f.Changed {
		cfg.Check.Jobs, _ = local.GetInt("jobs")
	}
	// naming an output implies at least phase tracing
	if flags.Changed("trace") && !flags.Changed("trace-level") && cfg.Trace.Level == "off" {
		cfg.Trace.Level = "phase"
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	s := settings{cfg: cfg}
	s.timings, _ = flags.GetBool("timings")
	s.warningsAsErrors, _ = flags.GetBool("warnings-as-errors")
	return s, nil
}

func (s settings) driverOptions(emitIR bool) (driver.Options, error) {
	lo, err := s.cfg.LowerOptions()
	if err != nil {
		return driver.Options{}, err
	}
	return driver.Options{
		Lower:          lo,
		MaxDiagnostics: s.cfg.Diagnostics.Max,
		EmitIR:         emitIR,
		// text formats print timings after the diagnostics instead
		Timings: s.timings && s.cfg.Diagnostics.Format == "json",
	}, nil
}

// progressView reports whether check draws the interactive progress view.
func (s settings) progressView() bool {
	switch s.cfg.Check.Progress {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(os.Stdout)
}

func (s settings) renderOptions(res *driver.Result, color bool) (diagfmt.Options, error) {
	format, err := diagfmt.ParseFormat(s.cfg.Diagnostics.Format)
	if err != nil {
		return diagfmt.Options{}, err
	}
	return diagfmt.Options{
		Format: format,
		Pretty: diagfmt.PrettyOpts{Color: color, Path: res.Path, Lines: res.Lines, ShowNotes: true},
		JSON:   diagfmt.JSONOpts{Path: res.Path, IncludeNotes: true},
	}, nil
}
