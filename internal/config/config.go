// Package config loads minic.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"minic/internal/lower"
	"minic/internal/trace"
)

// FileName is the project configuration file looked up by Find.
const FileName = "minic.toml"

// ErrUnknownKey indicates a key that no section understands.
var ErrUnknownKey = errors.New("unknown key")

type Lower struct {
	Entry         string `toml:"entry"`
	EntryAlias    string `toml:"entry_alias"`
	Startup       string `toml:"startup"`
	PointerCasts  string `toml:"pointer_casts"`
	MissingReturn string `toml:"missing_return"`
}

type Diagnostics struct {
	Max    int    `toml:"max"`
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// Check configures "minic check". Progress selects the interactive
// progress view: auto draws it only when stdout is a terminal.
type Check struct {
	Jobs     int    `toml:"jobs"`
	Progress string `toml:"progress"`
}

type Trace struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// Config mirrors minic.toml. Path is empty for the built-in defaults.
type Config struct {
	Path        string      `toml:"-"`
	Lower       Lower       `toml:"lower"`
	Diagnostics Diagnostics `toml:"diagnostics"`
	Check       Check       `toml:"check"`
	Trace       Trace       `toml:"trace"`
}

var (
	diagFormats = []string{"pretty", "short", "json"}
	colorModes  = []string{"auto", "on", "off"}
)

func Default() Config {
	return Config{
		Lower: Lower{
			Entry:         "main",
			Startup:       "main",
			PointerCasts:  "warn",
			MissingReturn: "warn",
		},
		Diagnostics: Diagnostics{Max: 100, Format: "pretty", Color: "auto"},
		Check:       Check{Progress: "auto"},
		Trace:       Trace{Level: "off", Format: "text", Output: "-"},
	}
}

// Find walks up from startDir to locate minic.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: %w %q", path, ErrUnknownKey, undecoded[0].String())
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the minic.toml governing startDir, or the defaults when
// there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Lower.Entry) == "" {
		errs = append(errs, errors.New("lower.entry must not be empty"))
	}
	if _, err := c.LowerOptions(); err != nil {
		errs = append(errs, err)
	}
	if c.Diagnostics.Max < 0 {
		errs = append(errs, fmt.Errorf("diagnostics.max must be >= 0, got %d", c.Diagnostics.Max))
	}
	if c.Check.Jobs < 0 {
		errs = append(errs, fmt.Errorf("check.jobs must be >= 0, got %d", c.Check.Jobs))
	}
	errs = append(errs,
		oneOf("diagnostics.format", c.Diagnostics.Format, diagFormats),
		oneOf("diagnostics.color", c.Diagnostics.Color, colorModes),
		oneOf("check.progress", c.Check.Progress, colorModes),
	)
	if _, err := c.TraceConfig(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func oneOf(key, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("invalid %s: %q (expected: %s)", key, value, strings.Join(allowed, "|"))
}

// LowerOptions converts the [lower] section.
func (c Config) LowerOptions() (lower.Options, error) {
	opts := lower.DefaultOptions()
	if c.Lower.Entry != "" {
		opts.EntryName = c.Lower.Entry
	}
	if c.Lower.Startup != "" {
		opts.StartupName = c.Lower.Startup
	}
	opts.EntryAlias = c.Lower.EntryAlias

	var err error
	if opts.PointerCasts, err = lower.ParsePolicy(c.Lower.PointerCasts); err != nil {
		return lower.Options{}, fmt.Errorf("lower.pointer_casts: %w", err)
	}
	if opts.MissingReturn, err = lower.ParsePolicy(c.Lower.MissingReturn); err != nil {
		return lower.Options{}, fmt.Errorf("lower.missing_return: %w", err)
	}
	return opts, nil
}

// TraceConfig converts the [trace] section.
func (c Config) TraceConfig() (trace.Config, error) {
	level, err := trace.ParseLevel(c.Trace.Level)
	if err != nil {
		return trace.Config{}, fmt.Errorf("trace.level: %w", err)
	}
	format, err := trace.ParseFormat(c.Trace.Format)
	if err != nil {
		return trace.Config{}, fmt.Errorf("trace.format: %w", err)
	}
	return trace.Config{Level: level, Format: format, OutputPath: c.Trace.Output}, nil
}
