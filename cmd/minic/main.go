package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"minic/internal/prof"
	"minic/internal/version"
)

// errProgramFailed marks a run whose programs had error diagnostics. The
// diagnostics are already printed, so main only sets the exit status.
var errProgramFailed = errors.New("program has errors")

var rootCmd = &cobra.Command{
	Use:           "minic",
	Short:         "Semantic analysis and IR lowering for a small C-like language",
	Long:          `minic checks programs given as interchange ASTs (.json, .mpk) and lowers them to LLVM-style IR`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Root().PersistentFlags()
		cpu, _ := flags.GetString("cpuprofile")
		mem, _ := flags.GetString("memprofile")
		s, err := prof.Start(cpu, mem)
		if err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
		profiling = s
		return nil
	},
}

// profiling is stopped by main after Execute returns.
var profiling *prof.Session

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to minic.toml (default: search upwards from the input)")
	flags.String("color", "", "colorize output (auto|on|off)")
	flags.String("diagnostics", "", "diagnostics format (pretty|short|json)")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics per program")
	flags.Bool("timings", false, "show phase timings")
	flags.Bool("warnings-as-errors", false, "treat warnings as errors")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "", "trace format (text|ndjson)")
	flags.String("cpuprofile", "", "write a CPU profile to this file")
	flags.String("memprofile", "", "write a heap profile to this file on exit")

	err := rootCmd.Execute()
	if profiling != nil {
		if perr := profiling.Stop(); perr != nil {
			fmt.Fprintln(os.Stderr, "minic: profiling:", perr)
		}
	}
	if err != nil {
		if !errors.Is(err, errProgramFailed) {
			fmt.Fprintln(os.Stderr, "minic:", err)
		}
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func colorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f) && os.Getenv("NO_COLOR") == ""
	}
}
