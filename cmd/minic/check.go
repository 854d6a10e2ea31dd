package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minic/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path>...",
	Short: "Check programs without emitting IR",
	Long:  "Check every interchange file named or found under the given directories, in parallel.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().IntP("jobs", "j", 0, "number of programs checked in parallel (0 = GOMAXPROCS, overrides check.jobs)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off, overrides check.progress)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	files, err := driver.ListInputs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no interchange files (.json, .mpk, .msgpack) found")
	}

	s, err := loadSettings(cmd, files[0])
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, s)
	if err != nil {
		return err
	}
	defer cleanup()

	opts, err := s.driverOptions(false)
	if err != nil {
		return err
	}

	var results []*driver.Result
	if s.progressView() {
		results, err = runCheckWithUI(cmd.Context(), "minic check", files, opts, s.cfg.Check.Jobs)
	} else {
		results, err = driver.CompileFiles(cmd.Context(), files, opts, s.cfg.Check.Jobs)
	}
	if err != nil {
		return err
	}

	failures := 0
	for _, res := range results {
		failed, perr := printDiagnostics(res, s)
		if perr != nil {
			return perr
		}
		if failed {
			failures++
		}
		if s.timings && s.cfg.Diagnostics.Format != "json" {
			printTimings(os.Stderr, res)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "checked %d programs, %d failed\n", len(results), failures)
	if failures > 0 {
		return errProgramFailed
	}
	return nil
}
