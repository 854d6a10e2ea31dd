package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"minic/internal/astio"
	"minic/internal/driver"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] <file.json|file.mpk|->",
	Short: "Lower one program to textual IR",
	Args:  cobra.ExactArgs(1),
	RunE:  runLower,
}

func init() {
	lowerCmd.Flags().StringP("output", "o", "-", "write IR to this file (- for stdout)")
	lowerCmd.Flags().String("input-format", "json", "interchange format when reading stdin (json|msgpack)")
}

func runLower(cmd *cobra.Command, args []string) error {
	path := args[0]
	s, err := loadSettings(cmd, path)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, s)
	if err != nil {
		return err
	}
	defer cleanup()

	opts, err := s.driverOptions(true)
	if err != nil {
		return err
	}

	var res *driver.Result
	if path == "-" {
		format, ferr := stdinFormat(cmd)
		if ferr != nil {
			return ferr
		}
		res, err = driver.Compile(cmd.Context(), "<stdin>", os.Stdin, format, opts)
	} else {
		res, err = driver.CompileFile(cmd.Context(), path, opts)
	}
	if err != nil {
		return err
	}

	failed, err := printDiagnostics(res, s)
	if err != nil {
		return err
	}
	if s.timings && s.cfg.Diagnostics.Format != "json" {
		printTimings(os.Stderr, res)
	}
	if failed {
		return errProgramFailed
	}
	return writeIR(cmd, res.IR)
}

func stdinFormat(cmd *cobra.Command) (astio.Format, error) {
	name, _ := cmd.Flags().GetString("input-format")
	switch strings.ToLower(name) {
	case "json":
		return astio.FormatJSON, nil
	case "msgpack", "mpk":
		return astio.FormatMsgpack, nil
	}
	return 0, fmt.Errorf("invalid --input-format %q (expected json|msgpack)", name)
}

func writeIR(cmd *cobra.Command, text string) error {
	out, _ := cmd.Flags().GetString("output")
	if out == "" || out == "-" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write IR: %w", err)
	}
	return nil
}
