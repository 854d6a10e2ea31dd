package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"minic/internal/trace"
)

// setupTracing installs the configured tracer into the command context and
// returns its cleanup function.
func setupTracing(cmd *cobra.Command, s settings) (func(), error) {
	cfg, err := s.cfg.TraceConfig()
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	span, ctx := trace.Start(trace.WithTracer(cmd.Context(), tracer), trace.ScopeDriver, "minic "+cmd.Name())
	cmd.SetContext(ctx)

	return func() {
		span.End("")
		_ = tracer.Close() //nolint:errcheck
	}, nil
}
