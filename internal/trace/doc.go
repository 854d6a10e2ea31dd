// Package trace is the logging layer of the compiler: leveled, structured
// span events describing what the driver and the lowerer are doing.
//
// Problems in the compiled program are not traced; they are diagnostics.
// Tracing answers "where did the time go" and "how far did it get".
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only failures of whole inputs
//   - LevelPhase: driver and phase boundaries (decode, lower, validate, emit)
//   - LevelDetail: one span per top-level declaration
//   - LevelDebug: everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePhase, "lower", parentID)
//	defer span.End("")
package trace
