// Package diag defines the diagnostic model shared by the lowering core and
// the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//   - Message: human oriented text; keep it short and actionable.
//   - Primary: the source.Location the problem is reported at.
//   - Notes: optional secondary locations, e.g. a previous declaration.
//
// # Flow
//
// Producers never build a Diagnostic by hand; they go through a Reporter,
// usually via ReportError / ReportWarning and the ReportBuilder returned by
// them. BagReporter stores everything in a Bag, which enforces the configured
// maximum. Rendering lives in internal/diagfmt; the canonical single-line form
// `row:colStart-colEnd<TAB>Error: message` is FormatLine in this package.
package diag
