// Package lower performs semantic analysis and IR generation in one pass.
//
// A translation unit is walked depth-first. Names are resolved through a
// tree of symbols.Scope values, declarators are bound to types, implicit
// conversions are inserted, and every construct is emitted through an
// ir.Builder. Each expression lowers to a Value: an IR handle plus an
// lvalue flag telling whether the handle is an address to load from.
//
// Problems in the program are reported to a diag.Reporter at the point they
// are found and surface to callers as *Failure errors. Expressions stop at
// the first failure; blocks and the declaration list keep going so that one
// run reports as many problems as possible.
package lower
