// Package driver runs the pipeline for one input program or a batch of them:
// decode the interchange AST, lower it, then emit textual IR.
//
// Problems in a program end up in its Result's Bag. A returned error means
// the pipeline itself broke (context canceled, invalid IR produced).
package driver
