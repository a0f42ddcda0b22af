// Package layout is the structogram layout engine: it transforms a
// control-flow tree into a geometric box tree with exact pixel
// dimensions that satisfy the Nassi-Shneiderman visual legality rules
// (no clipped condition text, no overlapping diagonals, balanced branch
// heights, correct fallthrough for switch statements).
//
// # Architecture
//
// The engine is a pure, synchronous computation with no I/O and no
// shared mutable state:
//
//  1. Text normalization: statement cleanup, assignment-arrow rewrites,
//     terminator classification.
//  2. Recursive building: Builder.Build walks the control-flow tree and
//     produces a Node for each structure.
//  3. Geometry solving: decision headers derive their height and branch
//     widths from the similar-triangles relation between the diagonal
//     lines and the centered condition label.
//  4. Height balancing: branch columns are stretched to equal height by
//     producing new nodes along the modified path, sharing unchanged
//     subtrees by reference.
//
// Text width is estimated by an injected Measurer, not measured from
// real glyphs. The default is a per-character heuristic; callers with
// access to actual font metrics can supply their own.
//
// # Concurrency
//
// Building is safe from any goroutine: inputs are never mutated and the
// result depends only on the tree and the measurer. Results may be
// memoized by input identity.
package layout
