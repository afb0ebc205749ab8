// Package dataset holds the inputs of a spatial interaction run: origin
// weights, destination weights and the origin×destination distance matrix,
// plus the working flow matrix the model writes into.
//
// Inputs are copied on construction and never change afterwards. The flow
// matrix is the only mutable state; it always has shape (O, D) and every
// snapshot handed out is a deep copy.
//
// Missing links are encoded with the NoConnection sentinel (-1). The
// Distance accessor also answers NoConnection for out-of-range indices, so
// callers test for the sentinel instead of handling errors.
package dataset
