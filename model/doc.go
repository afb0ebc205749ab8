// Package model evaluates the doubly-constrained gravity equation
//
//	T_ij = A_i · B_j · O_i · D_j · exp(beta · d_ij)
//
// over a dataset.Dataset and derives the aggregate statistics used during
// calibration: the total system travel distance Σ T_ij·d_ij and an entropy
// statistic supplied by the caller.
//
// Pairs whose distance is dataset.NoConnection always receive zero flow and
// contribute zero distance. Evaluation order is fixed (origin-major), so two
// evaluations with identical inputs produce bit-identical matrices.
package model
