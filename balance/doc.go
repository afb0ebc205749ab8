// Package balance derives the Ai/Bj balancing factors of a
// doubly-constrained gravity model with the Furness procedure (iterative
// proportional fitting).
//
// Algorithm outline:
//  1. Ai = Bj = 1 for every origin and destination.
//  2. Repeat at most MaxIterations times:
//     a. Ai = 1 / Σ_j Bj·D_j·exp(beta·d_ij) over connected pairs (0 if the sum is 0).
//     b. Bj = 1 / Σ_i Ai·O_i·exp(beta·d_ij) using the fresh Ai (0 if the sum is 0).
//     c. Evaluate the flow matrix with model.Evaluate.
//     d. Converged when every |Σ_j T_ij − O_i| ≤ Threshold and every
//     |Σ_i T_ij − D_j| ≤ Threshold.
//  3. Reaching the cap returns ErrNotConverged; the flows left in the
//     dataset are then unbalanced and must not be accepted.
//
// The threshold is absolute, not relative.
//
// Complexity: O(k·O·D) for k passes.
package balance
