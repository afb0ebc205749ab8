// Package calibrate tunes the distance-decay parameter of a
// doubly-constrained gravity model so that the modelled total travel
// distance approaches an observed value.
//
// The Calibrator implements the propose / accept / reject protocol of
// anneal.Proposer and is driven by anneal.Run:
//
//	Idle --Propose()--> Proposed --Accept()--> Idle
//	                             \-Reject()--> Idle (state restored)
//
// Propose snapshots beta, distance, entropy, the flow matrix and Ai/Bj,
// perturbs beta[0], rebalances and returns the new fitness. Perturbation
// alternates between two modes:
//
//   - fresh: beta[0] = -U(0,1) / (1 + U{0..999}), a small negative decay rate;
//   - shrink: beta[0] *= 0.99.
//
// Accept always selects fresh mode for the next proposal. Reject restores
// the snapshot and flips the mode. A proposal whose balancing does not
// converge is rolled back immediately and forces fresh mode; Pending then
// reports false so the driver does not count it as a move.
//
// Fitness uses two branches:
//
//	|d - obs| <  obs: (1 - |d - obs| / obs) · entropy
//	otherwise:        obs - |d - obs|
//
// The branches are on different scales; values are only comparable within
// a branch.
//
// A Calibrator owns mutable state and is not safe for concurrent use.
package calibrate
