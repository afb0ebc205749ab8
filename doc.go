// Package gravity calibrates doubly-constrained spatial interaction
// (gravity) models.
//
// Given origin weights O_i, destination weights D_j and a distance table
// d_ij, the model distributes flows
//
//	T_ij = Ai · Bj · O_i · D_j · exp(d_ij · beta)
//
// where the balancing factors Ai and Bj are found by Furness iteration so
// that every row sums to O_i and every column to D_j. A distance of -1
// marks a missing link that carries no flow. Calibration searches for the
// decay parameter beta that brings the modelled total travel distance
// close to an observed value while keeping the flow entropy high.
//
// Layout:
//
//	matrix/             dense row-major float64 buffer and reductions
//	dataset/            weights, distances and the mutable flow table
//	model/              flow equation, evaluation and aggregate statistics
//	entropy/            Shannon and cross entropy of flow tables
//	balance/            Furness balancing (doubly-constrained IPF)
//	calibrate/          propose / accept / reject calibrator of beta
//	anneal/             simulated-annealing driver for any proposer
//	results/            exported artifacts and the sinks that store them
//	loader/             CSV input tables
//	config/             YAML run files
//	cmd/gravity/        command-line entry point
//
// Quick start:
//
//	go run ./cmd/gravity -origins o.csv -destinations d.csv -distances dist.csv -observed 125000
package gravity
