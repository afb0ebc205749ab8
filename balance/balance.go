package balance

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gravity/dataset"
	"github.com/katalvlaran/gravity/matrix"
	"github.com/katalvlaran/gravity/model"
)

// Result is the outcome of a balancing run.
//   - Factors: the last computed Ai/Bj (fully recomputed on every pass).
//   - Iterations: number of passes performed.
//   - Converged: whether both marginals ended within the threshold.
type Result struct {
	Factors    model.Factors
	Iterations int
	Converged  bool
}

// Balance runs the Furness procedure for beta on ds and leaves the balanced
// flow matrix in ds.
// Implementation:
//   - Stage 1: validate options, dataset and beta.
//   - Stage 2: alternate Ai and Bj recomputation, re-evaluating the flow
//     matrix after each pass.
//   - Stage 3: test both marginals against the absolute threshold.
//
// Errors:
//   - ErrBadOptions, model.ErrEmptyBeta, model.ErrNilDataset.
//   - ErrNotConverged when the cap is hit; Result still carries the last
//     factors with Converged=false.
//
// Complexity: O(MaxIterations·O·D) worst case.
func Balance(ds *dataset.Dataset, beta []float64, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if ds == nil {
		return Result{}, fmt.Errorf("Balance: %w", model.ErrNilDataset)
	}
	if len(beta) == 0 {
		return Result{}, fmt.Errorf("Balance: %w", model.ErrEmptyBeta)
	}

	nO, nD := ds.NumOrigins(), ds.NumDestinations()
	f := model.NewFactors(nO, nD)
	res := Result{Factors: f}

	var i, j int
	for res.Iterations < opts.MaxIterations {
		for i = 0; i < nO; i++ {
			f.Ai[i] = originFactor(ds, f.Bj, beta[0], i)
		}
		for j = 0; j < nD; j++ {
			f.Bj[j] = destinationFactor(ds, f.Ai, beta[0], j)
		}
		res.Iterations++

		if err := model.Evaluate(ds, f, beta); err != nil {
			return res, err
		}
		if withinThreshold(ds, opts.Threshold) {
			res.Converged = true
			return res, nil
		}
	}

	return res, fmt.Errorf("after %d passes (beta=%g): %w", res.Iterations, beta[0], ErrNotConverged)
}

// originFactor computes Ai for origin i from the current Bj.
func originFactor(ds *dataset.Dataset, bj []float64, beta float64, i int) float64 {
	var den float64
	var d float64
	for j := range bj {
		d = ds.Distance(i, j)
		if d == dataset.NoConnection {
			continue
		}
		den += bj[j] * ds.DestinationWeight(j) * math.Exp(d*beta)
	}
	if den == 0 {
		return 0
	}
	return 1 / den
}

// destinationFactor computes Bj for destination j from the current Ai.
func destinationFactor(ds *dataset.Dataset, ai []float64, beta float64, j int) float64 {
	var den float64
	var d float64
	for i := range ai {
		d = ds.Distance(i, j)
		if d == dataset.NoConnection {
			continue
		}
		den += ai[i] * ds.OriginWeight(i) * math.Exp(d*beta)
	}
	if den == 0 {
		return 0
	}
	return 1 / den
}

// Marginals returns the row (origin) and column (destination) totals of the
// current flow matrix of ds.
func Marginals(ds *dataset.Dataset) (rows, cols []float64) {
	rows, _ = matrix.RowSums(ds.Flow())
	cols, _ = matrix.ColSums(ds.Flow())
	return rows, cols
}

// withinThreshold checks every origin total first, then every destination total.
func withinThreshold(ds *dataset.Dataset, threshold float64) bool {
	rows, cols := Marginals(ds)
	for i, v := range rows {
		if !(math.Abs(v-ds.OriginWeight(i)) <= threshold) {
			return false
		}
	}
	for j, v := range cols {
		if !(math.Abs(v-ds.DestinationWeight(j)) <= threshold) {
			return false
		}
	}
	return true
}
