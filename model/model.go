package model

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gravity/dataset"
	"github.com/katalvlaran/gravity/matrix"
)

// Factors holds the per-origin (Ai) and per-destination (Bj) balancing terms.
type Factors struct {
	Ai []float64
	Bj []float64
}

// NewFactors returns factors of the given lengths initialised to 1.0.
func NewFactors(origins, destinations int) Factors {
	f := Factors{Ai: make([]float64, origins), Bj: make([]float64, destinations)}
	for i := range f.Ai {
		f.Ai[i] = 1.0
	}
	for j := range f.Bj {
		f.Bj[j] = 1.0
	}
	return f
}

// Clone returns a deep copy of f.
func (f Factors) Clone() Factors {
	return Factors{
		Ai: append([]float64(nil), f.Ai...),
		Bj: append([]float64(nil), f.Bj...),
	}
}

// EntropyFunc computes a dispersion statistic of a flow matrix.
type EntropyFunc func(flow *matrix.Dense) float64

// Stats are the aggregate statistics of a flow matrix.
type Stats struct {
	Distance float64
	Entropy  float64
}

func validate(ds *dataset.Dataset, f Factors, beta []float64) error {
	if ds == nil {
		return ErrNilDataset
	}
	if len(beta) == 0 {
		return ErrEmptyBeta
	}
	if len(f.Ai) != ds.NumOrigins() || len(f.Bj) != ds.NumDestinations() {
		return fmt.Errorf("ai=%d bj=%d for %dx%d: %w",
			len(f.Ai), len(f.Bj), ds.NumOrigins(), ds.NumDestinations(), ErrFactorLength)
	}
	return nil
}

// Cell evaluates the gravity equation for one (origin, destination) pair.
// Disconnected pairs yield exactly 0. Only beta[0] is used.
func Cell(ds *dataset.Dataset, f Factors, beta []float64, i, j int) float64 {
	d := ds.Distance(i, j)
	if d == dataset.NoConnection {
		return 0
	}
	return f.Ai[i] * f.Bj[j] * ds.OriginWeight(i) * ds.DestinationWeight(j) * math.Exp(d*beta[0])
}

// Evaluate recomputes the full flow matrix of ds in place from f and beta.
// Implementation:
//   - Stage 1: validate beta and factor lengths.
//   - Stage 2: for i in origins, j in destinations write Cell(i, j) into the
//     working flow row.
//
// Complexity: O(O·D).
func Evaluate(ds *dataset.Dataset, f Factors, beta []float64) error {
	if err := validate(ds, f, beta); err != nil {
		return fmt.Errorf("Evaluate: %w", err)
	}
	flow := ds.Flow()
	var i, j int
	for i = 0; i < ds.NumOrigins(); i++ {
		row := flow.Row(i)
		for j = range row {
			row[j] = Cell(ds, f, beta, i, j)
		}
	}
	return nil
}

// TotalDistance returns Σ flow[i][j] · effective distance[i][j], where the
// NoConnection sentinel counts as 0.
func TotalDistance(ds *dataset.Dataset) float64 {
	flow := ds.Flow()
	var total float64
	var i, j int
	for i = 0; i < ds.NumOrigins(); i++ {
		row := flow.Row(i)
		for j = range row {
			total += row[j] * ds.EffectiveDistance(i, j)
		}
	}
	return total
}

// Aggregate derives the total distance and entropy of the current flow matrix.
// entropy may be nil, in which case Stats.Entropy is 0.
func Aggregate(ds *dataset.Dataset, entropy EntropyFunc) (Stats, error) {
	if ds == nil {
		return Stats{}, fmt.Errorf("Aggregate: %w", ErrNilDataset)
	}
	s := Stats{Distance: TotalDistance(ds)}
	if entropy != nil {
		s.Entropy = entropy(ds.Flow())
	}
	return s, nil
}
