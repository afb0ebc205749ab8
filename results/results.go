// Package results defines the artifacts a calibration run exports and the
// sinks that persist them.
//
// Two artifacts are produced per run, "Best Fit" and "Final Run". Each
// carries the flow matrix, its row-normalised probability matrix, the total
// travel distance and the entropy. Sinks decide the storage format:
// csvsink writes delimited files, sqlitestore writes to a SQLite database.
package results

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/gravity/matrix"
)

// Artifact names used by the calibration run.
const (
	BestFit  = "Best Fit"
	FinalRun = "Final Run"
)

var (
	// ErrNoArtifacts is returned by sinks asked to save nothing.
	ErrNoArtifacts = errors.New("results: no artifacts to save")

	// ErrNotFound is returned when a stored artifact does not exist.
	ErrNotFound = errors.New("results: artifact not found")

	// ErrIDMismatch is returned when ID lists do not match the flow shape.
	ErrIDMismatch = errors.New("results: id list does not match matrix shape")
)

// Artifact is one exported result table.
type Artifact struct {
	Name           string
	Flow           [][]float64
	Probabilities  [][]float64
	Distance       float64
	Entropy        float64
	OriginIDs      []string
	DestinationIDs []string
}

// NewArtifact copies flow and derives the row-normalised probabilities
// (rows summing to zero stay zero).
func NewArtifact(name string, flow *matrix.Dense, distance, entropy float64, originIDs, destinationIDs []string) (Artifact, error) {
	if flow == nil {
		return Artifact{}, fmt.Errorf("artifact %q: %w", name, matrix.ErrNilMatrix)
	}
	if len(originIDs) != flow.Rows() || len(destinationIDs) != flow.Cols() {
		return Artifact{}, fmt.Errorf("artifact %q: %w", name, ErrIDMismatch)
	}
	prob, _, err := matrix.NormalizeRowsL1(flow)
	if err != nil {
		return Artifact{}, fmt.Errorf("artifact %q: %w", name, err)
	}

	return Artifact{
		Name:           name,
		Flow:           flow.ToRows(),
		Probabilities:  prob.ToRows(),
		Distance:       distance,
		Entropy:        entropy,
		OriginIDs:      append([]string(nil), originIDs...),
		DestinationIDs: append([]string(nil), destinationIDs...),
	}, nil
}

// Sink persists the artifacts of one run.
type Sink interface {
	Save(ctx context.Context, runID string, artifacts []Artifact) error
}
