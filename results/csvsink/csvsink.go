// Package csvsink writes calibration artifacts as comma-separated files.
//
// For an artifact named N it writes, into the run directory:
//
//	N Matrix.csv             origin,destination,flow triplets
//	N Flow Matrix.csv        dense O×D flow grid
//	N Flow Probabilities.csv origin,destination,probability triplets
//	N Stats.csv              Distance and Entropy rows
//
// Existing files with these names are replaced.
package csvsink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/gravity/results"
)

// Sink writes artifacts below Dir. A non-empty run ID selects the
// sub-directory Dir/<runID>.
type Sink struct {
	Dir string
}

var _ results.Sink = (*Sink)(nil)

// New returns a Sink rooted at dir.
func New(dir string) *Sink { return &Sink{Dir: dir} }

// Save writes every artifact. ctx is checked between files.
func (s *Sink) Save(ctx context.Context, runID string, artifacts []results.Artifact) error {
	if len(artifacts) == 0 {
		return results.ErrNoArtifacts
	}
	dir := s.Dir
	if runID != "" {
		dir = filepath.Join(dir, runID)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("csvsink: create %s: %w", dir, err)
	}

	for _, a := range artifacts {
		files := []struct {
			name string
			rows [][]string
		}{
			{a.Name + " Matrix.csv", triplets(a, a.Flow)},
			{a.Name + " Flow Matrix.csv", grid(a.Flow)},
			{a.Name + " Flow Probabilities.csv", triplets(a, a.Probabilities)},
			{a.Name + " Stats.csv", [][]string{
				{"Distance", formatFloat(a.Distance)},
				{"Entropy", formatFloat(a.Entropy)},
			}},
		}
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeFile(filepath.Join(dir, f.name), f.rows); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func triplets(a results.Artifact, m [][]float64) [][]string {
	var out [][]string
	for i, row := range m {
		for j, v := range row {
			out = append(out, []string{a.OriginIDs[i], a.DestinationIDs[j], formatFloat(v)})
		}
	}
	return out
}

func grid(m [][]float64) [][]string {
	out := make([][]string, len(m))
	for i, row := range m {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = formatFloat(v)
		}
	}
	return out
}

func writeFile(path string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvsink: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("csvsink: close %s: %w", path, cerr)
		}
	}()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("csvsink: write %s: %w", path, err)
	}
	return nil
}
