// Package loader reads the delimited input tables of a run:
//
//	origins / destinations: id,weight          (optional header row)
//	distances:              origin,destination,distance
//
// A header is detected by the weight column of the first row not being a
// number. Surrounding double quotes are stripped from every field. Pairs
// missing from the distance table get dataset.NoConnection, and rows naming
// unknown IDs are skipped.
//
// Any failure surfaces as ErrDatasetUnavailable (wrapped with the cause).
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/gravity/dataset"
)

var (
	// ErrDatasetUnavailable is returned when input cannot be turned into a dataset.
	ErrDatasetUnavailable = errors.New("loader: dataset unavailable")

	// ErrEmptyTable is returned for tables without data rows.
	ErrEmptyTable = errors.New("loader: table has no data rows")

	// ErrBadRow is returned for rows with too few columns or unparseable numbers.
	ErrBadRow = errors.New("loader: malformed row")
)

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	return cr
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

// LoadWeights reads an id,weight table.
func LoadWeights(r io.Reader) (ids []string, weights []float64, err error) {
	records, err := newReader(r).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read weights: %w", err)
	}
	start := 0
	if len(records) > 0 && len(records[0]) >= 2 {
		if _, perr := strconv.ParseFloat(stripQuotes(records[0][1]), 64); perr != nil {
			start = 1
		}
	}
	for n, rec := range records[start:] {
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("weights row %d: %w", n+start+1, ErrBadRow)
		}
		w, perr := strconv.ParseFloat(stripQuotes(rec[1]), 64)
		if perr != nil {
			return nil, nil, fmt.Errorf("weights row %d: %v: %w", n+start+1, perr, ErrBadRow)
		}
		ids = append(ids, stripQuotes(rec[0]))
		weights = append(weights, w)
	}
	if len(ids) == 0 {
		return nil, nil, ErrEmptyTable
	}
	return ids, weights, nil
}

// LoadDistances reads origin,destination,distance triplets into an O×D
// table indexed by the given ID lists.
func LoadDistances(r io.Reader, originIDs, destinationIDs []string) ([][]float64, error) {
	oIdx := indexOf(originIDs)
	dIdx := indexOf(destinationIDs)

	out := make([][]float64, len(originIDs))
	for i := range out {
		out[i] = make([]float64, len(destinationIDs))
		for j := range out[i] {
			out[i][j] = dataset.NoConnection
		}
	}

	cr := newReader(r)
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read distances: %w", err)
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("distances row %d: %w", line, ErrBadRow)
		}
		i, okO := oIdx[stripQuotes(rec[0])]
		j, okD := dIdx[stripQuotes(rec[1])]
		if !okO || !okD {
			continue
		}
		v, perr := strconv.ParseFloat(stripQuotes(rec[2]), 64)
		if perr != nil {
			return nil, fmt.Errorf("distances row %d: %v: %w", line, perr, ErrBadRow)
		}
		out[i][j] = v
	}
	return out, nil
}

func indexOf(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for k, id := range ids {
		if _, dup := m[id]; !dup {
			m[id] = k
		}
	}
	return m
}

// Load builds a dataset from the three tables.
func Load(origins, destinations, distances io.Reader) (*dataset.Dataset, error) {
	oIDs, oW, err := LoadWeights(origins)
	if err != nil {
		return nil, fmt.Errorf("%w: origins: %w", ErrDatasetUnavailable, err)
	}
	dIDs, dW, err := LoadWeights(destinations)
	if err != nil {
		return nil, fmt.Errorf("%w: destinations: %w", ErrDatasetUnavailable, err)
	}
	dist, err := LoadDistances(distances, oIDs, dIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: distances: %w", ErrDatasetUnavailable, err)
	}
	ds, err := dataset.New(oW, dW, dist, dataset.WithOriginIDs(oIDs), dataset.WithDestinationIDs(dIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatasetUnavailable, err)
	}
	return ds, nil
}

// LoadFiles opens the three files and calls Load.
func LoadFiles(originPath, destinationPath, distancePath string) (*dataset.Dataset, error) {
	var files []*os.File
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	for _, p := range []string{originPath, destinationPath, distancePath} {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatasetUnavailable, err)
		}
		files = append(files, f)
	}
	return Load(files[0], files[1], files[2])
}
