package dataset

import (
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/gravity/matrix"
)

// NoConnection marks an origin-destination pair without a valid link.
const NoConnection = -1.0

// Option configures optional Dataset metadata.
type Option func(*Dataset) error

// WithOriginIDs attaches external identifiers to the origins.
// The slice length must equal the number of origin weights.
func WithOriginIDs(ids []string) Option {
	return func(d *Dataset) error {
		if len(ids) != len(d.origin) {
			return fmt.Errorf("origin ids: %w", ErrShapeMismatch)
		}
		d.originIDs = append([]string(nil), ids...)
		return nil
	}
}

// WithDestinationIDs attaches external identifiers to the destinations.
func WithDestinationIDs(ids []string) Option {
	return func(d *Dataset) error {
		if len(ids) != len(d.destination) {
			return fmt.Errorf("destination ids: %w", ErrShapeMismatch)
		}
		d.destinationIDs = append([]string(nil), ids...)
		return nil
	}
}

// Dataset is the SpatialDataset: immutable inputs plus the working flow matrix.
// It is not safe for concurrent mutation; one calibration run owns it.
type Dataset struct {
	origin         []float64
	destination    []float64
	distance       *matrix.Dense
	flow           *matrix.Dense
	originIDs      []string
	destinationIDs []string
}

// New copies the supplied weights and distances into a Dataset.
// Implementation:
//   - Stage 1: validate non-empty weights and finite values; the only
//     negative distance allowed is NoConnection.
//   - Stage 2: validate the distance table is exactly O×D.
//   - Stage 3: allocate a zero flow matrix of shape (O, D) and apply options.
//
// Errors:
//   - ErrEmptyWeights, ErrShapeMismatch, ErrNaNInf, ErrNegativeDistance.
func New(origin, destination []float64, distance [][]float64, opts ...Option) (*Dataset, error) {
	if len(origin) == 0 || len(destination) == 0 {
		return nil, ErrEmptyWeights
	}
	if err := checkFinite("origin", origin); err != nil {
		return nil, err
	}
	if err := checkFinite("destination", destination); err != nil {
		return nil, err
	}
	if len(distance) != len(origin) {
		return nil, fmt.Errorf("distance rows %d, origins %d: %w", len(distance), len(origin), ErrShapeMismatch)
	}
	for i := range distance {
		if len(distance[i]) != len(destination) {
			return nil, fmt.Errorf("distance row %d has %d columns, destinations %d: %w",
				i, len(distance[i]), len(destination), ErrShapeMismatch)
		}
		if err := checkFinite(fmt.Sprintf("distance row %d", i), distance[i]); err != nil {
			return nil, err
		}
		for j, v := range distance[i] {
			if v < 0 && v != NoConnection {
				return nil, fmt.Errorf("distance[%d][%d]=%g: %w", i, j, v, ErrNegativeDistance)
			}
		}
	}

	dist, err := matrix.NewFromRows(distance)
	if err != nil {
		return nil, fmt.Errorf("distance: %w", err)
	}
	flow, err := matrix.NewDense(len(origin), len(destination))
	if err != nil {
		return nil, fmt.Errorf("flow: %w", err)
	}

	d := &Dataset{
		origin:      append([]float64(nil), origin...),
		destination: append([]float64(nil), destination...),
		distance:    dist,
		flow:        flow,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	if d.originIDs == nil {
		d.originIDs = indexIDs(len(origin))
	}
	if d.destinationIDs == nil {
		d.destinationIDs = indexIDs(len(destination))
	}

	return d, nil
}

func checkFinite(what string, vs []float64) error {
	for k, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s[%d]: %w", what, k, ErrNaNInf)
		}
	}
	return nil
}

// indexIDs returns "1".."n", matching the row numbering of exported tables.
func indexIDs(n int) []string {
	ids := make([]string, n)
	for k := range ids {
		ids[k] = strconv.Itoa(k + 1)
	}
	return ids
}

// NumOrigins returns O.
func (d *Dataset) NumOrigins() int { return len(d.origin) }

// NumDestinations returns D.
func (d *Dataset) NumDestinations() int { return len(d.destination) }

// OriginWeight returns the weight of origin i. i must be in range.
func (d *Dataset) OriginWeight(i int) float64 { return d.origin[i] }

// DestinationWeight returns the weight of destination j. j must be in range.
func (d *Dataset) DestinationWeight(j int) float64 { return d.destination[j] }

// Origins returns a copy of the origin weights.
func (d *Dataset) Origins() []float64 { return append([]float64(nil), d.origin...) }

// Destinations returns a copy of the destination weights.
func (d *Dataset) Destinations() []float64 { return append([]float64(nil), d.destination...) }

// OriginID returns the identifier of origin i.
func (d *Dataset) OriginID(i int) string { return d.originIDs[i] }

// DestinationID returns the identifier of destination j.
func (d *Dataset) DestinationID(j int) string { return d.destinationIDs[j] }

// OriginIDs returns a copy of all origin identifiers.
func (d *Dataset) OriginIDs() []string { return append([]string(nil), d.originIDs...) }

// DestinationIDs returns a copy of all destination identifiers.
func (d *Dataset) DestinationIDs() []string { return append([]string(nil), d.destinationIDs...) }

// Distance returns the distance between origin i and destination j.
// Invalid indices yield NoConnection rather than an error.
func (d *Dataset) Distance(i, j int) float64 {
	v, err := d.distance.At(i, j)
	if err != nil {
		return NoConnection
	}
	return v
}

// Connected reports whether (i, j) carries a valid distance.
func (d *Dataset) Connected(i, j int) bool {
	return d.Distance(i, j) != NoConnection
}

// EffectiveDistance is Distance with the sentinel mapped to 0, the value
// used when summing the system travel distance.
func (d *Dataset) EffectiveDistance(i, j int) float64 {
	v := d.Distance(i, j)
	if v == NoConnection {
		return 0
	}
	return v
}

// Flow returns the working flow matrix. The model writes into it in place;
// other callers must treat it as read-only and use SnapshotFlow to keep values.
func (d *Dataset) Flow() *matrix.Dense { return d.flow }

// SetFlow writes a single flow cell.
func (d *Dataset) SetFlow(i, j int, v float64) error {
	return d.flow.Set(i, j, v)
}

// SnapshotFlow returns a deep copy of the current flow matrix.
func (d *Dataset) SnapshotFlow() *matrix.Dense { return d.flow.Clone() }

// RestoreFlow copies the values of snap into the working flow matrix.
// The dataset never keeps a reference to snap.
func (d *Dataset) RestoreFlow(snap *matrix.Dense) error {
	if snap == nil || snap.Rows() != d.flow.Rows() || snap.Cols() != d.flow.Cols() {
		return fmt.Errorf("restore flow: %w", ErrShapeMismatch)
	}
	return d.flow.CopyFrom(snap)
}

// ResetFlow zeroes the working flow matrix.
func (d *Dataset) ResetFlow() { d.flow.Fill(0) }
