package dataset

import "errors"

var (
	// ErrEmptyWeights is returned when origin or destination weights are empty.
	ErrEmptyWeights = errors.New("dataset: origin and destination weights must be non-empty")

	// ErrShapeMismatch is returned when the distance matrix is not O×D,
	// an ID list has the wrong length, or a restored flow has the wrong shape.
	ErrShapeMismatch = errors.New("dataset: shape mismatch")

	// ErrNaNInf is returned when a weight or distance is NaN or ±Inf.
	ErrNaNInf = errors.New("dataset: NaN or Inf value")

	// ErrNegativeDistance is returned for a negative distance other than
	// the NoConnection sentinel.
	ErrNegativeDistance = errors.New("dataset: negative distance")
)
