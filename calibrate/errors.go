package calibrate

import "errors"

var (
	// ErrBadObservedDistance is returned when the observed distance is not a
	// positive finite number.
	ErrBadObservedDistance = errors.New("calibrate: observed distance must be positive and finite")

	// ErrEmptyBeta is returned when no decay parameter is supplied.
	ErrEmptyBeta = errors.New("calibrate: beta must contain at least one parameter")

	// ErrNilDataset is returned when New is called without a dataset.
	ErrNilDataset = errors.New("calibrate: dataset is nil")
)
