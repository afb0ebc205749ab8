package model

import "errors"

var (
	// ErrEmptyBeta is returned when no decay parameter is supplied.
	ErrEmptyBeta = errors.New("model: beta must contain at least one parameter")

	// ErrFactorLength is returned when Ai/Bj lengths do not match the dataset.
	ErrFactorLength = errors.New("model: balancing factor length mismatch")

	// ErrNilDataset is returned when a nil dataset is passed in.
	ErrNilDataset = errors.New("model: dataset is nil")
)
