package balance

import (
	"fmt"
	"math"
)

const (
	// DefaultMaxIterations caps the number of balancing passes.
	DefaultMaxIterations = 5000

	// DefaultThreshold is the absolute marginal tolerance.
	DefaultThreshold = 1.0
)

// Options configures Balance.
//   - MaxIterations: maximum number of Ai/Bj passes (> 0).
//   - Threshold: absolute tolerance on every origin and destination total (>= 0, finite).
type Options struct {
	MaxIterations int
	Threshold     float64
}

// DefaultOptions returns the reference settings: 5000 passes, tolerance 1.0.
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		Threshold:     DefaultThreshold,
	}
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	if o.MaxIterations <= 0 {
		return fmt.Errorf("MaxIterations=%d: %w", o.MaxIterations, ErrBadOptions)
	}
	if o.Threshold < 0 || math.IsNaN(o.Threshold) || math.IsInf(o.Threshold, 0) {
		return fmt.Errorf("Threshold=%g: %w", o.Threshold, ErrBadOptions)
	}
	return nil
}
