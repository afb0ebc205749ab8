package anneal

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// ErrBadOptions is returned by Options.Validate.
var ErrBadOptions = errors.New("anneal: invalid options")

// ErrNilProposer is returned when Run is called without a proposer.
var ErrNilProposer = errors.New("anneal: proposer is nil")

// Defaults.
const (
	DefaultSteps              = 100
	DefaultAttempts           = 100
	DefaultSuccesses          = 10
	DefaultFactor             = 0.9
	DefaultInitialTemperature = 1.0
)

// Options configures Run.
//   - Steps: number of major iterations (> 0).
//   - Attempts: proposals per major iteration (> 0).
//   - Successes: acceptances that end a major iteration early (> 0).
//   - Factor: temperature multiplier per major iteration, in (0, 1].
//   - InitialTemperature: starting temperature (> 0).
//   - Seed: RNG seed; 0 selects defaultRNGSeed.
//   - Logger: progress logger; nil discards.
type Options struct {
	Steps              int
	Attempts           int
	Successes          int
	Factor             float64
	InitialTemperature float64
	Seed               int64
	Logger             *slog.Logger
}

// DefaultOptions returns sane defaults.
func DefaultOptions() Options {
	return Options{
		Steps:              DefaultSteps,
		Attempts:           DefaultAttempts,
		Successes:          DefaultSuccesses,
		Factor:             DefaultFactor,
		InitialTemperature: DefaultInitialTemperature,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	switch {
	case o.Steps <= 0:
		return fmt.Errorf("Steps=%d: %w", o.Steps, ErrBadOptions)
	case o.Attempts <= 0:
		return fmt.Errorf("Attempts=%d: %w", o.Attempts, ErrBadOptions)
	case o.Successes <= 0:
		return fmt.Errorf("Successes=%d: %w", o.Successes, ErrBadOptions)
	case !(o.Factor > 0 && o.Factor <= 1):
		return fmt.Errorf("Factor=%g: %w", o.Factor, ErrBadOptions)
	case !(o.InitialTemperature > 0) || math.IsInf(o.InitialTemperature, 0):
		return fmt.Errorf("InitialTemperature=%g: %w", o.InitialTemperature, ErrBadOptions)
	}
	return nil
}
