package calibrate

import (
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/gravity/balance"
	"github.com/katalvlaran/gravity/entropy"
	"github.com/katalvlaran/gravity/model"
)

// defaultRNGSeed is used when Options.Seed is 0 and no Rand is supplied.
const defaultRNGSeed int64 = 1

// Options configures a Calibrator.
//   - Balance: balancing settings used on every run (default balance.DefaultOptions()).
//   - Entropy: entropy statistic (default entropy.Func).
//   - Seed: RNG seed for fresh perturbations; 0 selects a fixed default seed.
//   - Rand: explicit RNG; overrides Seed when non-nil. Not shared across goroutines.
//   - Logger: structured progress logger; nil discards.
type Options struct {
	Balance balance.Options
	Entropy model.EntropyFunc
	Seed    int64
	Rand    *rand.Rand
	Logger  *slog.Logger
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		Balance: balance.DefaultOptions(),
		Entropy: entropy.Func,
	}
}

func (o Options) withDefaults() Options {
	if o.Balance == (balance.Options{}) {
		o.Balance = balance.DefaultOptions()
	}
	if o.Entropy == nil {
		o.Entropy = entropy.Func
	}
	if o.Rand == nil {
		seed := o.Seed
		if seed == 0 {
			seed = defaultRNGSeed
		}
		o.Rand = rand.New(rand.NewSource(seed))
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}
