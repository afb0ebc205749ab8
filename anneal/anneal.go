package anneal

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
)

// defaultRNGSeed is the fixed seed used when callers pass Seed==0.
const defaultRNGSeed int64 = 1

// Proposer is the propose / accept / reject capability driven by Run.
type Proposer interface {
	Propose() float64
	Accept()
	Reject()
}

// Pender is optionally implemented by a Proposer that can abandon a
// proposal on its own (for example when the candidate state cannot be
// computed). Pending reports false after such a Propose; Run then counts the
// proposal as rejected and calls neither Accept, Reject nor Report.
type Pender interface {
	Pending() bool
}

// Reporter receives minor (after each acceptance) and major (after each
// step) progress hooks. It may be nil.
type Reporter interface {
	Report(minor bool)
}

// Summary describes a finished Run.
type Summary struct {
	Steps       int
	Proposals   int
	Accepted    int
	Rejected    int
	Fitness     float64
	Temperature float64
}

// rngFromSeed returns a deterministic *rand.Rand (seed==0 ⇒ defaultRNGSeed).
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// accept is the Metropolis rule for a maximisation problem.
func accept(delta, temperature float64, rng *rand.Rand) bool {
	if delta > 0 {
		return true
	}
	return rng.Float64() < math.Exp(delta/temperature)
}

// Run drives p for opts.Steps major iterations starting from the fitness
// start (the fitness of p's current state).
//
// Errors:
//   - ErrNilProposer, ErrBadOptions.
//   - ctx.Err() when cancelled; the Summary reflects the work done so far and
//     no proposal is left pending.
func Run(ctx context.Context, p Proposer, r Reporter, start float64, opts Options) (Summary, error) {
	if p == nil {
		return Summary{}, ErrNilProposer
	}
	if err := opts.Validate(); err != nil {
		return Summary{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rng := rngFromSeed(opts.Seed)
	pender, _ := p.(Pender)

	sum := Summary{Fitness: start, Temperature: opts.InitialTemperature}
	var step, attempt, successes int
	var f float64

	for step = 0; step < opts.Steps; step++ {
		successes = 0
		for attempt = 0; attempt < opts.Attempts && successes < opts.Successes; attempt++ {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			f = p.Propose()
			sum.Proposals++
			if pender != nil && !pender.Pending() {
				// already rolled back by the proposer
				sum.Rejected++
				continue
			}
			if accept(f-sum.Fitness, sum.Temperature, rng) {
				p.Accept()
				sum.Accepted++
				successes++
				sum.Fitness = f
				if r != nil {
					r.Report(true)
				}
				continue
			}
			p.Reject()
			sum.Rejected++
		}
		sum.Steps++
		if r != nil {
			r.Report(false)
		}
		logger.Info("annealing step",
			"step", sum.Steps, "temperature", sum.Temperature,
			"accepted", successes, "fitness", sum.Fitness)
		sum.Temperature *= opts.Factor
	}

	return sum, nil
}
