package calibrate

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/katalvlaran/gravity/anneal"
	"github.com/katalvlaran/gravity/balance"
	"github.com/katalvlaran/gravity/dataset"
	"github.com/katalvlaran/gravity/matrix"
	"github.com/katalvlaran/gravity/model"
	"github.com/katalvlaran/gravity/results"
)

// ShrinkFactor multiplies beta[0] on proposals made in shrink mode.
const ShrinkFactor = 0.99

// betaIndex is the tuned parameter; the model uses beta[0] only.
const betaIndex = 0

// State is the protocol state of a Calibrator.
type State int

const (
	// Idle: no proposal is pending.
	Idle State = iota
	// Proposed: a proposal awaits Accept or Reject.
	Proposed
)

func (s State) String() string {
	if s == Proposed {
		return "proposed"
	}
	return "idle"
}

// Snapshot is an immutable copy of a flow matrix with its statistics.
type Snapshot struct {
	Flow     *matrix.Dense
	Distance float64
	Entropy  float64
	Fitness  float64
}

// pending holds the pre-proposal state used to roll back on Reject.
type pending struct {
	beta     []float64
	distance float64
	entropy  float64
	flow     *matrix.Dense
	factors  model.Factors
}

// Calibrator owns beta, the current statistics and the best/final snapshots
// for one calibration session over a dataset.
type Calibrator struct {
	ds       *dataset.Dataset
	observed float64
	opts     Options
	rng      *rand.Rand
	log      *slog.Logger

	beta     []float64
	factors  model.Factors
	distance float64
	entropy  float64

	fresh   bool
	state   State
	pending *pending

	best        *Snapshot
	bestFitness float64
	final       *Snapshot
}

var (
	_ anneal.Proposer = (*Calibrator)(nil)
	_ anneal.Pender   = (*Calibrator)(nil)
	_ anneal.Reporter = (*Calibrator)(nil)
)

// New creates a Calibrator for ds with an initial beta and the observed
// total travel distance. beta is copied.
func New(ds *dataset.Dataset, beta []float64, observed float64, opts Options) (*Calibrator, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	if len(beta) == 0 {
		return nil, ErrEmptyBeta
	}
	if !(observed > 0) || math.IsInf(observed, 0) {
		return nil, fmt.Errorf("observed=%g: %w", observed, ErrBadObservedDistance)
	}
	opts = opts.withDefaults()
	if err := opts.Balance.Validate(); err != nil {
		return nil, err
	}

	return &Calibrator{
		ds:       ds,
		observed: observed,
		opts:     opts,
		rng:      opts.Rand,
		log:      opts.Logger,
		beta:     append([]float64(nil), beta...),
		factors:  model.NewFactors(ds.NumOrigins(), ds.NumDestinations()),
		fresh:    true,
	}, nil
}

// Run balances and evaluates the model with the current beta and updates
// distance and entropy. It is the initial run made before calibration.
func (c *Calibrator) Run() error {
	if err := c.run(); err != nil {
		return err
	}
	c.log.Info("initial run", "beta", c.beta[betaIndex], "distance", c.distance, "entropy", c.entropy)
	return nil
}

// run balances, evaluates and aggregates. On failure distance and entropy
// keep their previous values.
func (c *Calibrator) run() error {
	res, err := balance.Balance(c.ds, c.beta, c.opts.Balance)
	if err != nil {
		return err
	}
	stats, err := model.Aggregate(c.ds, c.opts.Entropy)
	if err != nil {
		return err
	}
	c.factors = res.Factors
	c.distance = stats.Distance
	c.entropy = stats.Entropy
	c.log.Debug("balancing complete", "iterations", res.Iterations, "beta", c.beta[betaIndex])
	return nil
}

// Propose snapshots the current state, perturbs beta[0] and reruns the
// model. It returns the resulting fitness.
//
// If balancing does not converge the proposal is rolled back at once, the
// calibrator returns to Idle with fresh mode forced, and the returned
// fitness is that of the restored state. A following Accept or Reject from
// the driver is then a no-op.
func (c *Calibrator) Propose() float64 {
	c.pending = &pending{
		beta:     append([]float64(nil), c.beta...),
		distance: c.distance,
		entropy:  c.entropy,
		flow:     c.ds.SnapshotFlow(),
		factors:  c.factors.Clone(),
	}
	c.state = Proposed

	if c.fresh {
		c.beta[betaIndex] = c.randomBeta()
	} else {
		c.beta[betaIndex] *= ShrinkFactor
	}

	if err := c.run(); err != nil {
		if !errors.Is(err, balance.ErrNotConverged) {
			c.log.Error("proposal failed", "beta", c.beta[betaIndex], "err", err)
		} else {
			c.log.Debug("proposal did not converge", "beta", c.beta[betaIndex])
		}
		c.Reject()
		c.fresh = true
	}

	return c.Fitness()
}

// randomBeta draws -U(0,1) / (1 + U{0..999}).
func (c *Calibrator) randomBeta() float64 {
	return -1 * (c.rng.Float64() / float64(c.rng.Intn(1000)+1))
}

// Accept keeps the proposed beta and selects fresh mode for the next proposal.
func (c *Calibrator) Accept() {
	c.fresh = true
	c.pending = nil
	c.state = Idle
}

// Reject restores beta, distance, entropy, the flow matrix and Ai/Bj from the
// pre-proposal snapshot and flips the perturbation mode. Without a pending
// proposal it does nothing.
func (c *Calibrator) Reject() {
	p := c.pending
	if p == nil {
		return
	}
	c.beta = p.beta
	c.distance = p.distance
	c.entropy = p.entropy
	c.factors = p.factors
	if err := c.ds.RestoreFlow(p.flow); err != nil {
		// shapes are fixed for the dataset lifetime
		c.log.Error("restore flow", "err", err)
	}
	c.fresh = !c.fresh
	c.pending = nil
	c.state = Idle
}

// Fitness scores the current distance and entropy against the observed
// distance (see package documentation for the two branches).
func (c *Calibrator) Fitness() float64 {
	return Fitness(c.distance, c.entropy, c.observed)
}

// Fitness is the scoring function used by Calibrator.Fitness.
func Fitness(distance, entropy, observed float64) float64 {
	diff := math.Abs(distance - observed)
	if diff < observed {
		return (1 - diff/observed) * entropy
	}
	return observed - diff
}

// RecordIfBest stores a best-fit snapshot when fitness strictly exceeds the
// best fitness seen so far (initially 0). It reports whether it stored.
func (c *Calibrator) RecordIfBest(flow *matrix.Dense, entropy, distance, fitness float64) bool {
	if flow == nil || !(fitness > c.bestFitness) {
		return false
	}
	c.best = &Snapshot{Flow: flow.Clone(), Distance: distance, Entropy: entropy, Fitness: fitness}
	c.bestFitness = fitness
	return true
}

// RecordFinal overwrites the final-run snapshot.
func (c *Calibrator) RecordFinal(flow *matrix.Dense, entropy, distance float64) {
	if flow == nil {
		return
	}
	c.final = &Snapshot{
		Flow:     flow.Clone(),
		Distance: distance,
		Entropy:  entropy,
		Fitness:  Fitness(distance, entropy, c.observed),
	}
}

// Report is the driver hook: minor iterations feed the best-fit snapshot,
// major iterations overwrite the final-run snapshot.
func (c *Calibrator) Report(minor bool) {
	fitness := c.Fitness()
	if minor {
		c.log.Debug("minor", "entropy", c.entropy, "distance", c.distance, "fitness", fitness, "beta", c.beta[betaIndex])
		c.RecordIfBest(c.ds.Flow(), c.entropy, c.distance, fitness)
		return
	}
	c.log.Info("MAJOR", "entropy", c.entropy, "distance", c.distance, "fitness", fitness, "beta", c.beta[betaIndex])
	c.RecordFinal(c.ds.Flow(), c.entropy, c.distance)
}

// Best returns the best-fit snapshot, if any was recorded.
func (c *Calibrator) Best() (Snapshot, bool) {
	if c.best == nil {
		return Snapshot{}, false
	}
	return *c.best, true
}

// Final returns the final-run snapshot, if any was recorded.
func (c *Calibrator) Final() (Snapshot, bool) {
	if c.final == nil {
		return Snapshot{}, false
	}
	return *c.final, true
}

// BestFitness returns the highest fitness recorded by RecordIfBest (0 before any).
func (c *Calibrator) BestFitness() float64 { return c.bestFitness }

// Export converts a snapshot into a named artifact carrying the dataset IDs.
func (c *Calibrator) Export(name string, s Snapshot) (results.Artifact, error) {
	return results.NewArtifact(name, s.Flow, s.Distance, s.Entropy, c.ds.OriginIDs(), c.ds.DestinationIDs())
}

// Artifacts exports the recorded snapshots as "Best Fit" and "Final Run"
// artifacts. Snapshots never recorded are skipped.
func (c *Calibrator) Artifacts() ([]results.Artifact, error) {
	var out []results.Artifact
	for _, s := range []struct {
		name string
		snap *Snapshot
	}{
		{results.BestFit, c.best},
		{results.FinalRun, c.final},
	} {
		if s.snap == nil {
			continue
		}
		a, err := c.Export(s.name, *s.snap)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Beta returns a copy of the current parameters.
func (c *Calibrator) Beta() []float64 { return append([]float64(nil), c.beta...) }

// Distance returns the current total travel distance.
func (c *Calibrator) Distance() float64 { return c.distance }

// Entropy returns the current entropy.
func (c *Calibrator) Entropy() float64 { return c.entropy }

// ObservedDistance returns the calibration target.
func (c *Calibrator) ObservedDistance() float64 { return c.observed }

// Factors returns a copy of the current balancing factors.
func (c *Calibrator) Factors() model.Factors { return c.factors.Clone() }

// State returns the protocol state.
func (c *Calibrator) State() State { return c.state }

// Pending reports whether a proposal awaits Accept or Reject. It is false
// right after a Propose whose balancing did not converge.
func (c *Calibrator) Pending() bool { return c.state == Proposed }

// SampleSize is the number of tunable parameters (len(beta)).
func (c *Calibrator) SampleSize() int { return len(c.beta) }

// FreshMode reports whether the next proposal draws a fresh random beta.
func (c *Calibrator) FreshMode() bool { return c.fresh }
