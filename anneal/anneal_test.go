package anneal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gravity/anneal"
	"github.com/katalvlaran/gravity/calibrate"
	"github.com/katalvlaran/gravity/dataset"
)

// scripted returns fitness values from next and counts protocol calls.
type scripted struct {
	next               func(call int) float64
	calls              int
	accepted, rejected int
	minor, major       int
}

func (s *scripted) Propose() float64 {
	s.calls++
	return s.next(s.calls)
}
func (s *scripted) Accept()           { s.accepted++ }
func (s *scripted) Reject()           { s.rejected++ }
func (s *scripted) Report(minor bool) {
	if minor {
		s.minor++
	} else {
		s.major++
	}
}

func smallOptions() anneal.Options {
	o := anneal.DefaultOptions()
	o.Steps = 2
	o.Attempts = 5
	o.Successes = 3
	return o
}

func TestRun_ImprovingProposalsEndStepsEarly(t *testing.T) {
	p := &scripted{next: func(call int) float64 { return float64(call) }}

	sum, err := anneal.Run(context.Background(), p, p, 0, smallOptions())
	require.NoError(t, err)
	require.Equal(t, 6, p.calls)
	require.Equal(t, 6, p.accepted)
	require.Equal(t, 0, p.rejected)
	require.Equal(t, 6, p.minor)
	require.Equal(t, 2, p.major)

	require.Equal(t, 2, sum.Steps)
	require.Equal(t, 6, sum.Proposals)
	require.Equal(t, 6, sum.Accepted)
	require.Equal(t, 6.0, sum.Fitness)
}

func TestRun_HopelessProposalsAreRejected(t *testing.T) {
	p := &scripted{next: func(int) float64 { return -1000 }}

	sum, err := anneal.Run(context.Background(), p, p, 0, smallOptions())
	require.NoError(t, err)
	require.Equal(t, 10, p.calls)
	require.Equal(t, 0, p.accepted)
	require.Equal(t, 10, p.rejected)
	require.Equal(t, 0, p.minor)
	require.Equal(t, 2, p.major)
	require.Equal(t, 0.0, sum.Fitness)
	require.Equal(t, 10, sum.Rejected)
}

func TestRun_TemperatureSchedule(t *testing.T) {
	p := &scripted{next: func(int) float64 { return -1000 }}
	o := smallOptions()
	o.Factor = 0.5
	o.InitialTemperature = 2

	sum, err := anneal.Run(context.Background(), p, nil, 0, o)
	require.NoError(t, err)
	require.Equal(t, 0.5, sum.Temperature)
}

func TestRun_Cancelled(t *testing.T) {
	p := &scripted{next: func(call int) float64 { return float64(call) }}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := anneal.Run(ctx, p, p, 0, smallOptions())
	require.True(t, errors.Is(err, context.Canceled))
	require.Equal(t, 0, p.calls)
	require.Equal(t, 0, sum.Proposals)
}

func TestRun_BadInput(t *testing.T) {
	p := &scripted{next: func(int) float64 { return 0 }}

	_, err := anneal.Run(context.Background(), nil, nil, 0, anneal.DefaultOptions())
	require.ErrorIs(t, err, anneal.ErrNilProposer)

	bad := []func(*anneal.Options){
		func(o *anneal.Options) { o.Steps = 0 },
		func(o *anneal.Options) { o.Attempts = -1 },
		func(o *anneal.Options) { o.Successes = 0 },
		func(o *anneal.Options) { o.Factor = 0 },
		func(o *anneal.Options) { o.Factor = 1.5 },
		func(o *anneal.Options) { o.InitialTemperature = 0 },
	}
	for k, mutate := range bad {
		o := anneal.DefaultOptions()
		mutate(&o)
		_, err = anneal.Run(context.Background(), p, nil, 0, o)
		require.ErrorIs(t, err, anneal.ErrBadOptions, "case %d", k)
	}
	require.Equal(t, 0, p.calls)
}

// TestRun_Calibrator drives a real calibrator end to end.
func TestRun_Calibrator(t *testing.T) {
	ds, err := dataset.New(
		[]float64{100, 200, 50},
		[]float64{150, 120, 80},
		[][]float64{{1, 4, 9}, {3, 1, dataset.NoConnection}, {7, 2, 1}},
	)
	require.NoError(t, err)

	copts := calibrate.DefaultOptions()
	copts.Seed = 3
	cal, err := calibrate.New(ds, []float64{-0.01}, 900, copts)
	require.NoError(t, err)
	require.NoError(t, cal.Run())

	o := anneal.DefaultOptions()
	o.Steps = 3
	o.Attempts = 10
	o.Successes = 3
	o.Seed = 3

	sum, err := anneal.Run(context.Background(), cal, cal, cal.Fitness(), o)
	require.NoError(t, err)
	require.Equal(t, calibrate.Idle, cal.State())
	require.Equal(t, sum.Proposals, sum.Accepted+sum.Rejected)
	require.Equal(t, 3, sum.Steps)

	final, ok := cal.Final()
	require.True(t, ok)
	require.Equal(t, cal.Distance(), final.Distance)

	if best, ok := cal.Best(); ok {
		require.Greater(t, best.Fitness, 0.0)
		require.GreaterOrEqual(t, cal.BestFitness(), best.Fitness)
	}

	arts, err := cal.Artifacts()
	require.NoError(t, err)
	require.NotEmpty(t, arts)
}

// abandoning drops every proposal on its own, as a calibrator does when
// balancing fails.
type abandoning struct {
	scripted
}

func (a *abandoning) Pending() bool { return false }

func TestRun_AbandonedProposalsCountAsRejected(t *testing.T) {
	p := &abandoning{scripted{next: func(int) float64 { return 0 }}}

	sum, err := anneal.Run(context.Background(), p, p, 0, smallOptions())
	require.NoError(t, err)
	require.Equal(t, 10, sum.Proposals)
	require.Equal(t, 0, sum.Accepted)
	require.Equal(t, 10, sum.Rejected)
	require.Equal(t, 0, p.accepted)
	require.Equal(t, 0, p.rejected)
	require.Equal(t, 0, p.minor)
	require.Equal(t, 2, p.major)
}

// TestRun_NonConvergingCalibrator: with a single balancing pass no proposal
// converges, so nothing may be accepted and beta never moves.
func TestRun_NonConvergingCalibrator(t *testing.T) {
	ds, err := dataset.New(
		[]float64{100, 200, 50},
		[]float64{150, 120, 80},
		[][]float64{{1, 4, 9}, {3, 1, dataset.NoConnection}, {7, 2, 1}},
	)
	require.NoError(t, err)

	copts := calibrate.DefaultOptions()
	copts.Seed = 3
	copts.Balance.MaxIterations = 1
	cal, err := calibrate.New(ds, []float64{-0.01}, 900, copts)
	require.NoError(t, err)
	require.Error(t, cal.Run())

	o := anneal.DefaultOptions()
	o.Steps = 1
	o.Attempts = 10
	o.Successes = 3

	sum, err := anneal.Run(context.Background(), cal, cal, cal.Fitness(), o)
	require.NoError(t, err)
	require.Equal(t, 10, sum.Proposals, "no fake successes end the step early")
	require.Equal(t, 0, sum.Accepted)
	require.Equal(t, 10, sum.Rejected)
	require.Equal(t, []float64{-0.01}, cal.Beta())
	require.Equal(t, calibrate.Idle, cal.State())

	_, ok := cal.Best()
	require.False(t, ok)
}
