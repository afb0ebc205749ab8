package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gravity/anneal"
	"github.com/katalvlaran/gravity/balance"
	"github.com/katalvlaran/gravity/config"
)

const full = `
inputs:
  origins: o.csv
  destinations: d.csv
  distances: x.csv
observed_distance: 1250
initial_beta: -0.2
seed: 9
balance:
  max_iterations: 300
  threshold: 0.5
anneal:
  steps: 4
  attempts: 20
  successes: 2
  factor: 0.8
  initial_temperature: 3
output:
  dir: out
  sqlite: runs.db
`

func TestParse_Full(t *testing.T) {
	cfg, err := config.Parse([]byte(full))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "x.csv", cfg.Inputs.Distances)
	require.Equal(t, 1250.0, cfg.ObservedDistance)
	require.Equal(t, -0.2, cfg.Beta())
	require.Equal(t, balance.Options{MaxIterations: 300, Threshold: 0.5}, cfg.BalanceOptions())
	require.Equal(t, anneal.Options{
		Steps: 4, Attempts: 20, Successes: 2, Factor: 0.8, InitialTemperature: 3, Seed: 9,
	}, cfg.AnnealOptions())
	require.Equal(t, "runs.db", cfg.Output.SQLite)
	require.Equal(t, "out", cfg.Output.Dir)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse([]byte("inputs: {origins: o, destinations: d, distances: x}\nobserved_distance: 10\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, config.DefaultInitialBeta, cfg.Beta())
	require.Equal(t, balance.DefaultOptions(), cfg.BalanceOptions())
	ao := cfg.AnnealOptions()
	require.Equal(t, anneal.DefaultSteps, ao.Steps)
	require.Equal(t, anneal.DefaultFactor, ao.Factor)
	require.Equal(t, "outputs", cfg.Output.Dir)
	require.Empty(t, cfg.Output.SQLite)
}

func TestParse_ZeroBetaIsKept(t *testing.T) {
	cfg, err := config.Parse([]byte("initial_beta: 0\n"))
	require.NoError(t, err)
	require.Equal(t, 0.0, cfg.Beta())
}

func TestValidate(t *testing.T) {
	base := func() *config.Config {
		cfg, err := config.Parse([]byte(full))
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Inputs.Origins = ""
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)

	cfg = base()
	cfg.ObservedDistance = 0
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)

	cfg = base()
	cfg.Balance.Threshold = -1
	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalid)
	require.ErrorIs(t, err, balance.ErrBadOptions)

	cfg = base()
	cfg.Anneal.Factor = 2
	err = cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalid)
	require.ErrorIs(t, err, anneal.ErrBadOptions)
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(p, []byte(full), 0o644))

	cfg, err := config.Load(p)
	require.NoError(t, err)
	require.Equal(t, int64(9), cfg.Seed)

	_, err = config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Parse([]byte("seed: [not, a, number]\n"))
	require.Error(t, err)
}
