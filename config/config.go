// Package config loads the YAML run file of the gravity CLI.
//
// Example:
//
//	inputs:
//	  origins: data/origins.csv
//	  destinations: data/destinations.csv
//	  distances: data/distances.csv
//	observed_distance: 125000
//	initial_beta: -0.01
//	seed: 42
//	balance:
//	  max_iterations: 5000
//	  threshold: 1.0
//	anneal:
//	  steps: 100
//	  attempts: 100
//	  successes: 10
//	  factor: 0.9
//	  initial_temperature: 1.0
//	output:
//	  dir: outputs
//	  sqlite: runs.db
//
// Missing values are filled from Default().
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gravity/anneal"
	"github.com/katalvlaran/gravity/balance"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid configuration")

// DefaultInitialBeta is the starting decay parameter of a run.
const DefaultInitialBeta = -0.01

// Inputs names the three input tables.
type Inputs struct {
	Origins      string `yaml:"origins"`
	Destinations string `yaml:"destinations"`
	Distances    string `yaml:"distances"`
}

// Balance mirrors balance.Options.
type Balance struct {
	MaxIterations int     `yaml:"max_iterations"`
	Threshold     float64 `yaml:"threshold"`
}

// Anneal mirrors the schedule fields of anneal.Options.
type Anneal struct {
	Steps              int     `yaml:"steps"`
	Attempts           int     `yaml:"attempts"`
	Successes          int     `yaml:"successes"`
	Factor             float64 `yaml:"factor"`
	InitialTemperature float64 `yaml:"initial_temperature"`
}

// Output selects where artifacts go. An empty SQLite path disables the store.
type Output struct {
	Dir    string `yaml:"dir"`
	SQLite string `yaml:"sqlite"`
}

// Config is a complete run description.
type Config struct {
	Inputs           Inputs   `yaml:"inputs"`
	ObservedDistance float64  `yaml:"observed_distance"`
	InitialBeta      *float64 `yaml:"initial_beta"`
	Seed             int64    `yaml:"seed"`
	Balance          Balance  `yaml:"balance"`
	Anneal           Anneal   `yaml:"anneal"`
	Output           Output   `yaml:"output"`
}

// Default returns a configuration with every optional value set.
func Default() *Config {
	beta := DefaultInitialBeta
	ao := anneal.DefaultOptions()
	return &Config{
		InitialBeta: &beta,
		Balance: Balance{
			MaxIterations: balance.DefaultMaxIterations,
			Threshold:     balance.DefaultThreshold,
		},
		Anneal: Anneal{
			Steps:              ao.Steps,
			Attempts:           ao.Attempts,
			Successes:          ao.Successes,
			Factor:             ao.Factor,
			InitialTemperature: ao.InitialTemperature,
		},
		Output: Output{Dir: "outputs"},
	}
}

// Load reads path and applies defaults. It does not validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.InitialBeta == nil {
		c.InitialBeta = d.InitialBeta
	}
	if c.Balance.MaxIterations == 0 {
		c.Balance.MaxIterations = d.Balance.MaxIterations
	}
	if c.Balance.Threshold == 0 {
		c.Balance.Threshold = d.Balance.Threshold
	}
	if c.Anneal.Steps == 0 {
		c.Anneal.Steps = d.Anneal.Steps
	}
	if c.Anneal.Attempts == 0 {
		c.Anneal.Attempts = d.Anneal.Attempts
	}
	if c.Anneal.Successes == 0 {
		c.Anneal.Successes = d.Anneal.Successes
	}
	if c.Anneal.Factor == 0 {
		c.Anneal.Factor = d.Anneal.Factor
	}
	if c.Anneal.InitialTemperature == 0 {
		c.Anneal.InitialTemperature = d.Anneal.InitialTemperature
	}
	if c.Output.Dir == "" {
		c.Output.Dir = d.Output.Dir
	}
}

// Beta returns the initial decay parameter.
func (c *Config) Beta() float64 {
	if c.InitialBeta == nil {
		return DefaultInitialBeta
	}
	return *c.InitialBeta
}

// BalanceOptions converts the balance section.
func (c *Config) BalanceOptions() balance.Options {
	return balance.Options{MaxIterations: c.Balance.MaxIterations, Threshold: c.Balance.Threshold}
}

// AnnealOptions converts the anneal section. Seed is shared with the calibrator.
func (c *Config) AnnealOptions() anneal.Options {
	return anneal.Options{
		Steps:              c.Anneal.Steps,
		Attempts:           c.Anneal.Attempts,
		Successes:          c.Anneal.Successes,
		Factor:             c.Anneal.Factor,
		InitialTemperature: c.Anneal.InitialTemperature,
		Seed:               c.Seed,
	}
}

// Validate checks required fields and option ranges.
func (c *Config) Validate() error {
	if c.Inputs.Origins == "" || c.Inputs.Destinations == "" || c.Inputs.Distances == "" {
		return fmt.Errorf("inputs: origins, destinations and distances are required: %w", ErrInvalid)
	}
	if !(c.ObservedDistance > 0) || math.IsInf(c.ObservedDistance, 0) {
		return fmt.Errorf("observed_distance=%g: %w", c.ObservedDistance, ErrInvalid)
	}
	if b := c.Beta(); math.IsNaN(b) || math.IsInf(b, 0) {
		return fmt.Errorf("initial_beta=%g: %w", b, ErrInvalid)
	}
	if err := c.BalanceOptions().Validate(); err != nil {
		return fmt.Errorf("balance: %w: %w", ErrInvalid, err)
	}
	if err := c.AnnealOptions().Validate(); err != nil {
		return fmt.Errorf("anneal: %w: %w", ErrInvalid, err)
	}
	return nil
}
