// Command gravity calibrates a doubly-constrained gravity model against an
// observed total travel distance and exports the best-fit and final-run
// flow matrices.
//
// Usage:
//
//	gravity -config run.yaml
//	gravity -origins o.csv -destinations d.csv -distances dist.csv -observed 125000
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/gravity/anneal"
	"github.com/katalvlaran/gravity/calibrate"
	"github.com/katalvlaran/gravity/config"
	"github.com/katalvlaran/gravity/loader"
	"github.com/katalvlaran/gravity/results"
	"github.com/katalvlaran/gravity/results/csvsink"
	"github.com/katalvlaran/gravity/results/sqlitestore"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "gravity:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("gravity", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML run file")
	origins := fs.String("origins", "", "origin weights CSV (id,weight)")
	destinations := fs.String("destinations", "", "destination weights CSV (id,weight)")
	distances := fs.String("distances", "", "distance CSV (origin,destination,distance)")
	observed := fs.Float64("observed", 0, "observed total travel distance")
	seed := fs.Int64("seed", 0, "RNG seed (0 = fixed default)")
	outDir := fs.String("out", "", "output directory for CSV artifacts")
	dbPath := fs.String("db", "", "SQLite database for artifacts (optional)")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	overrideString(&cfg.Inputs.Origins, *origins)
	overrideString(&cfg.Inputs.Destinations, *destinations)
	overrideString(&cfg.Inputs.Distances, *distances)
	overrideString(&cfg.Output.Dir, *outDir)
	overrideString(&cfg.Output.SQLite, *dbPath)
	if *observed != 0 {
		cfg.ObservedDistance = *observed
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := loader.LoadFiles(cfg.Inputs.Origins, cfg.Inputs.Destinations, cfg.Inputs.Distances)
	if err != nil {
		return err
	}
	logger.Info("dataset loaded", "origins", ds.NumOrigins(), "destinations", ds.NumDestinations())

	copts := calibrate.DefaultOptions()
	copts.Balance = cfg.BalanceOptions()
	copts.Seed = cfg.Seed
	copts.Logger = logger.With("component", "calibrate")
	cal, err := calibrate.New(ds, []float64{cfg.Beta()}, cfg.ObservedDistance, copts)
	if err != nil {
		return err
	}
	if err := cal.Run(); err != nil {
		return fmt.Errorf("initial run: %w", err)
	}

	aopts := cfg.AnnealOptions()
	aopts.Logger = logger.With("component", "anneal")
	sum, err := anneal.Run(ctx, cal, cal, cal.Fitness(), aopts)
	if err != nil {
		logger.Warn("calibration interrupted", "err", err, "steps", sum.Steps)
	}
	logger.Info("calibration finished. saving outputs",
		"proposals", sum.Proposals, "accepted", sum.Accepted, "best_fitness", cal.BestFitness())

	arts, err := cal.Artifacts()
	if err != nil {
		return err
	}
	if len(arts) == 0 {
		logger.Warn("no artifacts recorded")
		return nil
	}

	runID := sqlitestore.NewRunID()
	sinks := []results.Sink{csvsink.New(cfg.Output.Dir)}
	if cfg.Output.SQLite != "" {
		store, err := sqlitestore.Open(cfg.Output.SQLite)
		if err != nil {
			return err
		}
		defer store.Close()
		sinks = append(sinks, store)
	}
	// outputs are written even when the run was interrupted
	saveCtx := context.WithoutCancel(ctx)
	for _, s := range sinks {
		if err := s.Save(saveCtx, runID, arts); err != nil {
			return err
		}
	}
	logger.Info("done", "run_id", runID, "dir", cfg.Output.Dir)
	return nil
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
