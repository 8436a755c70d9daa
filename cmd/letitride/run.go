package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/letitride/internal/config"
	"github.com/lox/letitride/internal/fileutil"
	"github.com/lox/letitride/internal/ruin"
	"github.com/lox/letitride/internal/simulator"
	"github.com/lox/letitride/internal/statistics"
)

// RunCmd runs a simulation and prints the report.
type RunCmd struct {
	Config   string `short:"c" help:"Configuration file (.hcl or .yaml); defaults apply when omitted" type:"path"`
	Sessions int    `help:"Override the number of sessions"`
	Seats    int    `help:"Override seats per table"`
	Seed     int64  `help:"Override the RNG seed (0 draws one from the clock)"`
	Workers  int    `help:"Override the worker count"`
	Output   string `short:"o" help:"Write results and reports to a JSON file" type:"path"`
	Quiet    bool   `short:"q" help:"Suppress the progress line"`
	Debug    bool   `help:"Enable debug logging"`
}

// runArtifact is the JSON document written with --output: the raw run plus
// the reports derived from it.
type runArtifact struct {
	*simulator.SimulationResults
	Statistics statistics.AggregateStatistics `json:"statistics"`
	Validation statistics.ValidationReport    `json:"validation"`
	RiskOfRuin *ruin.Report                   `json:"risk_of_ruin,omitempty"`
}

func (c *RunCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Sessions > 0 {
		cfg.Simulation.Sessions = c.Sessions
	}
	if c.Seats > 0 {
		cfg.Simulation.Seats = c.Seats
	}
	if c.Workers > 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.Seed != 0 {
		cfg.Simulation.Seed = c.Seed
	}
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = time.Now().UnixNano()
		logger.Info("no seed configured, drew one from the clock", "seed", cfg.Simulation.Seed)
	}

	ctrl, err := simulator.New(cfg, logger, nil)
	if err != nil {
		return err
	}
	if !c.Quiet {
		fmt.Printf("Running %d sessions: ", cfg.Simulation.Sessions)
		printer := &progressPrinter{}
		ctrl.Progress = printer.report
	}

	res, err := ctrl.Run()
	if err != nil {
		return err
	}

	stats := statistics.Aggregate(res.Results)
	validation, err := statistics.ValidateSimulation(stats, statistics.DefaultSignificanceLevel)
	if err != nil {
		return err
	}

	var ruinReport *ruin.Report
	report, err := ruin.Calculate(res.Results, ruin.Options{
		Seed:    cfg.Simulation.Seed,
		Workers: cfg.Simulation.Workers,
	})
	if err != nil {
		logger.Warn("skipping risk of ruin", "reason", err)
	} else {
		ruinReport = &report
	}

	simulator.PrintSummary(res, stats, validation, ruinReport)

	if c.Output != "" {
		artifact := runArtifact{
			SimulationResults: res,
			Statistics:        stats,
			Validation:        validation,
			RiskOfRuin:        ruinReport,
		}
		data, err := json.MarshalIndent(artifact, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		if err := fileutil.WriteFileAtomic(c.Output, data, 0o644); err != nil {
			return err
		}
		logger.Info("wrote results", "path", c.Output, "bytes", len(data))
	}
	return nil
}

func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: level})
}

const progressDots = 40

// progressPrinter draws a single line of dots as units of work complete.
// It is only ever called from the run's own goroutine.
type progressPrinter struct {
	dots int
}

func (p *progressPrinter) report(completed, total int) error {
	target := completed * progressDots / total
	for ; p.dots < target; p.dots++ {
		fmt.Print(".")
	}
	if completed == total {
		fmt.Println(" done")
	}
	return nil
}
