// Package simulator runs batches of Let It Ride sessions and collects
// their results. It owns the execution plan for a run: how many sessions,
// how many seats per table, sequential or parallel, and how per-session
// seeds are derived from the configured base seed.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/letitride/internal/betting"
	"github.com/lox/letitride/internal/config"
	"github.com/lox/letitride/internal/game"
	"github.com/lox/letitride/internal/randutil"
	"github.com/lox/letitride/internal/runid"
	"github.com/lox/letitride/internal/session"
	"github.com/lox/letitride/internal/strategy"
)

// ProgressFunc is called after each unit of work finishes. A unit is one
// session, or one table session when seats > 1. Completed counts are
// strictly increasing; in parallel runs they arrive in completion order
// rather than unit order. Returning an error aborts the run.
type ProgressFunc func(completed, total int) error

// HandObserver receives every settled hand during a run. unit is the
// 1-based session or table-session index, seat is the 1-based seat number
// (always 1 in single-seat runs) and handNumber counts the seat's hands
// from 1. Returning an error aborts the run. Observers need workers = 1 so
// hands arrive in one deterministic order.
type HandObserver func(unit, seat, handNumber int, result game.HandResult) error

// SimulationResults is the complete output of a run: every session result
// plus identity, configuration and timing for the run itself. It is the
// shape written to the JSON artifact.
type SimulationResults struct {
	RunID           string                  `json:"run_id"`
	Config          *config.Config          `json:"config"`
	Results         []session.SessionResult `json:"results"`
	StartTime       time.Time               `json:"start_time"`
	DurationSeconds float64                 `json:"duration_seconds"`
	TotalHands      int                     `json:"total_hands"`
	HandsPerSecond  float64                 `json:"hands_per_second"`
	Workers         int                     `json:"workers"`
}

// Controller runs a configured simulation. Construct it with New, then
// optionally attach Progress and Observer before calling Run.
type Controller struct {
	// Progress, when set, is invoked as units of work complete.
	Progress ProgressFunc

	// Observer, when set, is invoked after every settled hand. Run
	// refuses to start with an observer attached when workers > 1.
	Observer HandObserver

	cfg        *config.Config
	logger     *log.Logger
	clock      quartz.Clock
	sessionCfg session.Config
	units      int
	seats      int
	workers    int
	seed       int64
}

// New validates the configuration and builds a controller for it. The
// strategy and betting types are resolved here so that unknown or
// unimplemented names fail at construction rather than mid-run. A nil
// logger discards log output; a nil clock uses the real one.
func New(cfg *config.Config, logger *log.Logger, clock quartz.Clock) (*Controller, error) {
	if cfg == nil || cfg.Simulation == nil || cfg.Bankroll == nil {
		return nil, errors.New("config must come from config.Load or config.Default")
	}
	if cfg.Strategy == nil {
		return nil, errors.New("config has no strategy section")
	}
	if cfg.Betting == nil {
		return nil, errors.New("config has no betting section")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := strategy.New(cfg.Strategy.Type); err != nil {
		return nil, err
	}
	if _, err := betting.New(cfg.Betting.Type, bettingOptions(cfg)); err != nil {
		return nil, err
	}
	sessionCfg, err := sessionConfig(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Controller{
		cfg:        cfg,
		logger:     logger,
		clock:      clock,
		sessionCfg: sessionCfg,
		units:      cfg.Simulation.Sessions,
		seats:      cfg.Simulation.Seats,
		workers:    min(cfg.Simulation.Workers, cfg.Simulation.Sessions),
		seed:       cfg.Simulation.Seed,
	}, nil
}

func bettingOptions(cfg *config.Config) betting.Options {
	return betting.Options{
		BaseBet: cfg.Bankroll.BaseBet,
		MaxBet:  cfg.Betting.MaxBet,
	}
}

// sessionConfig translates the run configuration into the per-seat session
// parameters, applying any paytable overrides.
func sessionConfig(cfg *config.Config) (session.Config, error) {
	paytable := game.DefaultPaytable()
	if cfg.Game != nil && len(cfg.Game.Paytable) > 0 {
		var err error
		paytable, err = paytable.WithOverrides(cfg.Game.Paytable)
		if err != nil {
			return session.Config{}, fmt.Errorf("game paytable: %w", err)
		}
	}
	bonus := game.DefaultBonusPaytable()
	if cfg.Bonus != nil && len(cfg.Bonus.Paytable) > 0 {
		var err error
		bonus, err = bonus.WithOverrides(cfg.Bonus.Paytable)
		if err != nil {
			return session.Config{}, fmt.Errorf("bonus paytable: %w", err)
		}
	}
	return session.Config{
		StartingBankroll: cfg.Bankroll.Starting,
		MaxHands:         cfg.Simulation.MaxHands,
		WinLimit:         cfg.Bankroll.WinLimit,
		LossLimit:        cfg.Bankroll.LossLimit,
		TrackHistory:     cfg.Bankroll.TrackHistory,
		BonusBet:         cfg.BonusAmount(),
		Paytable:         paytable,
		BonusPaytable:    bonus,
	}, nil
}

// Run executes the simulation and returns its results. With the same
// configuration and seed the results are identical hand for hand whether
// the run is sequential or parallel.
func (c *Controller) Run() (*SimulationResults, error) {
	if c.Observer != nil && c.workers > 1 {
		return nil, errors.New("hand observers need sequential execution, set workers to 1")
	}

	id := runid.New()
	start := c.clock.Now()
	c.logger.Info("starting simulation",
		"run_id", id,
		"sessions", c.units,
		"seats", c.seats,
		"workers", c.workers,
		"strategy", c.cfg.Strategy.Type,
		"betting", c.cfg.Betting.Type,
		"seed", c.seed)

	var results []session.SessionResult
	var err error
	if c.workers > 1 {
		results, err = c.runParallel()
	} else {
		results, err = c.runSequential()
	}
	if err != nil {
		return nil, err
	}

	elapsed := c.clock.Since(start)
	totalHands := 0
	for i := range results {
		totalHands += results[i].HandsPlayed
	}
	handsPerSec := 0.0
	if elapsed > 0 {
		handsPerSec = float64(totalHands) / elapsed.Seconds()
	}
	c.logger.Info("simulation complete",
		"hands", totalHands,
		"duration", elapsed,
		"hands_per_sec", handsPerSec)

	return &SimulationResults{
		RunID:           id,
		Config:          c.cfg,
		Results:         results,
		StartTime:       start,
		DurationSeconds: elapsed.Seconds(),
		TotalHands:      totalHands,
		HandsPerSecond:  handsPerSec,
		Workers:         c.workers,
	}, nil
}

// newSeat builds a fresh strategy and betting progression. Each seat gets
// its own instances because progressions carry state between hands.
func (c *Controller) newSeat() (session.Seat, error) {
	strat, err := strategy.New(c.cfg.Strategy.Type)
	if err != nil {
		return session.Seat{}, err
	}
	system, err := betting.New(c.cfg.Betting.Type, bettingOptions(c.cfg))
	if err != nil {
		return session.Seat{}, err
	}
	return session.Seat{Strategy: strat, System: system}, nil
}

// runUnit plays the i-th unit of work: one session in single-seat runs,
// one table session otherwise. The unit derives its generator from the
// base seed and the unit index alone, so its results never depend on which
// worker ran it or in what order.
func (c *Controller) runUnit(i int) ([]session.SessionResult, error) {
	rng := randutil.New(randutil.DeriveSeed(c.seed, int64(i)))

	if c.seats == 1 {
		st, err := c.newSeat()
		if err != nil {
			return nil, err
		}
		s, err := session.New(c.sessionCfg, st.Strategy, st.System, rng)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i+1, err)
		}
		if c.Observer != nil {
			s.Observer = func(handNumber int, result game.HandResult) error {
				return c.Observer(i+1, 1, handNumber, result)
			}
		}
		res, err := s.Run()
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i+1, err)
		}
		return []session.SessionResult{res}, nil
	}

	seats := make([]session.Seat, c.seats)
	for j := range seats {
		st, err := c.newSeat()
		if err != nil {
			return nil, err
		}
		seats[j] = st
	}
	table, err := session.NewTable(c.sessionCfg, seats, rng)
	if err != nil {
		return nil, fmt.Errorf("table session %d: %w", i+1, err)
	}
	if c.Observer != nil {
		table.Observer = func(seatNumber, roundNumber int, result game.HandResult) error {
			return c.Observer(i+1, seatNumber, roundNumber, result)
		}
	}
	results, err := table.Run()
	if err != nil {
		return nil, fmt.Errorf("table session %d: %w", i+1, err)
	}
	for j := range results {
		results[j] = results[j].WithSeatInfo(j+1, int64(i)+1)
	}
	return results, nil
}

func (c *Controller) runSequential() ([]session.SessionResult, error) {
	results := make([]session.SessionResult, 0, c.units*c.seats)
	for i := 0; i < c.units; i++ {
		unit, err := c.runUnit(i)
		if err != nil {
			return nil, err
		}
		results = append(results, unit...)
		if c.Progress != nil {
			if err := c.Progress(i+1, c.units); err != nil {
				return nil, fmt.Errorf("progress callback: %w", err)
			}
		}
	}
	return results, nil
}

// runParallel distributes units over workers by striding the unit index,
// so every worker's units are fixed up front. Results land in a per-unit
// slot and are flattened in unit order afterwards, which makes parallel
// output identical to a sequential run with the same seed.
func (c *Controller) runParallel() ([]session.SessionResult, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	units := make([][]session.SessionResult, c.units)
	completions := make(chan struct{}, c.units)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < c.workers; w++ {
		g.Go(func() error {
			for i := w; i < c.units; i += c.workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				unit, err := c.runUnit(i)
				if err != nil {
					return err
				}
				units[i] = unit
				completions <- struct{}{}
			}
			return nil
		})
	}
	go func() {
		// The run's error surfaces from the Wait below; this one only
		// gates the close.
		_ = g.Wait()
		close(completions)
	}()

	var progressErr error
	completed := 0
	for range completions {
		completed++
		if c.Progress != nil && progressErr == nil {
			if err := c.Progress(completed, c.units); err != nil {
				progressErr = fmt.Errorf("progress callback: %w", err)
				cancel()
			}
		}
	}
	if progressErr != nil {
		return nil, progressErr
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]session.SessionResult, 0, c.units*c.seats)
	for _, unit := range units {
		results = append(results, unit...)
	}
	return results, nil
}
