package main

import (
	"fmt"

	"github.com/lox/letitride/internal/config"
	"github.com/lox/letitride/internal/simulator"
)

// CheckCmd loads a configuration file and reports the settings a run would
// use, without playing any hands.
type CheckCmd struct {
	Config string `arg:"" help:"Configuration file to check" type:"existingfile"`
}

func (c *CheckCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	// Building the controller resolves strategy, betting system and
	// paytable overrides, so bad names fail here too.
	if _, err := simulator.New(cfg, nil, nil); err != nil {
		return err
	}

	fmt.Printf("%s is valid\n", c.Config)
	fmt.Printf("  sessions: %d, seats: %d, max hands: %d, workers: %d\n",
		cfg.Simulation.Sessions, cfg.Simulation.Seats, cfg.Simulation.MaxHands, cfg.Simulation.Workers)
	fmt.Printf("  bankroll: %v starting, base bet %v", cfg.Bankroll.Starting, cfg.Bankroll.BaseBet)
	if cfg.Bankroll.WinLimit > 0 {
		fmt.Printf(", win limit %v", cfg.Bankroll.WinLimit)
	}
	if cfg.Bankroll.LossLimit > 0 {
		fmt.Printf(", loss limit %v", cfg.Bankroll.LossLimit)
	}
	fmt.Printf("\n")
	fmt.Printf("  strategy: %s, betting: %s\n", cfg.Strategy.Type, cfg.Betting.Type)
	if amount := cfg.BonusAmount(); amount > 0 {
		fmt.Printf("  bonus bet: %v per hand\n", amount)
	}
	if cfg.Simulation.Seed != 0 {
		fmt.Printf("  seed: %d\n", cfg.Simulation.Seed)
	}
	return nil
}
