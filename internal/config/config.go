// Package config loads and validates simulation configuration from HCL or
// YAML files. The decoded Config is read-only input to the simulator; the
// core never mutates or re-validates it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/lox/letitride/internal/session"
)

// Config is the complete simulation configuration. Strategy, Betting, Bonus
// and Game sections stay nil when a loaded file omits them; the controller
// treats a missing strategy or betting section as a construction error,
// which keeps "section absent" distinguishable from "type unknown".
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block" yaml:"simulation" json:"simulation"`
	Bankroll   *BankrollSettings   `hcl:"bankroll,block" yaml:"bankroll" json:"bankroll"`
	Strategy   *StrategySettings   `hcl:"strategy,block" yaml:"strategy" json:"strategy,omitempty"`
	Betting    *BettingSettings    `hcl:"betting,block" yaml:"betting" json:"betting,omitempty"`
	Bonus      *BonusSettings      `hcl:"bonus,block" yaml:"bonus" json:"bonus,omitempty"`
	Game       *GameSettings       `hcl:"game,block" yaml:"game" json:"game,omitempty"`
}

// SimulationSettings controls how many sessions run and how.
type SimulationSettings struct {
	Sessions int   `hcl:"sessions,optional" yaml:"sessions" json:"sessions"`
	Seats    int   `hcl:"seats,optional" yaml:"seats" json:"seats"`
	MaxHands int   `hcl:"max_hands,optional" yaml:"max_hands" json:"max_hands"`
	Seed     int64 `hcl:"seed,optional" yaml:"seed" json:"seed"`
	Workers  int   `hcl:"workers,optional" yaml:"workers" json:"workers"`
}

// BankrollSettings controls per-seat money and stop limits. Zero win or
// loss limits disable that limit.
type BankrollSettings struct {
	Starting     float64 `hcl:"starting,optional" yaml:"starting" json:"starting"`
	BaseBet      float64 `hcl:"base_bet,optional" yaml:"base_bet" json:"base_bet"`
	WinLimit     float64 `hcl:"win_limit,optional" yaml:"win_limit" json:"win_limit"`
	LossLimit    float64 `hcl:"loss_limit,optional" yaml:"loss_limit" json:"loss_limit"`
	TrackHistory bool    `hcl:"track_history,optional" yaml:"track_history" json:"track_history"`
}

// StrategySettings selects the ride/pull strategy.
type StrategySettings struct {
	Type string `hcl:"type,optional" yaml:"type" json:"type"`
}

// BettingSettings selects the bet-sizing system. MaxBet caps progression
// systems; zero means uncapped.
type BettingSettings struct {
	Type   string  `hcl:"type,optional" yaml:"type" json:"type"`
	MaxBet float64 `hcl:"max_bet,optional" yaml:"max_bet" json:"max_bet"`
}

// BonusSettings controls the three-card side bet.
type BonusSettings struct {
	Enabled  bool               `hcl:"enabled,optional" yaml:"enabled" json:"enabled"`
	Amount   float64            `hcl:"amount,optional" yaml:"amount" json:"amount"`
	Paytable map[string]float64 `hcl:"paytable,optional" yaml:"paytable" json:"paytable,omitempty"`
}

// GameSettings overrides table rules.
type GameSettings struct {
	Paytable map[string]float64 `hcl:"paytable,optional" yaml:"paytable" json:"paytable,omitempty"`
}

// Default returns the configuration used when no file is given: a thousand
// single-seat sessions of basic strategy and flat betting.
func Default() *Config {
	return &Config{
		Simulation: &SimulationSettings{
			Sessions: 1000,
			Seats:    1,
			MaxHands: 100,
			Workers:  1,
		},
		Bankroll: &BankrollSettings{
			Starting: 500,
			BaseBet:  5,
		},
		Strategy: &StrategySettings{Type: "basic"},
		Betting:  &BettingSettings{Type: "flat"},
	}
}

// Load reads configuration from an HCL or YAML file, chosen by extension,
// and applies defaults for unset fields. A missing file yields Default().
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}
		if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config extension %q (want .hcl, .yaml or .yml)", ext)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills unset scalar fields. Missing strategy and betting
// sections are deliberately left nil.
func applyDefaults(c *Config) {
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Simulation.Sessions == 0 {
		c.Simulation.Sessions = 1000
	}
	if c.Simulation.Seats == 0 {
		c.Simulation.Seats = 1
	}
	if c.Simulation.MaxHands == 0 {
		c.Simulation.MaxHands = 100
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = 1
	}

	if c.Bankroll == nil {
		c.Bankroll = &BankrollSettings{}
	}
	if c.Bankroll.Starting == 0 {
		c.Bankroll.Starting = 500
	}
	if c.Bankroll.BaseBet == 0 {
		c.Bankroll.BaseBet = 5
	}

	if c.Strategy != nil && c.Strategy.Type == "" {
		c.Strategy.Type = "basic"
	}
	if c.Betting != nil && c.Betting.Type == "" {
		c.Betting.Type = "flat"
	}
	if c.Bonus != nil && c.Bonus.Enabled && c.Bonus.Amount == 0 {
		c.Bonus.Amount = 1
	}
}

// BonusAmount returns the side-bet amount, zero when the bonus is disabled.
func (c *Config) BonusAmount() float64 {
	if c.Bonus == nil || !c.Bonus.Enabled {
		return 0
	}
	return c.Bonus.Amount
}

// Validate checks numeric ranges and that the bankroll can cover at least
// one hand. It does not check for missing strategy or betting sections;
// those are construction-time errors with their own taxonomy.
func (c *Config) Validate() error {
	if c.Simulation.Sessions < 1 {
		return fmt.Errorf("sessions must be at least 1, got %d", c.Simulation.Sessions)
	}
	if c.Simulation.Seats < 1 || c.Simulation.Seats > session.MaxSeats {
		return fmt.Errorf("seats must be between 1 and %d, got %d", session.MaxSeats, c.Simulation.Seats)
	}
	if c.Simulation.MaxHands < 1 {
		return fmt.Errorf("max_hands must be at least 1, got %d", c.Simulation.MaxHands)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Simulation.Workers)
	}

	if c.Bankroll.Starting < 0 {
		return fmt.Errorf("starting bankroll must not be negative, got %v", c.Bankroll.Starting)
	}
	if c.Bankroll.BaseBet <= 0 {
		return fmt.Errorf("base_bet must be positive, got %v", c.Bankroll.BaseBet)
	}
	if c.Bankroll.WinLimit < 0 {
		return fmt.Errorf("win_limit must not be negative, got %v", c.Bankroll.WinLimit)
	}
	if c.Bankroll.LossLimit < 0 {
		return fmt.Errorf("loss_limit must not be negative, got %v", c.Bankroll.LossLimit)
	}

	if c.Betting != nil && c.Betting.MaxBet < 0 {
		return fmt.Errorf("max_bet must not be negative, got %v", c.Betting.MaxBet)
	}
	if c.Betting != nil && c.Betting.MaxBet > 0 && c.Betting.MaxBet < c.Bankroll.BaseBet {
		return fmt.Errorf("max_bet %v is below base_bet %v", c.Betting.MaxBet, c.Bankroll.BaseBet)
	}

	if c.Bonus != nil && c.Bonus.Amount < 0 {
		return fmt.Errorf("bonus amount must not be negative, got %v", c.Bonus.Amount)
	}

	required := 3*c.Bankroll.BaseBet + c.BonusAmount()
	if c.Bankroll.Starting < required {
		return fmt.Errorf("starting bankroll %v cannot cover one hand: three base bets plus bonus need %v",
			c.Bankroll.Starting, required)
	}
	return nil
}
