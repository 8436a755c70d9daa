// Package betting implements bet-sizing systems. A system sizes the next
// hand's base bet from the win/loss record of previous hands; the session
// places three of whatever the system returns, so progressions operate on
// the base unit rather than the total outlay.
package betting

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Outcome is the main-bet result of one hand as seen by a betting system.
type Outcome int

const (
	Loss Outcome = iota
	Win
	Push
)

// System sizes bets across a session. NextBet is a pure peek: it must not
// change state, so stop-condition checks can look at the upcoming bet
// without disturbing the progression. Reset returns the system to its
// start-of-session state.
type System interface {
	Name() string
	NextBet() float64
	Record(outcome Outcome)
	Reset()
}

// Options carries the sizing parameters shared by all systems.
type Options struct {
	BaseBet float64
	// MaxBet caps progressive systems; zero means uncapped.
	MaxBet float64
}

// Factory constructs a fresh system instance. A nil factory marks a type
// declared in the configuration schema but not yet implemented.
type Factory func(opts Options) System

var systems = map[string]Factory{
	"flat":       func(opts Options) System { return &Flat{opts: opts} },
	"martingale": func(opts Options) System { return &Martingale{opts: opts, bet: opts.BaseBet} },
	"dalembert":  func(opts Options) System { return &DAlembert{opts: opts, bet: opts.BaseBet} },
	"paroli":     func(opts Options) System { return &Paroli{opts: opts, bet: opts.BaseBet} },

	// Kelly sizing needs an edge estimate per hand; reserved until the
	// strategy layer can provide one.
	"kelly": nil,
}

// ErrUnknownSystem is returned when a betting system type is not in the
// registry at all, as opposed to known but unimplemented.
var ErrUnknownSystem = errors.New("unknown betting system")

// New builds a betting system by its registry name.
func New(name string, opts Options) (System, error) {
	factory, ok := systems[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownSystem, name, strings.Join(Available(), ", "))
	}
	if factory == nil {
		return nil, fmt.Errorf("betting system %q is not implemented: %w", name, errors.ErrUnsupported)
	}
	return factory(opts), nil
}

// Available returns the implemented system names, sorted.
func Available() []string {
	names := make([]string, 0, len(systems))
	for name, factory := range systems {
		if factory != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
