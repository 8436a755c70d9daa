// Package strategy implements the ride-or-pull decision rules for Let It
// Ride. A strategy sees the three hole cards for the first decision and the
// hole cards plus the first community card for the second; the third bet
// always plays.
package strategy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lox/letitride/internal/deck"
)

// Strategy decides whether to let each of the first two bets ride.
// Implementations must be deterministic: the same cards always produce the
// same decision, which is what keeps simulation runs reproducible.
type Strategy interface {
	Name() string

	// RideFirst decides the first bet from the three hole cards.
	RideFirst(hole []deck.Card) bool

	// RideSecond decides the second bet from the three hole cards plus the
	// first community card (four cards).
	RideSecond(cards []deck.Card) bool
}

// Factory constructs a fresh strategy instance. A nil factory marks a type
// that is declared in the configuration schema but not yet implemented.
type Factory func() Strategy

var strategies = map[string]Factory{
	"basic":       func() Strategy { return Basic{} },
	"always-ride": func() Strategy { return AlwaysRide{} },
	"never-ride":  func() Strategy { return NeverRide{} },

	// Composition-aware play (adjusting to cards seen at a multi-seat
	// table) is reserved in the schema but not built yet.
	"composition": nil,
}

// ErrUnknownStrategy is returned when a strategy type is not in the
// registry at all, as opposed to known but unimplemented.
var ErrUnknownStrategy = errors.New("unknown strategy")

// New builds a strategy by its registry name.
func New(name string) (Strategy, error) {
	factory, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownStrategy, name, strings.Join(Available(), ", "))
	}
	if factory == nil {
		return nil, fmt.Errorf("strategy %q is not implemented: %w", name, errors.ErrUnsupported)
	}
	return factory(), nil
}

// Available returns the implemented strategy names, sorted.
func Available() []string {
	names := make([]string, 0, len(strategies))
	for name, factory := range strategies {
		if factory != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
