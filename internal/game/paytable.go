// Package game holds the Let It Ride table rules: paytables and the
// settlement of main and bonus bets for a single hand.
package game

import (
	"fmt"

	"github.com/lox/letitride/internal/evaluator"
)

// Paytable maps five-card hand categories to payout multipliers. A zero
// multiplier means the hand loses; paying hands return the riding bets plus
// the multiplier times each riding bet.
type Paytable [evaluator.NumCategories]float64

// DefaultPaytable returns the most common US paytable, paying 1:1 on a pair
// of tens or better up to 1000:1 on a royal flush.
func DefaultPaytable() Paytable {
	var pt Paytable
	pt[evaluator.TensOrBetter] = 1
	pt[evaluator.TwoPair] = 2
	pt[evaluator.ThreeOfAKind] = 3
	pt[evaluator.Straight] = 5
	pt[evaluator.Flush] = 8
	pt[evaluator.FullHouse] = 11
	pt[evaluator.FourOfAKind] = 50
	pt[evaluator.StraightFlush] = 200
	pt[evaluator.RoyalFlush] = 1000
	return pt
}

// WithOverrides returns a copy of the paytable with the named category
// multipliers replaced. Unknown category names and negative multipliers are
// rejected.
func (p Paytable) WithOverrides(overrides map[string]float64) (Paytable, error) {
	for name, mult := range overrides {
		cat, err := evaluator.ParseCategory(name)
		if err != nil {
			return p, fmt.Errorf("paytable override: %w", err)
		}
		if mult < 0 {
			return p, fmt.Errorf("paytable override %q: multiplier must not be negative, got %v", name, mult)
		}
		p[cat] = mult
	}
	return p, nil
}

// Payout returns the multiplier for a category.
func (p Paytable) Payout(c evaluator.Category) float64 {
	return p[c]
}

// BonusPaytable maps three-card bonus categories to payout multipliers for
// the optional side bet.
type BonusPaytable [evaluator.NumBonusCategories]float64

// DefaultBonusPaytable returns a common three-card bonus schedule.
func DefaultBonusPaytable() BonusPaytable {
	var pt BonusPaytable
	pt[evaluator.BonusPair] = 1
	pt[evaluator.BonusFlush] = 3
	pt[evaluator.BonusStraight] = 6
	pt[evaluator.BonusThreeOfAKind] = 30
	pt[evaluator.BonusStraightFlush] = 40
	pt[evaluator.BonusMiniRoyal] = 50
	return pt
}

// WithOverrides returns a copy of the bonus paytable with the named category
// multipliers replaced.
func (p BonusPaytable) WithOverrides(overrides map[string]float64) (BonusPaytable, error) {
	for name, mult := range overrides {
		cat, err := evaluator.ParseBonusCategory(name)
		if err != nil {
			return p, fmt.Errorf("bonus paytable override: %w", err)
		}
		if mult < 0 {
			return p, fmt.Errorf("bonus paytable override %q: multiplier must not be negative, got %v", name, mult)
		}
		p[cat] = mult
	}
	return p, nil
}

// Payout returns the multiplier for a bonus category.
func (p BonusPaytable) Payout(c evaluator.BonusCategory) float64 {
	return p[c]
}
