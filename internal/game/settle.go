package game

import (
	"github.com/lox/letitride/internal/deck"
	"github.com/lox/letitride/internal/evaluator"
)

// HandResult is the settled outcome of one Let It Ride hand for one seat.
type HandResult struct {
	Category      evaluator.Category
	BonusCategory evaluator.BonusCategory
	RodeFirst     bool
	RodeSecond    bool
	BetsRiding    int
	MainNet       float64
	BonusNet      float64
	Net           float64
	Wagered       float64
	BonusWagered  float64
}

// Settle resolves the main and bonus bets for a hand. The player places
// three equal bets; the first two may be pulled back on the ride decisions,
// the third always plays. Pulled bets are returned without loss. If the
// final five-card hand pays, every riding bet pays the paytable multiplier;
// otherwise every riding bet is lost.
//
// Wagered is always three times the bet. Pulled bets count as wagered even
// though they cannot be lost; downstream reporting relies on this definition
// when inferring the base bet from totals.
func Settle(hole, community []deck.Card, rideFirst, rideSecond bool, bet, bonusBet float64, pt Paytable, bpt BonusPaytable) HandResult {
	var final [5]deck.Card
	copy(final[:3], hole)
	copy(final[3:], community)

	riding := 1
	if rideFirst {
		riding++
	}
	if rideSecond {
		riding++
	}

	res := HandResult{
		Category:   evaluator.Evaluate5(final[:]),
		RodeFirst:  rideFirst,
		RodeSecond: rideSecond,
		BetsRiding: riding,
		Wagered:    3 * bet,
	}

	if mult := pt.Payout(res.Category); mult > 0 {
		res.MainNet = float64(riding) * bet * mult
	} else {
		res.MainNet = -float64(riding) * bet
	}

	// The bonus bet rides on the three hole cards alone and settles
	// independently of the ride decisions.
	if bonusBet > 0 {
		res.BonusCategory = evaluator.Evaluate3(hole)
		res.BonusWagered = bonusBet
		if mult := bpt.Payout(res.BonusCategory); mult > 0 {
			res.BonusNet = bonusBet * mult
		} else {
			res.BonusNet = -bonusBet
		}
	}

	res.Net = res.MainNet + res.BonusNet
	return res
}
