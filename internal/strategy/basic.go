package strategy

import "github.com/lox/letitride/internal/deck"

// Basic plays the standard Let It Ride basic strategy chart.
//
// First bet, ride with:
//   - a made paying hand (pair of tens or better, or three of a kind)
//   - three to a royal flush (three suited cards, all ten or higher)
//   - three suited cards in a row, except 2-3-4 and A-2-3
//   - three to a straight flush spread four with at least one high card
//   - three to a straight flush spread five with at least two high cards
//
// Second bet, ride with:
//   - a made paying hand
//   - four cards of one suit
//   - four distinct cards in a row (A-2-3-4 does not qualify)
//   - four to an inside straight when all four cards are high
//
// A high card is a ten or better.
type Basic struct{}

// Name returns the registry name.
func (Basic) Name() string { return "basic" }

// RideFirst applies the three-card chart.
func (Basic) RideFirst(hole []deck.Card) bool {
	if madePayingHand(hole) {
		return true
	}
	if !sameSuit(hole) {
		return false
	}

	highs := countHighCards(hole)
	if highs == 3 {
		return true // three to a royal
	}

	lo, hi, distinct := rankSpan(hole)
	if distinct != 3 {
		return false
	}
	switch hi - lo {
	case 2:
		return lo >= int(deck.Three) // excludes 2-3-4; A-2-3 never reads as consecutive
	case 3:
		return highs >= 1
	case 4:
		return highs >= 2
	}
	return false
}

// RideSecond applies the four-card chart.
func (Basic) RideSecond(cards []deck.Card) bool {
	if madePayingHand(cards) {
		return true
	}
	if sameSuit(cards) {
		return true
	}

	lo, hi, distinct := rankSpan(cards)
	if distinct != 4 {
		return false
	}
	if hi-lo == 3 {
		// Four in a row. J-Q-K-A lands here too; it spans three ranks even
		// though only a ten completes it.
		return true
	}
	return hi-lo == 4 && countHighCards(cards) == 4
}

// AlwaysRide never pulls a bet. Useful as a variance ceiling and for
// exercising the full payout range in tests.
type AlwaysRide struct{}

func (AlwaysRide) Name() string { return "always-ride" }

func (AlwaysRide) RideFirst([]deck.Card) bool { return true }

func (AlwaysRide) RideSecond([]deck.Card) bool { return true }

// NeverRide pulls both bets every hand, the minimum-exposure baseline.
type NeverRide struct{}

func (NeverRide) Name() string { return "never-ride" }

func (NeverRide) RideFirst([]deck.Card) bool { return false }

func (NeverRide) RideSecond([]deck.Card) bool { return false }

// madePayingHand reports whether the cards already hold a paying
// combination: a pair of tens or better, two pair, trips or quads.
func madePayingHand(cards []deck.Card) bool {
	var counts [15]int
	pairs := 0
	for _, c := range cards {
		counts[c.Rank]++
	}
	for rank := deck.Two; rank <= deck.Ace; rank++ {
		switch {
		case counts[rank] >= 3:
			return true
		case counts[rank] == 2:
			if rank >= deck.Ten {
				return true
			}
			pairs++
		}
	}
	return pairs >= 2
}

func sameSuit(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

func countHighCards(cards []deck.Card) int {
	n := 0
	for _, c := range cards {
		if c.Rank >= deck.Ten {
			n++
		}
	}
	return n
}

// rankSpan returns the lowest rank, highest rank and number of distinct
// ranks. Aces count high here; the ace-low runs the charts exclude never
// qualify as consecutive.
func rankSpan(cards []deck.Card) (lo, hi, distinct int) {
	var seen [15]bool
	lo, hi = int(deck.Ace), int(deck.Two)
	for _, c := range cards {
		r := int(c.Rank)
		if !seen[r] {
			seen[r] = true
			distinct++
		}
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	return lo, hi, distinct
}
