// Package evaluator classifies Let It Ride hands.
//
// The main game pays on the final five-card hand (three hole cards plus two
// community cards); the three-card bonus bet pays on the hole cards alone.
// Classification works on rank bitmasks, one 13-bit mask per suit, so a hand
// is categorized with a handful of mask operations and no sorting.
package evaluator

import (
	"fmt"
	"math/bits"

	"github.com/lox/letitride/internal/deck"
)

// Category is the payout category of a five-card hand. Let It Ride splits
// one pair into a paying band (tens or better) and a losing band (2s-9s),
// and distinguishes a royal flush from other straight flushes.
type Category uint8

const (
	HighCard Category = iota
	LowPair
	TensOrBetter
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush

	NumCategories int = iota
)

// String returns the canonical name used in paytables, hand-frequency maps
// and JSON output.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "high_card"
	case LowPair:
		return "low_pair"
	case TensOrBetter:
		return "tens_or_better"
	case TwoPair:
		return "two_pair"
	case ThreeOfAKind:
		return "three_of_a_kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	case RoyalFlush:
		return "royal_flush"
	default:
		return "unknown"
	}
}

// ParseCategory maps a canonical category name back to its Category.
func ParseCategory(s string) (Category, error) {
	for c := HighCard; int(c) < NumCategories; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown hand category %q", s)
}

// BonusCategory is the payout category of the three-card bonus hand.
// Three-card poker rules apply: a straight outranks a flush, and a suited
// Q-K-A is a mini royal.
type BonusCategory uint8

const (
	BonusNothing BonusCategory = iota
	BonusPair
	BonusFlush
	BonusStraight
	BonusThreeOfAKind
	BonusStraightFlush
	BonusMiniRoyal

	NumBonusCategories int = iota
)

// String returns the canonical name of the bonus category.
func (c BonusCategory) String() string {
	switch c {
	case BonusNothing:
		return "nothing"
	case BonusPair:
		return "pair"
	case BonusFlush:
		return "flush"
	case BonusStraight:
		return "straight"
	case BonusThreeOfAKind:
		return "three_of_a_kind"
	case BonusStraightFlush:
		return "straight_flush"
	case BonusMiniRoyal:
		return "mini_royal"
	default:
		return "unknown"
	}
}

// ParseBonusCategory maps a canonical bonus category name back to its
// BonusCategory.
func ParseBonusCategory(s string) (BonusCategory, error) {
	for c := BonusNothing; int(c) < NumBonusCategories; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown bonus category %q", s)
}

// Rank mask constants. Bit position is rank-2, so bit 0 is a deuce and
// bit 12 an ace.
const (
	royalMask  = uint16(0x1F00) // T J Q K A
	wheelMask  = uint16(0x100F) // A 2 3 4 5
	broadway3  = uint16(0x1C00) // Q K A
	wheel3Mask = uint16(0x1003) // A 2 3
	tenBit     = 8              // bit index of a ten
)

// Evaluate5 classifies a five-card hand. The caller must pass exactly five
// distinct cards.
func Evaluate5(cards []deck.Card) Category {
	if len(cards) != 5 {
		panic(fmt.Sprintf("evaluator: Evaluate5 called with %d cards", len(cards)))
	}

	var suits [4]uint16
	var rankCounts [13]uint8
	for _, c := range cards {
		suits[c.Suit] |= 1 << (int(c.Rank) - 2)
		rankCounts[int(c.Rank)-2]++
	}
	ranks := suits[0] | suits[1] | suits[2] | suits[3]

	flush := false
	for _, sm := range suits {
		if bits.OnesCount16(sm) == 5 {
			flush = true
			break
		}
	}

	// With five cards of one suit the rank mask equals that suit's mask,
	// so straight-in-flush needs no separate check.
	straightMask := straightMask5(ranks)
	straight := straightMask != 0

	if flush && straight {
		if straightMask == royalMask {
			return RoyalFlush
		}
		return StraightFlush
	}

	pairs := 0
	pairHigh := -1
	trips := false
	quads := false
	for r := 12; r >= 0; r-- {
		switch rankCounts[r] {
		case 4:
			quads = true
		case 3:
			trips = true
		case 2:
			pairs++
			if pairHigh < 0 {
				pairHigh = r
			}
		}
	}

	switch {
	case quads:
		return FourOfAKind
	case trips && pairs > 0:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case trips:
		return ThreeOfAKind
	case pairs >= 2:
		return TwoPair
	case pairs == 1:
		if pairHigh >= tenBit {
			return TensOrBetter
		}
		return LowPair
	default:
		return HighCard
	}
}

// Evaluate3 classifies a three-card bonus hand. The caller must pass exactly
// three distinct cards.
func Evaluate3(cards []deck.Card) BonusCategory {
	if len(cards) != 3 {
		panic(fmt.Sprintf("evaluator: Evaluate3 called with %d cards", len(cards)))
	}

	var suits [4]uint16
	var rankCounts [13]uint8
	for _, c := range cards {
		suits[c.Suit] |= 1 << (int(c.Rank) - 2)
		rankCounts[int(c.Rank)-2]++
	}
	ranks := suits[0] | suits[1] | suits[2] | suits[3]

	flush := false
	for _, sm := range suits {
		if bits.OnesCount16(sm) == 3 {
			flush = true
			break
		}
	}

	straight := straightMask3(ranks) != 0

	trips := false
	pair := false
	for r := 0; r < 13; r++ {
		switch rankCounts[r] {
		case 3:
			trips = true
		case 2:
			pair = true
		}
	}

	switch {
	case flush && straight:
		if ranks == broadway3 {
			return BonusMiniRoyal
		}
		return BonusStraightFlush
	case trips:
		return BonusThreeOfAKind
	case straight:
		return BonusStraight
	case flush:
		return BonusFlush
	case pair:
		return BonusPair
	default:
		return BonusNothing
	}
}

// straightMask5 returns the rank mask of a five-card straight, or 0. The ace
// plays high (T-A) and low (A-5).
func straightMask5(ranks uint16) uint16 {
	mask := royalMask
	for i := 0; i <= 8; i++ {
		if ranks&mask == mask {
			return mask
		}
		mask >>= 1
	}
	if ranks&wheelMask == wheelMask {
		return wheelMask
	}
	return 0
}

// straightMask3 returns the rank mask of a three-card straight, or 0. The
// ace plays high (Q-K-A) and low (A-2-3).
func straightMask3(ranks uint16) uint16 {
	mask := broadway3
	for i := 0; i <= 10; i++ {
		if ranks&mask == mask {
			return mask
		}
		mask >>= 1
	}
	if ranks&wheel3Mask == wheel3Mask {
		return wheel3Mask
	}
	return 0
}
