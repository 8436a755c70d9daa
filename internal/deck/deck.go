package deck

import (
	"fmt"
	"math/rand/v2"
)

// Size is the number of cards in a standard deck.
const Size = 52

// Deck represents a standard 52-card deck. The deck owns no randomness:
// Shuffle takes the caller's generator so that session-level code controls
// every random draw. The zero allocation contract matters here; a simulation
// resets and reshuffles the same deck millions of times.
type Deck struct {
	cards [Size]Card
	pos   int
}

// New creates a full deck in canonical order (suits ♠♥♦♣, ranks 2..A).
func New() *Deck {
	d := &Deck{}
	d.Reset()
	return d
}

// Reset restores canonical order and rewinds the deal position. It reuses
// the deck's internal storage rather than reallocating.
func (d *Deck) Reset() {
	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = Card{Suit: suit, Rank: rank}
			i++
		}
	}
	d.pos = 0
}

// Shuffle randomizes the order of all 52 cards in place using the supplied
// generator and rewinds the deal position.
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	d.pos = 0
}

// Deal returns the next n cards and advances the deal position. The returned
// slice aliases the deck's storage and is only valid until the next Shuffle
// or Reset. Dealing past the end of the deck is a programming error.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.pos+n > len(d.cards) {
		panic(fmt.Sprintf("deck: deal %d with %d remaining", n, len(d.cards)-d.pos))
	}
	cards := d.cards[d.pos : d.pos+n]
	d.pos += n
	return cards
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.pos
}
