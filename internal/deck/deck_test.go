package deck

import (
	"testing"

	"github.com/lox/letitride/internal/randutil"
)

func TestNewDeckHasAllCards(t *testing.T) {
	d := New()

	if d.Remaining() != Size {
		t.Fatalf("Remaining() = %d, want %d", d.Remaining(), Size)
	}

	seen := make(map[Card]bool)
	for _, c := range d.Deal(Size) {
		if seen[c] {
			t.Errorf("duplicate card %v", c)
		}
		seen[c] = true
	}
	if len(seen) != Size {
		t.Errorf("got %d distinct cards, want %d", len(seen), Size)
	}
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	d1 := New()
	d1.Shuffle(randutil.New(42))
	order1 := append([]Card(nil), d1.Deal(Size)...)

	d2 := New()
	d2.Shuffle(randutil.New(42))
	order2 := d2.Deal(Size)

	if !cardsEqual(order1, order2) {
		t.Error("same seed should produce the same shuffle")
	}

	d3 := New()
	d3.Shuffle(randutil.New(43))
	if cardsEqual(order1, d3.Deal(Size)) {
		t.Error("different seeds should produce different shuffles")
	}
}

func TestDealAdvancesPosition(t *testing.T) {
	d := New()
	d.Shuffle(randutil.New(1))

	hole := d.Deal(3)
	community := d.Deal(2)

	if len(hole) != 3 || len(community) != 2 {
		t.Fatalf("Deal returned %d and %d cards, want 3 and 2", len(hole), len(community))
	}
	if d.Remaining() != Size-5 {
		t.Errorf("Remaining() = %d, want %d", d.Remaining(), Size-5)
	}

	seen := make(map[Card]bool)
	for _, c := range hole {
		seen[c] = true
	}
	for _, c := range community {
		if seen[c] {
			t.Errorf("card %v dealt twice", c)
		}
	}
}

func TestDealPastEndPanics(t *testing.T) {
	d := New()
	d.Deal(50)

	defer func() {
		if r := recover(); r == nil {
			t.Error("dealing past the end of the deck should panic")
		}
	}()
	d.Deal(3)
}

func TestResetRestoresCanonicalOrder(t *testing.T) {
	d := New()
	d.Shuffle(randutil.New(7))
	d.Deal(20)

	d.Reset()

	if d.Remaining() != Size {
		t.Errorf("Remaining() after Reset = %d, want %d", d.Remaining(), Size)
	}
	first := d.Deal(1)[0]
	if first != (Card{Suit: Spades, Rank: Two}) {
		t.Errorf("first card after Reset = %v, want 2♠", first)
	}
}

func TestResetThenShuffleMatchesFreshDeck(t *testing.T) {
	reused := New()
	reused.Shuffle(randutil.New(99))
	reused.Deal(20)
	reused.Reset()
	reused.Shuffle(randutil.New(5))

	fresh := New()
	fresh.Shuffle(randutil.New(5))

	if !cardsEqual(reused.Deal(Size), fresh.Deal(Size)) {
		t.Error("reset deck should shuffle identically to a fresh deck")
	}
}
