package session

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/letitride/internal/betting"
	"github.com/lox/letitride/internal/deck"
	"github.com/lox/letitride/internal/game"
	"github.com/lox/letitride/internal/strategy"
)

// MaxSeats is the most seats a Let It Ride table holds.
const MaxSeats = 6

// Seat pairs the strategy and betting system occupying one table position.
type Seat struct {
	Strategy strategy.Strategy
	System   betting.System
}

// SeatObserver receives every settled hand at the table. Seat numbers are
// 1-based; round numbers are 1-based and shared by all seats in a round.
// Returning an error aborts the whole table.
type SeatObserver func(seatNumber, roundNumber int, result game.HandResult) error

// TableSession coordinates up to six seats sharing one deck and one pair of
// community cards per round. Each seat has its own bankroll, strategy,
// betting progression and stop-condition state.
//
// When a seat's session finishes it is replaced in place: its tracker and
// betting progression reset and a fresh, unreported sub-session starts at
// the same position. Finished seats keep playing so the card stream seen by
// the seats still running is identical whether or not their neighbours have
// finished. The table ends once every seat has completed one reported
// session, yielding exactly one result per seat in seat order.
type TableSession struct {
	// Observer, when set, is invoked after each settled hand at the table.
	Observer SeatObserver

	cfg     Config
	seats   []*seat
	done    []bool
	results []SessionResult
	hole    [MaxSeats][]deck.Card
	deck    *deck.Deck
	rng     *rand.Rand
	rounds  int
}

// NewTable creates a table session with one seat per entry.
func NewTable(cfg Config, seats []Seat, rng *rand.Rand) (*TableSession, error) {
	if len(seats) < 1 || len(seats) > MaxSeats {
		return nil, fmt.Errorf("table needs 1 to %d seats, got %d", MaxSeats, len(seats))
	}

	t := &TableSession{
		cfg:     cfg,
		seats:   make([]*seat, len(seats)),
		done:    make([]bool, len(seats)),
		results: make([]SessionResult, len(seats)),
		deck:    deck.New(),
		rng:     rng,
	}
	for i, s := range seats {
		st, err := newSeat(cfg, s.Strategy, s.System)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", i+1, err)
		}
		t.seats[i] = st
	}
	return t, nil
}

// Run plays rounds until every seat has completed one session, then returns
// one result per seat in seat order. Results carry no seat identifiers;
// the caller attaches them via WithSeatInfo.
func (t *TableSession) Run() ([]SessionResult, error) {
	var stopped [MaxSeats]bool
	for {
		allDone := true
		for i, st := range t.seats {
			reason, stop := st.checkStop(t.cfg)
			stopped[i] = stop
			if stop && !t.done[i] {
				t.results[i] = st.buildResult(reason)
				t.done[i] = true
			}
			if !t.done[i] {
				allDone = false
			}
		}
		if allDone {
			return t.results, nil
		}

		// Seats that stopped, reported or not, are replaced in place before
		// the next deal. A fresh seat starts from the configured bankroll, so
		// a seat that stops again without playing would reset forever; the
		// guard turns that into an error instead of a hang.
		for i, st := range t.seats {
			if !stopped[i] {
				continue
			}
			st.reset()
			if _, again := st.checkStop(t.cfg); again {
				return nil, fmt.Errorf("seat %d cannot cover a hand after reset", i+1)
			}
		}

		if err := t.playRound(); err != nil {
			return nil, err
		}
	}
}

// playRound deals three hole cards to every seat and two shared community
// cards, then plays each seat against them in seat order.
func (t *TableSession) playRound() error {
	t.deck.Reset()
	t.deck.Shuffle(t.rng)
	t.rounds++

	for i := range t.seats {
		t.hole[i] = t.deck.Deal(3)
	}
	community := t.deck.Deal(2)

	for i, st := range t.seats {
		res := st.playDealt(t.cfg, t.hole[i], community)
		if t.Observer != nil {
			if err := t.Observer(i+1, t.rounds, res); err != nil {
				return fmt.Errorf("hand observer: %w", err)
			}
		}
	}
	return nil
}
