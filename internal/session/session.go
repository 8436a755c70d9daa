package session

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/letitride/internal/betting"
	"github.com/lox/letitride/internal/deck"
	"github.com/lox/letitride/internal/evaluator"
	"github.com/lox/letitride/internal/game"
	"github.com/lox/letitride/internal/strategy"
)

// Config carries the per-seat session parameters. The session treats it as
// validated, read-only input; limit fields set to zero are disabled.
type Config struct {
	StartingBankroll float64
	MaxHands         int
	WinLimit         float64
	LossLimit        float64
	TrackHistory     bool
	BonusBet         float64
	Paytable         game.Paytable
	BonusPaytable    game.BonusPaytable
}

// HandObserver receives every settled hand. Hand numbers are 1-based.
// Returning an error aborts the session immediately; observers are a
// verification hook, not part of the simulation, and are not sandboxed.
type HandObserver func(handNumber int, result game.HandResult) error

// Session drives one seat through hands until a stop condition fires.
type Session struct {
	// Observer, when set, is invoked after each settled hand.
	Observer HandObserver

	cfg  Config
	st   *seat
	deck *deck.Deck
	rng  *rand.Rand
}

// New creates a single-seat session. The generator is owned by the session
// and drives every shuffle; deterministic seeding happens upstream.
func New(cfg Config, strat strategy.Strategy, system betting.System, rng *rand.Rand) (*Session, error) {
	st, err := newSeat(cfg, strat, system)
	if err != nil {
		return nil, err
	}
	return &Session{cfg: cfg, st: st, deck: deck.New(), rng: rng}, nil
}

// Run plays hands until a stop condition fires and returns the session's
// result. Stop conditions are evaluated between hands in priority order:
// bankroll depleted (the balance cannot cover the next hand's wagers), then
// loss limit, then win limit, then max hands. The ordering is fixed so that
// simultaneous conditions resolve identically in every execution mode.
func (s *Session) Run() (SessionResult, error) {
	for {
		reason, stopped := s.st.checkStop(s.cfg)
		if stopped {
			return s.st.buildResult(reason), nil
		}

		s.deck.Reset()
		s.deck.Shuffle(s.rng)
		hole := s.deck.Deal(3)
		community := s.deck.Deal(2)

		res := s.st.playDealt(s.cfg, hole, community)
		if s.Observer != nil {
			if err := s.Observer(s.st.handsPlayed, res); err != nil {
				return SessionResult{}, fmt.Errorf("hand observer: %w", err)
			}
		}
	}
}

// seat is the per-position state shared by single-seat sessions and table
// seats: strategy, betting system, tracker and counters.
type seat struct {
	strat   strategy.Strategy
	system  betting.System
	tracker *BankrollTracker

	handsPlayed       int
	totalWagered      float64
	totalBonusWagered float64
	freqs             [evaluator.NumCategories]int
}

func newSeat(cfg Config, strat strategy.Strategy, system betting.System) (*seat, error) {
	tracker, err := NewBankrollTracker(cfg.StartingBankroll, cfg.TrackHistory)
	if err != nil {
		return nil, err
	}
	return &seat{strat: strat, system: system, tracker: tracker}, nil
}

// checkStop evaluates the stop conditions in priority order against the
// upcoming bet. NextBet is a pure peek, so looking at it here does not
// disturb the betting progression.
func (st *seat) checkStop(cfg Config) (StopReason, bool) {
	required := 3*st.system.NextBet() + cfg.BonusBet
	switch {
	case st.tracker.Balance() < required:
		return StopBankrollDepleted, true
	case cfg.LossLimit > 0 && st.tracker.Profit() <= -cfg.LossLimit:
		return StopLossLimit, true
	case cfg.WinLimit > 0 && st.tracker.Profit() >= cfg.WinLimit:
		return StopWinLimit, true
	case cfg.MaxHands > 0 && st.handsPlayed >= cfg.MaxHands:
		return StopMaxHands, true
	}
	return "", false
}

// playDealt plays one dealt hand: ride decisions, settlement, bookkeeping.
func (st *seat) playDealt(cfg Config, hole, community []deck.Card) game.HandResult {
	bet := st.system.NextBet()

	rideFirst := st.strat.RideFirst(hole)
	var four [4]deck.Card
	copy(four[:3], hole)
	four[3] = community[0]
	rideSecond := st.strat.RideSecond(four[:])

	res := game.Settle(hole, community, rideFirst, rideSecond, bet, cfg.BonusBet, cfg.Paytable, cfg.BonusPaytable)

	st.tracker.ApplyResult(res.Net)
	switch {
	case res.MainNet > 0:
		st.system.Record(betting.Win)
	case res.MainNet < 0:
		st.system.Record(betting.Loss)
	default:
		st.system.Record(betting.Push)
	}

	st.handsPlayed++
	st.totalWagered += res.Wagered
	st.totalBonusWagered += res.BonusWagered
	st.freqs[res.Category]++
	return res
}

// reset begins a fresh sub-session at the same seat: tracker and betting
// progression reinitialized in place, counters cleared.
func (st *seat) reset() {
	st.tracker.Reset()
	st.system.Reset()
	st.handsPlayed = 0
	st.totalWagered = 0
	st.totalBonusWagered = 0
	st.freqs = [evaluator.NumCategories]int{}
}

func (st *seat) buildResult(reason StopReason) SessionResult {
	profit := st.tracker.Profit()
	outcome := OutcomePush
	if profit > 0 {
		outcome = OutcomeWin
	} else if profit < 0 {
		outcome = OutcomeLoss
	}

	freqs := make(map[string]int)
	for c, n := range st.freqs {
		if n > 0 {
			freqs[evaluator.Category(c).String()] = n
		}
	}

	return SessionResult{
		Outcome:           outcome,
		StopReason:        reason,
		HandsPlayed:       st.handsPlayed,
		StartingBankroll:  st.tracker.Starting(),
		FinalBankroll:     st.tracker.Balance(),
		SessionProfit:     profit,
		TotalWagered:      st.totalWagered,
		TotalBonusWagered: st.totalBonusWagered,
		PeakBankroll:      st.tracker.Peak(),
		MaxDrawdown:       st.tracker.MaxDrawdown(),
		MaxDrawdownPct:    st.tracker.MaxDrawdownPct(),
		HandFrequencies:   freqs,
	}
}
