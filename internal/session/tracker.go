// Package session drives seats through Let It Ride hands until a stop
// condition fires, tracking bankroll trajectories along the way. A Session
// runs one independent seat; a TableSession runs up to six seats against a
// shared deck.
package session

import "fmt"

// historyCap bounds the per-hand delta history. Sessions longer than this
// keep their leading deltas; the history is diagnostic, not load-bearing.
const historyCap = 100000

// BankrollTracker follows one seat's balance through a session: current
// balance, peak, and maximum drawdown in absolute and relative terms.
//
// Trackers are cycled at high frequency in seat-replacement mode, so Reset
// reinitializes in place and reuses the history's backing storage instead
// of reallocating.
type BankrollTracker struct {
	starting       float64
	balance        float64
	peak           float64
	maxDrawdown    float64
	maxDrawdownPct float64
	trackHistory   bool
	history        []float64
}

// NewBankrollTracker creates a tracker with the given starting amount.
// Negative starting amounts are rejected.
func NewBankrollTracker(starting float64, trackHistory bool) (*BankrollTracker, error) {
	if starting < 0 {
		return nil, fmt.Errorf("starting bankroll must not be negative, got %v", starting)
	}
	t := &BankrollTracker{trackHistory: trackHistory}
	if trackHistory {
		t.history = make([]float64, 0, 1024)
	}
	t.reset(starting)
	return t, nil
}

// ApplyResult applies one hand's net result to the balance and updates the
// peak and drawdown bookkeeping.
func (t *BankrollTracker) ApplyResult(delta float64) {
	t.balance += delta
	if t.balance > t.peak {
		t.peak = t.balance
	}
	if dd := t.peak - t.balance; dd > t.maxDrawdown {
		t.maxDrawdown = dd
		if t.peak > 0 {
			t.maxDrawdownPct = dd / t.peak
		}
	}
	if t.trackHistory && len(t.history) < historyCap {
		t.history = append(t.history, delta)
	}
}

// Reset reinitializes the tracker in place for a fresh session with the
// original starting amount.
func (t *BankrollTracker) Reset() {
	t.reset(t.starting)
}

// ResetTo reinitializes the tracker in place with a new starting amount,
// which also becomes the amount future Resets return to. Negative amounts
// are rejected.
func (t *BankrollTracker) ResetTo(starting float64) error {
	if starting < 0 {
		return fmt.Errorf("starting bankroll must not be negative, got %v", starting)
	}
	t.reset(starting)
	return nil
}

func (t *BankrollTracker) reset(starting float64) {
	t.starting = starting
	t.balance = starting
	t.peak = starting
	t.maxDrawdown = 0
	t.maxDrawdownPct = 0
	t.history = t.history[:0]
}

// Starting returns the session's starting amount.
func (t *BankrollTracker) Starting() float64 { return t.starting }

// Balance returns the current balance.
func (t *BankrollTracker) Balance() float64 { return t.balance }

// Peak returns the highest balance seen this session.
func (t *BankrollTracker) Peak() float64 { return t.peak }

// MaxDrawdown returns the largest peak-to-trough decline in absolute terms.
func (t *BankrollTracker) MaxDrawdown() float64 { return t.maxDrawdown }

// MaxDrawdownPct returns the largest decline relative to the peak at the
// time it occurred.
func (t *BankrollTracker) MaxDrawdownPct() float64 { return t.maxDrawdownPct }

// Profit returns the balance relative to the starting amount.
func (t *BankrollTracker) Profit() float64 { return t.balance - t.starting }

// History returns the recorded per-hand deltas. The returned slice is a
// view into the tracker's storage and is invalidated by Reset.
func (t *BankrollTracker) History() []float64 { return t.history }
