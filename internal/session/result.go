package session

// Outcome classifies a finished session by the sign of its profit.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomePush Outcome = "push"
)

// StopReason records which stop condition ended a session. When several
// conditions hold at once the highest-priority one is reported; see
// Session.Run for the order.
type StopReason string

const (
	StopBankrollDepleted StopReason = "bankroll_depleted"
	StopLossLimit        StopReason = "loss_limit"
	StopWinLimit         StopReason = "win_limit"
	StopMaxHands         StopReason = "max_hands"
)

// SessionResult is the immutable record of one completed seat session.
// SeatNumber and TableSessionID are zero for single-seat runs; table runs
// fill them in afterwards via WithSeatInfo.
type SessionResult struct {
	Outcome           Outcome        `json:"outcome"`
	StopReason        StopReason     `json:"stop_reason"`
	HandsPlayed       int            `json:"hands_played"`
	StartingBankroll  float64        `json:"starting_bankroll"`
	FinalBankroll     float64        `json:"final_bankroll"`
	SessionProfit     float64        `json:"session_profit"`
	TotalWagered      float64        `json:"total_wagered"`
	TotalBonusWagered float64        `json:"total_bonus_wagered"`
	PeakBankroll      float64        `json:"peak_bankroll"`
	MaxDrawdown       float64        `json:"max_drawdown"`
	MaxDrawdownPct    float64        `json:"max_drawdown_pct"`
	HandFrequencies   map[string]int `json:"hand_frequencies"`
	SeatNumber        int            `json:"seat_number,omitempty"`
	TableSessionID    int64          `json:"table_session_id,omitempty"`
}

// WithSeatInfo returns a copy of the result carrying the seat number and
// table session identifier. The receiver is never modified; sequential and
// parallel execution decorate results through this same method so their
// outputs stay bit-identical.
func (r SessionResult) WithSeatInfo(seat int, tableID int64) SessionResult {
	r.SeatNumber = seat
	r.TableSessionID = tableID
	return r
}
