// Package statistics reduces session results into aggregate summaries and
// validates simulated hand distributions against theoretical probabilities.
package statistics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/lox/letitride/internal/session"
)

// AggregateStatistics summarizes a set of completed sessions. The zero value
// describes an empty run; rates are zero rather than NaN when nothing was
// played. The per-session profit sequence is retained for derived
// calculations but never serialized.
type AggregateStatistics struct {
	TotalSessions int `json:"total_sessions"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	Pushes        int `json:"pushes"`

	WinRate  float64 `json:"win_rate"`
	LossRate float64 `json:"loss_rate"`
	PushRate float64 `json:"push_rate"`

	TotalHands         int     `json:"total_hands"`
	AvgHandsPerSession float64 `json:"avg_hands_per_session"`

	TotalWagered      float64 `json:"total_wagered"`
	TotalBonusWagered float64 `json:"total_bonus_wagered"`
	TotalProfit       float64 `json:"total_profit"`

	MeanSessionProfit   float64 `json:"mean_session_profit"`
	StdDevSessionProfit float64 `json:"std_dev_session_profit"`

	HandFrequencies map[string]int `json:"hand_frequencies"`
	StopReasons     map[string]int `json:"stop_reasons"`

	profits []float64
}

// Aggregate reduces session results into an AggregateStatistics. An empty
// input yields a well-defined empty summary so zero-session pipelines do not
// blow up downstream.
func Aggregate(results []session.SessionResult) AggregateStatistics {
	agg := AggregateStatistics{
		HandFrequencies: make(map[string]int),
		StopReasons:     make(map[string]int),
		profits:         make([]float64, 0, len(results)),
	}

	for _, r := range results {
		agg.TotalSessions++
		switch r.Outcome {
		case session.OutcomeWin:
			agg.Wins++
		case session.OutcomeLoss:
			agg.Losses++
		case session.OutcomePush:
			agg.Pushes++
		}

		agg.TotalHands += r.HandsPlayed
		agg.TotalWagered += r.TotalWagered
		agg.TotalBonusWagered += r.TotalBonusWagered
		agg.TotalProfit += r.SessionProfit
		agg.profits = append(agg.profits, r.SessionProfit)

		for category, count := range r.HandFrequencies {
			agg.HandFrequencies[category] += count
		}
		agg.StopReasons[string(r.StopReason)]++
	}

	if agg.TotalSessions > 0 {
		n := float64(agg.TotalSessions)
		agg.WinRate = float64(agg.Wins) / n
		agg.LossRate = float64(agg.Losses) / n
		agg.PushRate = float64(agg.Pushes) / n
		agg.AvgHandsPerSession = float64(agg.TotalHands) / n
		agg.MeanSessionProfit = stat.Mean(agg.profits, nil)
	}
	if agg.TotalSessions > 1 {
		agg.StdDevSessionProfit = stat.StdDev(agg.profits, nil)
	}
	return agg
}

// MedianProfit returns the median per-session profit.
func (a AggregateStatistics) MedianProfit() float64 {
	return a.ProfitPercentile(0.5)
}

// ProfitPercentile returns the value at the given percentile (0.0 to 1.0)
// of the per-session profit distribution, linearly interpolated between
// neighbouring observations. Returns 0 when no sessions were played.
func (a AggregateStatistics) ProfitPercentile(p float64) float64 {
	if len(a.profits) == 0 {
		return 0
	}
	sorted := make([]float64, len(a.profits))
	copy(sorted, a.profits)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
