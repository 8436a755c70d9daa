package statistics

import (
	"math"
	"testing"

	"github.com/lox/letitride/internal/session"
)

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil)

	if agg.TotalSessions != 0 {
		t.Errorf("Expected 0 sessions, got %d", agg.TotalSessions)
	}
	if agg.WinRate != 0 || agg.LossRate != 0 || agg.PushRate != 0 {
		t.Errorf("Expected zero rates for empty input, got %f/%f/%f",
			agg.WinRate, agg.LossRate, agg.PushRate)
	}
	if agg.MeanSessionProfit != 0 {
		t.Errorf("Expected mean profit of 0, got %f", agg.MeanSessionProfit)
	}
	if agg.StdDevSessionProfit != 0 {
		t.Errorf("Expected stddev of 0, got %f", agg.StdDevSessionProfit)
	}
	if agg.MedianProfit() != 0 {
		t.Errorf("Expected median of 0, got %f", agg.MedianProfit())
	}
	if agg.HandFrequencies == nil || agg.StopReasons == nil {
		t.Error("Expected empty maps, not nil")
	}
}

func TestAggregate_MultipleSessions(t *testing.T) {
	results := []session.SessionResult{
		{
			Outcome:       session.OutcomeWin,
			StopReason:    session.StopWinLimit,
			HandsPlayed:   10,
			SessionProfit: 50,
			TotalWagered:  150,
			HandFrequencies: map[string]int{
				"high_card": 6,
				"low_pair":  4,
			},
		},
		{
			Outcome:       session.OutcomeLoss,
			StopReason:    session.StopLossLimit,
			HandsPlayed:   20,
			SessionProfit: -30,
			TotalWagered:  300,
			HandFrequencies: map[string]int{
				"high_card": 12,
				"low_pair":  8,
			},
		},
		{
			Outcome:       session.OutcomeLoss,
			StopReason:    session.StopMaxHands,
			HandsPlayed:   30,
			SessionProfit: -20,
			TotalWagered:  450,
			HandFrequencies: map[string]int{
				"high_card": 20,
				"flush":     10,
			},
		},
		{
			Outcome:       session.OutcomePush,
			StopReason:    session.StopMaxHands,
			HandsPlayed:   40,
			SessionProfit: 0,
			TotalWagered:  600,
			HandFrequencies: map[string]int{
				"high_card": 40,
			},
		},
	}

	agg := Aggregate(results)

	if agg.TotalSessions != 4 {
		t.Errorf("Expected 4 sessions, got %d", agg.TotalSessions)
	}
	if agg.Wins != 1 || agg.Losses != 2 || agg.Pushes != 1 {
		t.Errorf("Expected 1/2/1 win/loss/push, got %d/%d/%d",
			agg.Wins, agg.Losses, agg.Pushes)
	}
	if agg.WinRate != 0.25 || agg.LossRate != 0.5 || agg.PushRate != 0.25 {
		t.Errorf("Expected rates 0.25/0.5/0.25, got %f/%f/%f",
			agg.WinRate, agg.LossRate, agg.PushRate)
	}
	if agg.TotalHands != 100 {
		t.Errorf("Expected 100 hands, got %d", agg.TotalHands)
	}
	if agg.AvgHandsPerSession != 25 {
		t.Errorf("Expected 25 hands per session, got %f", agg.AvgHandsPerSession)
	}
	if agg.TotalWagered != 1500 {
		t.Errorf("Expected total wagered of 1500, got %f", agg.TotalWagered)
	}
	if agg.TotalProfit != 0 {
		t.Errorf("Expected total profit of 0, got %f", agg.TotalProfit)
	}
	if agg.MeanSessionProfit != 0 {
		t.Errorf("Expected mean profit of 0, got %f", agg.MeanSessionProfit)
	}

	// Sample stddev of [50, -30, -20, 0] around mean 0.
	wantStdDev := math.Sqrt((2500.0 + 900.0 + 400.0 + 0.0) / 3.0)
	if math.Abs(agg.StdDevSessionProfit-wantStdDev) > 1e-9 {
		t.Errorf("Expected stddev of %f, got %f", wantStdDev, agg.StdDevSessionProfit)
	}

	if agg.HandFrequencies["high_card"] != 78 {
		t.Errorf("Expected 78 high cards, got %d", agg.HandFrequencies["high_card"])
	}
	if agg.HandFrequencies["low_pair"] != 12 {
		t.Errorf("Expected 12 low pairs, got %d", agg.HandFrequencies["low_pair"])
	}
	if agg.HandFrequencies["flush"] != 10 {
		t.Errorf("Expected 10 flushes, got %d", agg.HandFrequencies["flush"])
	}

	if agg.StopReasons[string(session.StopMaxHands)] != 2 {
		t.Errorf("Expected 2 max-hands stops, got %d", agg.StopReasons[string(session.StopMaxHands)])
	}
	if agg.StopReasons[string(session.StopWinLimit)] != 1 {
		t.Errorf("Expected 1 win-limit stop, got %d", agg.StopReasons[string(session.StopWinLimit)])
	}
}

func TestAggregate_SingleSession(t *testing.T) {
	agg := Aggregate([]session.SessionResult{
		{Outcome: session.OutcomeWin, HandsPlayed: 5, SessionProfit: 25},
	})

	if agg.MeanSessionProfit != 25 {
		t.Errorf("Expected mean of 25, got %f", agg.MeanSessionProfit)
	}
	if agg.StdDevSessionProfit != 0 {
		t.Errorf("Expected stddev of 0 for a single session, got %f", agg.StdDevSessionProfit)
	}
}

func TestAggregate_Percentiles(t *testing.T) {
	var results []session.SessionResult
	for _, profit := range []float64{30, 10, 50, 20, 40} {
		results = append(results, session.SessionResult{SessionProfit: profit})
	}
	agg := Aggregate(results)

	if agg.MedianProfit() != 30 {
		t.Errorf("Expected median of 30, got %f", agg.MedianProfit())
	}
	if agg.ProfitPercentile(0) != 10 {
		t.Errorf("Expected P0 of 10, got %f", agg.ProfitPercentile(0))
	}
	if agg.ProfitPercentile(1) != 50 {
		t.Errorf("Expected P100 of 50, got %f", agg.ProfitPercentile(1))
	}
	// Sorted values 10..50; P25 interpolates between 20 and 30.
	if agg.ProfitPercentile(0.25) != 20 {
		t.Errorf("Expected P25 of 20, got %f", agg.ProfitPercentile(0.25))
	}
	if agg.ProfitPercentile(0.75) != 40 {
		t.Errorf("Expected P75 of 40, got %f", agg.ProfitPercentile(0.75))
	}

	// Even count: median averages the middle pair.
	even := Aggregate(results[:4])
	if even.MedianProfit() != 25 {
		t.Errorf("Expected median of 25, got %f", even.MedianProfit())
	}
}
