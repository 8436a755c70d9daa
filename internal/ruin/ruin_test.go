package ruin

import (
	"math"
	"reflect"
	"testing"

	"github.com/lox/letitride/internal/session"
)

func flatResults(n int, profit, wagered float64, hands int) []session.SessionResult {
	results := make([]session.SessionResult, n)
	for i := range results {
		results[i] = session.SessionResult{
			SessionProfit: profit,
			TotalWagered:  wagered,
			HandsPlayed:   hands,
		}
	}
	return results
}

func mixedResults() []session.SessionResult {
	profits := []float64{-40, -35, -30, -25, -20, 20, 25, 30, 35, 40}
	results := make([]session.SessionResult, len(profits))
	for i, p := range profits {
		results[i] = session.SessionResult{
			SessionProfit: p,
			TotalWagered:  300,
			HandsPlayed:   20,
		}
	}
	return results
}

func TestCalculate_InputValidation(t *testing.T) {
	few := flatResults(9, -10, 150, 10)
	enough := flatResults(10, -10, 150, 10)

	if _, err := Calculate(few, Options{}); err == nil {
		t.Error("Expected error for fewer than 10 results")
	}
	if _, err := Calculate(enough, Options{BankrollUnits: []int{10, 0}}); err == nil {
		t.Error("Expected error for non-positive bankroll unit")
	}
	if _, err := Calculate(enough, Options{BankrollUnits: []int{-5}}); err == nil {
		t.Error("Expected error for negative bankroll unit")
	}
	if _, err := Calculate(enough, Options{BankrollUnits: []int{}}); err == nil {
		t.Error("Expected error for explicitly empty bankroll units")
	}
	if _, err := Calculate(enough, Options{ConfidenceLevel: 1}); err == nil {
		t.Error("Expected error for confidence level 1")
	}
	if _, err := Calculate(enough, Options{ConfidenceLevel: -0.5}); err == nil {
		t.Error("Expected error for negative confidence level")
	}
	if _, err := Calculate(enough, Options{SimulationsPerLevel: -1}); err == nil {
		t.Error("Expected error for negative simulation count")
	}
	if _, err := Calculate(enough, Options{BaseBet: -5}); err == nil {
		t.Error("Expected error for negative base bet")
	}
	if _, err := Calculate(flatResults(10, -10, 0, 0), Options{}); err == nil {
		t.Error("Expected error when the base bet cannot be inferred from zero hands")
	}
}

func TestCalculate_DefaultsApplied(t *testing.T) {
	report, err := Calculate(mixedResults(), Options{Workers: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if report.ConfidenceLevel != DefaultConfidenceLevel {
		t.Errorf("Expected confidence level %f, got %f", DefaultConfidenceLevel, report.ConfidenceLevel)
	}
	if report.SimulationsPerLevel != DefaultSimulationsPerLevel {
		t.Errorf("Expected %d simulations, got %d", DefaultSimulationsPerLevel, report.SimulationsPerLevel)
	}
	if len(report.Results) != len(defaultBankrollUnits) {
		t.Errorf("Expected %d levels, got %d", len(defaultBankrollUnits), len(report.Results))
	}
	// Sessions of 20 hands wagering 300 imply a base bet of 5.
	if report.BaseBet != 5 {
		t.Errorf("Expected inferred base bet of 5, got %f", report.BaseBet)
	}
}

func TestCalculate_BaseBetInference(t *testing.T) {
	results := flatResults(10, -20, 450, 20) // 450 / (3 * 20) = 7.5
	report, err := Calculate(results, Options{SimulationsPerLevel: 100})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.BaseBet != 7.5 {
		t.Errorf("Expected inferred base bet of 7.5, got %f", report.BaseBet)
	}
}

func TestCalculate_AllLosingSessions(t *testing.T) {
	results := flatResults(15, -50, 150, 10)
	report, err := Calculate(results, Options{
		BankrollUnits:       []int{10},
		SimulationsPerLevel: 500,
		Seed:                7,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	r := report.Results[0]
	if r.RuinProbability != 1 {
		t.Errorf("Expected certain ruin, got %f", r.RuinProbability)
	}
	if r.Loss50PctRisk != 1 || r.Loss25PctRisk != 1 {
		t.Errorf("Expected certain partial losses, got %f/%f", r.Loss50PctRisk, r.Loss25PctRisk)
	}
	if r.CIUpper < 0.999 {
		t.Errorf("Expected CI upper bound at 1, got %f", r.CIUpper)
	}
	if r.AnalyticalRisk != 1 {
		t.Errorf("Expected analytical certainty for losing sessions, got %f", r.AnalyticalRisk)
	}
}

func TestCalculate_AllWinningSessions(t *testing.T) {
	results := flatResults(12, 20, 150, 10)
	report, err := Calculate(results, Options{
		BankrollUnits:       []int{10, 50},
		SimulationsPerLevel: 500,
		Seed:                7,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, r := range report.Results {
		if r.RuinProbability != 0 {
			t.Errorf("Expected no ruin at %d units, got %f", r.BankrollUnits, r.RuinProbability)
		}
		if r.Loss25PctRisk != 0 {
			t.Errorf("Expected no partial loss at %d units, got %f", r.BankrollUnits, r.Loss25PctRisk)
		}
		if r.CILower > 1e-9 {
			t.Errorf("Expected CI lower bound at 0, got %f", r.CILower)
		}
		if r.AnalyticalRisk != 0 {
			t.Errorf("Expected no analytical risk for zero-variance winners, got %f", r.AnalyticalRisk)
		}
	}
}

func TestCalculate_MonotonicInBankroll(t *testing.T) {
	report, err := Calculate(mixedResults(), Options{
		BankrollUnits:       []int{5, 10, 20, 50, 100},
		SimulationsPerLevel: 2000,
		Seed:                99,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i, r := range report.Results {
		if r.Loss25PctRisk < r.Loss50PctRisk || r.Loss50PctRisk < r.RuinProbability {
			t.Errorf("Level %d: loss risks should nest, got 25%%=%f 50%%=%f ruin=%f",
				r.BankrollUnits, r.Loss25PctRisk, r.Loss50PctRisk, r.RuinProbability)
		}
		if r.CILower > r.RuinProbability || r.CIUpper < r.RuinProbability {
			t.Errorf("Level %d: interval [%f, %f] should contain %f",
				r.BankrollUnits, r.CILower, r.CIUpper, r.RuinProbability)
		}
		if i > 0 && r.RuinProbability > report.Results[i-1].RuinProbability {
			t.Errorf("Ruin probability rose from %f to %f between %d and %d units",
				report.Results[i-1].RuinProbability, r.RuinProbability,
				report.Results[i-1].BankrollUnits, r.BankrollUnits)
		}
	}
}

func TestCalculate_DeterministicAcrossWorkers(t *testing.T) {
	opts := Options{
		BankrollUnits:       []int{10, 50},
		SimulationsPerLevel: 1000,
		Seed:                42,
	}

	var reports []Report
	for _, workers := range []int{1, 4, 0} {
		opts.Workers = workers
		report, err := Calculate(mixedResults(), opts)
		if err != nil {
			t.Fatalf("Unexpected error with %d workers: %v", workers, err)
		}
		reports = append(reports, report)
	}

	if !reflect.DeepEqual(reports[0], reports[1]) {
		t.Error("Expected identical reports for 1 and 4 workers")
	}
	if !reflect.DeepEqual(reports[0], reports[2]) {
		t.Error("Expected identical reports for 1 worker and the CPU default")
	}
}

func TestAnalyticalProbability(t *testing.T) {
	if got := AnalyticalProbability(-5, 10, 100); got != 1 {
		t.Errorf("Expected certain ruin for negative expectation, got %f", got)
	}
	if got := AnalyticalProbability(0, 10, 100); got != 1 {
		t.Errorf("Expected certain ruin for zero expectation, got %f", got)
	}
	if got := AnalyticalProbability(5, 0, 100); got != 0 {
		t.Errorf("Expected no risk for zero-variance winners, got %f", got)
	}
	if got := AnalyticalProbability(5, 10, 0); got != 1 {
		t.Errorf("Expected certain ruin with no bankroll, got %f", got)
	}

	// exp(-2 * 1 * 100 / 10^2) = exp(-2)
	want := math.Exp(-2)
	if got := AnalyticalProbability(1, 10, 100); math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected %f, got %f", want, got)
	}

	// Far past the underflow clamp.
	if got := AnalyticalProbability(1, 1, 1000); got != 0 {
		t.Errorf("Expected saturated zero, got %f", got)
	}

	// More bankroll never increases risk.
	if AnalyticalProbability(1, 10, 200) > AnalyticalProbability(1, 10, 100) {
		t.Error("Expected analytical risk to fall as bankroll grows")
	}
}
