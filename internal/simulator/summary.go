package simulator

import (
	"fmt"
	"sort"

	"github.com/lox/letitride/internal/evaluator"
	"github.com/lox/letitride/internal/ruin"
	"github.com/lox/letitride/internal/statistics"
)

// PrintSummary writes a human-readable report of a finished run to stdout.
// ruinReport may be nil when too few sessions ran to estimate risk.
func PrintSummary(res *SimulationResults, stats statistics.AggregateStatistics, validation statistics.ValidationReport, ruinReport *ruin.Report) {
	cfg := res.Config

	fmt.Printf("\n=== SIMULATION ===\n")
	fmt.Printf("Run ID: %s\n", res.RunID)
	if cfg.Simulation.Seats > 1 {
		fmt.Printf("Sessions: %d (%d tables x %d seats)\n", stats.TotalSessions, cfg.Simulation.Sessions, cfg.Simulation.Seats)
	} else {
		fmt.Printf("Sessions: %d\n", stats.TotalSessions)
	}
	fmt.Printf("Strategy: %s, betting: %s, base bet: %v\n", cfg.Strategy.Type, cfg.Betting.Type, cfg.Bankroll.BaseBet)
	if amount := cfg.BonusAmount(); amount > 0 {
		fmt.Printf("Bonus bet: %v per hand\n", amount)
	}
	fmt.Printf("Hands: %d in %.2fs (%.0f hands/sec, %d workers)\n",
		res.TotalHands, res.DurationSeconds, res.HandsPerSecond, res.Workers)

	fmt.Printf("\n=== SESSION OUTCOMES ===\n")
	fmt.Printf("Wins:   %6d (%.1f%%)\n", stats.Wins, stats.WinRate*100)
	fmt.Printf("Losses: %6d (%.1f%%)\n", stats.Losses, stats.LossRate*100)
	fmt.Printf("Pushes: %6d (%.1f%%)\n", stats.Pushes, stats.PushRate*100)
	fmt.Printf("Avg hands per session: %.1f\n", stats.AvgHandsPerSession)
	for _, reason := range sortedKeys(stats.StopReasons) {
		fmt.Printf("  stopped by %s: %d\n", reason, stats.StopReasons[reason])
	}

	fmt.Printf("\n=== PROFIT ===\n")
	fmt.Printf("Total wagered: %.2f", stats.TotalWagered)
	if stats.TotalBonusWagered > 0 {
		fmt.Printf(" (plus %.2f bonus)", stats.TotalBonusWagered)
	}
	fmt.Printf("\n")
	fmt.Printf("Total profit: %.2f", stats.TotalProfit)
	if wagered := stats.TotalWagered + stats.TotalBonusWagered; wagered > 0 {
		fmt.Printf(" (house edge %.2f%%)", -stats.TotalProfit/wagered*100)
	}
	fmt.Printf("\n")
	fmt.Printf("Per session: mean %.2f, median %.2f, std dev %.2f\n",
		stats.MeanSessionProfit, stats.MedianProfit(), stats.StdDevSessionProfit)
	fmt.Printf("Percentiles: P5=%.2f, P25=%.2f, P75=%.2f, P95=%.2f\n",
		stats.ProfitPercentile(0.05), stats.ProfitPercentile(0.25),
		stats.ProfitPercentile(0.75), stats.ProfitPercentile(0.95))

	fmt.Printf("\n=== HAND FREQUENCIES ===\n")
	printHandFrequencies(stats)

	fmt.Printf("\n=== RANDOMNESS CHECK ===\n")
	chi := validation.ChiSquare
	verdict := "PASSED"
	if !chi.Passed {
		verdict = "FAILED"
	}
	fmt.Printf("Chi-square: %.2f (df %d), p-value %.4f, %s at %.2f significance\n",
		chi.Statistic, chi.DegreesOfFreedom, chi.PValue, verdict, chi.SignificanceLevel)
	for _, warning := range validation.Warnings {
		fmt.Printf("WARNING: %s\n", warning)
	}

	if ruinReport != nil {
		fmt.Printf("\n=== RISK OF RUIN ===\n")
		fmt.Printf("Base bet %v, %d trajectories per level, %.0f%% confidence\n",
			ruinReport.BaseBet, ruinReport.SimulationsPerLevel, ruinReport.ConfidenceLevel*100)
		fmt.Printf("%8s %6s %8s %17s %9s %9s %11s\n",
			"Bankroll", "Units", "Ruin", "CI", "50% loss", "25% loss", "Analytical")
		for _, r := range ruinReport.Results {
			fmt.Printf("%8.0f %6d %7.2f%% [%5.2f%%, %5.2f%%] %8.2f%% %8.2f%% %10.2f%%\n",
				r.Bankroll, r.BankrollUnits, r.RuinProbability*100,
				r.CILower*100, r.CIUpper*100,
				r.Loss50PctRisk*100, r.Loss25PctRisk*100, r.AnalyticalRisk*100)
		}
	}
}

// printHandFrequencies lists every category the evaluator can report, in
// ascending strength order, with observed against theoretical rates.
func printHandFrequencies(stats statistics.AggregateStatistics) {
	if stats.TotalHands == 0 {
		fmt.Printf("no hands played\n")
		return
	}
	for c := evaluator.HighCard; int(c) < evaluator.NumCategories; c++ {
		name := c.String()
		count := stats.HandFrequencies[name]
		observed := float64(count) / float64(stats.TotalHands) * 100
		line := fmt.Sprintf("%-16s %9d  %7.4f%%", name, count, observed)
		if p, ok := statistics.TheoreticalProbability(name); ok {
			line += fmt.Sprintf("  (expect %7.4f%%)", p*100)
		}
		fmt.Println(line)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
