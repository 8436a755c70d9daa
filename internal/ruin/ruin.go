// Package ruin estimates the probability of losing a bankroll, in whole or
// in part, from a sample of completed session results. It offers a
// closed-form gambler's-ruin approximation and a Monte Carlo estimator that
// resamples observed session profits into simulated trajectories.
package ruin

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/lox/letitride/internal/session"
	"github.com/lox/letitride/internal/statistics"
)

const (
	// DefaultConfidenceLevel is used for the Wilson interval around the
	// Monte Carlo ruin probability when none is given.
	DefaultConfidenceLevel = 0.95

	// DefaultSimulationsPerLevel is the Monte Carlo trajectory count when
	// none is given.
	DefaultSimulationsPerLevel = 10000

	// minSessionResults is the smallest sample worth resampling from.
	minSessionResults = 10
)

// defaultBankrollUnits are the bankroll levels, in base-bet units, examined
// when the caller does not request specific levels.
var defaultBankrollUnits = []int{10, 20, 50, 100, 200}

// Options configures a risk-of-ruin calculation. The zero value selects
// defaults for every field. Seed drives the resampling: equal seeds produce
// equal reports regardless of worker count.
type Options struct {
	// BankrollUnits lists the bankroll levels to examine, in base-bet
	// units. Nil selects the default levels.
	BankrollUnits []int

	// BaseBet converts bankroll units to money. Zero infers the base bet
	// from the results' wagering totals: every played hand wagers exactly
	// three base bets whether or not they ride, so the base bet is
	// total wagered / (3 * total hands).
	BaseBet float64

	SimulationsPerLevel int
	ConfidenceLevel     float64
	Seed                int64

	// Workers bounds the Monte Carlo parallelism. Zero uses all CPUs.
	// The result is identical for every worker count.
	Workers int
}

// Result holds the risk estimates for one bankroll level. Loss25PctRisk is
// the probability of the bankroll falling to 75% of its starting value (a
// 25% loss), not of falling to a quarter; Loss50PctRisk likewise is the
// probability of a 50% loss. The Wilson interval covers RuinProbability.
type Result struct {
	BankrollUnits   int     `json:"bankroll_units"`
	Bankroll        float64 `json:"bankroll"`
	RuinProbability float64 `json:"ruin_probability"`
	CILower         float64 `json:"ci_lower"`
	CIUpper         float64 `json:"ci_upper"`
	Loss50PctRisk   float64 `json:"loss_50pct_risk"`
	Loss25PctRisk   float64 `json:"loss_25pct_risk"`
	AnalyticalRisk  float64 `json:"analytical_risk"`
}

// Report collects per-level results in the order the levels were requested,
// together with the inputs that produced them.
type Report struct {
	Results             []Result `json:"results"`
	BaseBet             float64  `json:"base_bet"`
	ConfidenceLevel     float64  `json:"confidence_level"`
	SimulationsPerLevel int      `json:"simulations_per_level"`
}

// Calculate estimates ruin risk at each requested bankroll level by
// resampling the observed per-session profits with replacement. All input
// validation happens before any Monte Carlo work.
func Calculate(results []session.SessionResult, opts Options) (Report, error) {
	if len(results) < minSessionResults {
		return Report{}, fmt.Errorf("need at least %d session results to resample, got %d",
			minSessionResults, len(results))
	}

	units := opts.BankrollUnits
	if units == nil {
		units = defaultBankrollUnits
	}
	if len(units) == 0 {
		return Report{}, errors.New("bankroll units must not be empty")
	}
	for _, u := range units {
		if u <= 0 {
			return Report{}, fmt.Errorf("bankroll units must be positive, got %d", u)
		}
	}

	confidence := opts.ConfidenceLevel
	if confidence == 0 {
		confidence = DefaultConfidenceLevel
	}
	if confidence <= 0 || confidence >= 1 {
		return Report{}, fmt.Errorf("confidence level must be strictly between 0 and 1, got %v", confidence)
	}

	sims := opts.SimulationsPerLevel
	if sims == 0 {
		sims = DefaultSimulationsPerLevel
	}
	if sims < 0 {
		return Report{}, fmt.Errorf("simulations per level must be positive, got %d", sims)
	}

	baseBet := opts.BaseBet
	if baseBet == 0 {
		inferred, err := inferBaseBet(results)
		if err != nil {
			return Report{}, err
		}
		baseBet = inferred
	}
	if baseBet <= 0 {
		return Report{}, fmt.Errorf("base bet must be positive, got %v", baseBet)
	}

	profits := make([]float64, len(results))
	for i, r := range results {
		profits[i] = r.SessionProfit
	}
	mean := stat.Mean(profits, nil)
	stdDev := stat.StdDev(profits, nil)

	minima, err := trajectoryMinima(profits, sims, opts.Seed, opts.Workers)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Results:             make([]Result, 0, len(units)),
		BaseBet:             baseBet,
		ConfidenceLevel:     confidence,
		SimulationsPerLevel: sims,
	}
	for _, u := range units {
		bankroll := float64(u) * baseBet

		ruined, halved, quartered := 0, 0, 0
		for _, m := range minima {
			if m <= -bankroll {
				ruined++
			}
			if m <= -bankroll/2 {
				halved++
			}
			if m <= -bankroll/4 {
				quartered++
			}
		}

		lower, upper, err := statistics.WilsonConfidenceInterval(ruined, sims, confidence)
		if err != nil {
			return Report{}, err
		}

		report.Results = append(report.Results, Result{
			BankrollUnits:   u,
			Bankroll:        bankroll,
			RuinProbability: float64(ruined) / float64(sims),
			CILower:         lower,
			CIUpper:         upper,
			Loss50PctRisk:   float64(halved) / float64(sims),
			Loss25PctRisk:   float64(quartered) / float64(sims),
			AnalyticalRisk:  AnalyticalProbability(mean, stdDev, bankroll),
		})
	}
	return report, nil
}

// expUnderflow is where math.Exp rounds to zero; saturate instead of
// computing exponentials that far out.
const expUnderflow = -745.0

// AnalyticalProbability is the closed-form gambler's-ruin approximation
// exp(-2*mean*bankroll/variance) for per-session profit moments. Sessions
// with non-positive expected profit ruin eventually with certainty; a
// zero-variance positive expectation never ruins.
func AnalyticalProbability(meanProfit, stdDevProfit, bankroll float64) float64 {
	if bankroll <= 0 {
		return 1
	}
	if meanProfit <= 0 {
		return 1
	}
	if stdDevProfit == 0 {
		return 0
	}
	exponent := -2 * meanProfit * bankroll / (stdDevProfit * stdDevProfit)
	if exponent < expUnderflow {
		return 0
	}
	return math.Exp(exponent)
}

func inferBaseBet(results []session.SessionResult) (float64, error) {
	totalWagered := 0.0
	totalHands := 0
	for _, r := range results {
		totalWagered += r.TotalWagered
		totalHands += r.HandsPlayed
	}
	if totalHands == 0 {
		return 0, errors.New("cannot infer base bet: no hands were played")
	}
	return totalWagered / (3 * float64(totalHands)), nil
}
