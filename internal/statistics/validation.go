package statistics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lox/letitride/internal/evaluator"
)

// DefaultSignificanceLevel is the chi-square significance threshold used
// when callers have no reason to pick another.
const DefaultSignificanceLevel = 0.05

// nonRandomPValue is stricter than any sensible significance level; a
// p-value this low on a correctly seeded simulation suggests the deal
// itself is biased, which warrants a warning on top of the test verdict.
const nonRandomPValue = 0.01

// Win rates outside this band are implausible for any Let It Ride strategy
// and usually mean a broken payout or stop-condition path.
const (
	lowWinRate  = 0.1
	highWinRate = 0.9
)

// handDistribution holds the five-card combination counts out of
// C(52,5) = 2,598,960. The chi-square loop iterates this slice so the
// statistic accumulates in a fixed category order.
var handDistribution = []struct {
	name         string
	combinations float64
}{
	{"high_card", 1302540},
	{"pair", 1098240},
	{"two_pair", 123552},
	{"three_of_a_kind", 54912},
	{"straight", 10200},
	{"flush", 5108},
	{"full_house", 3744},
	{"four_of_a_kind", 624},
	{"straight_flush", 36},
	{"royal_flush", 4},
}

const totalFiveCardHands = 2598960.0

// The paytable splits the theoretical pair bucket at tens: 422,400 of the
// 1,098,240 pair combinations are tens or better.
const (
	lowPairCombinations      = 675840.0
	tensOrBetterCombinations = 422400.0
)

// TheoreticalProbability returns the exact five-card probability of a hand
// category as the evaluator names it, with the pair bucket split into
// low_pair and tens_or_better. ok is false for unknown names.
func TheoreticalProbability(name string) (p float64, ok bool) {
	switch name {
	case evaluator.LowPair.String():
		return lowPairCombinations / totalFiveCardHands, true
	case evaluator.TensOrBetter.String():
		return tensOrBetterCombinations / totalFiveCardHands, true
	}
	for _, c := range handDistribution {
		if c.name == name {
			return c.combinations / totalFiveCardHands, true
		}
	}
	return 0, false
}

// ChiSquareResult reports a goodness-of-fit test of observed hand
// frequencies against the theoretical five-card distribution.
type ChiSquareResult struct {
	Statistic         float64 `json:"statistic"`
	PValue            float64 `json:"p_value"`
	DegreesOfFreedom  int     `json:"degrees_of_freedom"`
	SignificanceLevel float64 `json:"significance_level"`
	Passed            bool    `json:"passed"`
}

// ValidationReport combines the chi-square verdict with plausibility
// warnings. IsValid is false when the test fails or any warning signals an
// extreme condition.
type ValidationReport struct {
	ChiSquare ChiSquareResult `json:"chi_square"`
	Warnings  []string        `json:"warnings"`
	IsValid   bool            `json:"is_valid"`
}

// CalculateChiSquare tests observed hand-category counts against the
// theoretical five-card probabilities. Keys must use the merged theoretical
// category names (a single "pair" bucket); see ValidateSimulation for the
// merge. significanceLevel must lie strictly between 0 and 1.
func CalculateChiSquare(observed map[string]int, significanceLevel float64) (ChiSquareResult, error) {
	if significanceLevel <= 0 || significanceLevel >= 1 {
		return ChiSquareResult{}, fmt.Errorf("significance level must be strictly between 0 and 1, got %v", significanceLevel)
	}
	if len(observed) == 0 {
		return ChiSquareResult{}, errors.New("no observed hand frequencies")
	}

	total := 0
	for name, count := range observed {
		if !knownCategory(name) {
			return ChiSquareResult{}, fmt.Errorf("unknown hand category %q", name)
		}
		if count < 0 {
			return ChiSquareResult{}, fmt.Errorf("hand category %q has negative count %d", name, count)
		}
		total += count
	}
	if total == 0 {
		return ChiSquareResult{}, errors.New("observed hand frequencies sum to zero")
	}

	statistic := 0.0
	for _, cat := range handDistribution {
		expected := float64(total) * cat.combinations / totalFiveCardHands
		diff := float64(observed[cat.name]) - expected
		statistic += diff * diff / expected
	}

	df := len(handDistribution) - 1
	pValue := distuv.ChiSquared{K: float64(df)}.Survival(statistic)

	return ChiSquareResult{
		Statistic:         statistic,
		PValue:            pValue,
		DegreesOfFreedom:  df,
		SignificanceLevel: significanceLevel,
		Passed:            pValue >= significanceLevel,
	}, nil
}

func knownCategory(name string) bool {
	for _, cat := range handDistribution {
		if cat.name == name {
			return true
		}
	}
	return false
}

// WilsonConfidenceInterval returns the Wilson score interval for a binomial
// proportion. It stays inside [0, 1] even for proportions at the edges,
// unlike the normal approximation. confidenceLevel must lie strictly
// between 0 and 1.
func WilsonConfidenceInterval(successes, total int, confidenceLevel float64) (lower, upper float64, err error) {
	if total <= 0 {
		return 0, 0, fmt.Errorf("total must be positive, got %d", total)
	}
	if successes < 0 {
		return 0, 0, fmt.Errorf("successes must not be negative, got %d", successes)
	}
	if successes > total {
		return 0, 0, fmt.Errorf("successes %d exceeds total %d", successes, total)
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return 0, 0, fmt.Errorf("confidence level must be strictly between 0 and 1, got %v", confidenceLevel)
	}

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - (1-confidenceLevel)/2)
	n := float64(total)
	p := float64(successes) / n

	denom := 1 + z*z/n
	center := (p + z*z/(2*n)) / denom
	margin := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n)) / denom

	lower = math.Max(0, center-margin)
	upper = math.Min(1, center+margin)
	return lower, upper, nil
}

// ValidateSimulation checks that an aggregate looks like the output of a
// fair simulation: the hand distribution passes a chi-square test and the
// session win rate is plausible. The simulator's low-pair/tens-or-better
// split is folded into the single theoretical pair category before testing.
// A zero-hand aggregate yields an invalid report with a warning rather than
// an error.
func ValidateSimulation(stats AggregateStatistics, significanceLevel float64) (ValidationReport, error) {
	if stats.TotalSessions == 0 || stats.TotalHands == 0 {
		return ValidationReport{
			Warnings: []string{"no hands played; nothing to validate"},
		}, nil
	}

	chi, err := CalculateChiSquare(mergePairCategories(stats.HandFrequencies), significanceLevel)
	if err != nil {
		return ValidationReport{}, err
	}

	var warnings []string
	invalid := !chi.Passed
	if chi.PValue < nonRandomPValue {
		warnings = append(warnings, fmt.Sprintf(
			"chi-square p-value %.4f is very low; hand distribution looks non-random", chi.PValue))
		invalid = true
	}
	if stats.WinRate < lowWinRate || stats.WinRate > highWinRate {
		warnings = append(warnings, fmt.Sprintf(
			"session win rate %.3f is unusually extreme", stats.WinRate))
		invalid = true
	}

	return ValidationReport{
		ChiSquare: chi,
		Warnings:  warnings,
		IsValid:   !invalid,
	}, nil
}

// mergePairCategories folds the simulator's pair split into the theoretical
// "pair" bucket the chi-square distribution uses.
func mergePairCategories(freqs map[string]int) map[string]int {
	merged := make(map[string]int, len(freqs))
	for name, count := range freqs {
		switch name {
		case evaluator.LowPair.String(), evaluator.TensOrBetter.String():
			merged["pair"] += count
		default:
			merged[name] += count
		}
	}
	return merged
}
