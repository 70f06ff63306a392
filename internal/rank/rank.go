// Package rank turns aggregated GitHub activity into a composite score and a letter grade.
package rank

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/profile-stats/internal/domain"
)

// metric describes how a single activity count contributes to the composite score.
type metric struct {
	name   string
	value  func(s domain.RawStats) int
	median float64
	spread float64
	weight float64
}

// metrics are summed in this order. Weights add up to 1.0.
var metrics = []metric{
	{name: "commits", value: func(s domain.RawStats) int { return s.Commits }, median: 250, spread: 1.5, weight: 0.30},
	{name: "prs", value: func(s domain.RawStats) int { return s.PullRequests }, median: 50, spread: 1.5, weight: 0.20},
	{name: "issues", value: func(s domain.RawStats) int { return s.Issues }, median: 25, spread: 1.5, weight: 0.10},
	{name: "reviews", value: func(s domain.RawStats) int { return s.Reviews }, median: 10, spread: 1.5, weight: 0.10},
	{name: "stars", value: func(s domain.RawStats) int { return s.Stars }, median: 50, spread: 1.5, weight: 0.15},
	{name: "followers", value: func(s domain.RawStats) int { return s.Followers }, median: 10, spread: 1.5, weight: 0.05},
	{name: "contributed_to", value: func(s domain.RawStats) int { return s.ContributedTo }, median: 5, spread: 1.0, weight: 0.10},
}

// threshold maps the lowest score that earns a label.
type threshold struct {
	min   float64
	label string
}

// thresholds are scanned from the highest down.
var thresholds = []threshold{
	{0.95, domain.RankSPlus},
	{0.85, domain.RankS},
	{0.75, domain.RankAPlusPlus},
	{0.65, domain.RankAPlus},
	{0.50, domain.RankA},
	{0.35, domain.RankBPlus},
	{0.20, domain.RankB},
}

// Subscore normalizes a count against a typical median on a log scale.
// The result is 0 for non-positive values and approaches 1 as the value grows.
func Subscore(value int, median, spread float64) float64 {
	if value <= 0 {
		return 0
	}
	z := (math.Log(float64(value)+1) - math.Log(median+1)) / spread
	// tanh approximates the log-normal CDF.
	return 0.5 * (1 + math.Tanh(z*0.7))
}

// Score computes the weighted composite of every metric, clamped to [0, 1].
func Score(s domain.RawStats) float64 {
	weighted := make(stats.Float64Data, 0, len(metrics))
	for _, m := range metrics {
		weighted = append(weighted, Subscore(m.value(s), m.median, m.spread)*m.weight)
	}
	// Sum only fails on empty input, and metrics is never empty.
	total, _ := stats.Sum(weighted)
	return math.Max(0, math.Min(total, 1.0))
}

// Round rounds a score to the given number of decimal places for display.
func Round(score float64, places int) float64 {
	rounded, err := stats.Round(score, places)
	if err != nil {
		// NaN is the only input Round rejects.
		return 0
	}
	return rounded
}

// LabelFor maps a score to its letter grade. Every score maps to exactly one label.
func LabelFor(score float64) string {
	for _, t := range thresholds {
		if score >= t.min {
			return t.label
		}
	}
	return domain.RankC
}

// Calculate produces the rank of the given stats.
func Calculate(s domain.RawStats) domain.RankResult {
	score := Score(s)
	return domain.RankResult{
		Score: score,
		Label: LabelFor(score),
	}
}
