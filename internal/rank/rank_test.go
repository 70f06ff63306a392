package rank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naka-gawa/profile-stats/internal/domain"
)

func TestSubscore_MonotonicAndBounded(t *testing.T) {
	for _, m := range metrics {
		t.Run(m.name, func(t *testing.T) {
			prev := Subscore(0, m.median, m.spread)
			assert.Equal(t, 0.0, prev)
			for v := 1; v <= 20000; v += 7 {
				got := Subscore(v, m.median, m.spread)
				assert.GreaterOrEqual(t, got, prev, "value %d", v)
				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, 1.0)
				prev = got
			}
		})
	}
}

func TestSubscore_AtMedianIsHalf(t *testing.T) {
	assert.Equal(t, 0.5, Subscore(250, 250, 1.5))
	assert.Equal(t, 0.5, Subscore(5, 5, 1.0))
	assert.Equal(t, 0.0, Subscore(-3, 5, 1.0))
}

func TestWeightsSumToOne(t *testing.T) {
	var total float64
	for _, m := range metrics {
		total += m.weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestLabelFor(t *testing.T) {
	testCases := []struct {
		score    float64
		expected string
	}{
		{1.0, domain.RankSPlus},
		{0.95, domain.RankSPlus},
		{0.94, domain.RankS},
		{0.85, domain.RankS},
		{0.80, domain.RankAPlusPlus},
		{0.65, domain.RankAPlus},
		{0.50, domain.RankA},
		{0.49, domain.RankBPlus},
		{0.35, domain.RankBPlus},
		{0.20, domain.RankB},
		{0.19, domain.RankC},
		{0.0, domain.RankC},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, LabelFor(tc.score), "score %v", tc.score)
	}
}

func TestLabelFor_TotalOverUnitInterval(t *testing.T) {
	valid := map[string]bool{}
	for _, th := range thresholds {
		valid[th.label] = true
	}
	valid[domain.RankC] = true

	for i := 0; i <= 1000; i++ {
		label := LabelFor(float64(i) / 1000)
		assert.True(t, valid[label], "unexpected label %q", label)
	}
}

func TestCalculate(t *testing.T) {
	testCases := []struct {
		name          string
		stats         domain.RawStats
		expectedLabel string
		check         func(t *testing.T, score float64)
	}{
		{
			name: "every metric at its median scores one half",
			stats: domain.RawStats{
				Commits: 250, PullRequests: 50, Issues: 25, Reviews: 10,
				Stars: 50, Followers: 10, ContributedTo: 5,
			},
			expectedLabel: domain.RankA,
			check: func(t *testing.T, score float64) {
				assert.InDelta(t, 0.5, score, 1e-9)
			},
		},
		{
			name:          "no activity scores zero",
			stats:         domain.RawStats{Name: "nobody"},
			expectedLabel: domain.RankC,
			check: func(t *testing.T, score float64) {
				assert.Equal(t, 0.0, score)
			},
		},
		{
			name: "huge activity stays within bounds",
			stats: domain.RawStats{
				Commits: 5_000_000, PullRequests: 900_000, Issues: 400_000, Reviews: 300_000,
				Stars: 2_000_000, Followers: 1_000_000, ContributedTo: 50_000,
			},
			expectedLabel: domain.RankSPlus,
			check: func(t *testing.T, score float64) {
				assert.LessOrEqual(t, score, 1.0)
				assert.Greater(t, score, 0.95)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Calculate(tc.stats)
			assert.Equal(t, tc.expectedLabel, result.Label)
			tc.check(t, result.Score)
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.57, Round(0.5678, 2))
	assert.Equal(t, 0.5, Round(0.5, 2))
	assert.Equal(t, 1.0, Round(0.999, 2))
	assert.Equal(t, 0.0, Round(math.NaN(), 2))
}
