package rankings

import (
	"testing"

	"bench-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func metricsFixture() []*models.ProviderMetrics {
	return []*models.ProviderMetrics{
		{Provider: "groq", AvgTTFT: 100, Jitter: 50, ValueScore: 3000, AvgCost: 0.5},
		{Provider: "openai", AvgTTFT: 800, Jitter: 300, ValueScore: 40, AvgCost: 10},
		{Provider: "anthropic", AvgTTFT: 400, Jitter: 120, ValueScore: 90, AvgCost: 8},
	}
}

func TestTopRankings(t *testing.T) {
	t.Parallel()

	providers := metricsFixture()

	fastest := TopFastest(providers, 2)
	require.Len(t, fastest, 2)
	assert.Equal(t, "groq", fastest[0].Provider)
	assert.Equal(t, "anthropic", fastest[1].Provider)

	slowest := TopSlowest(providers, 1)
	require.Len(t, slowest, 1)
	assert.Equal(t, "openai", slowest[0].Provider)

	bestValue := TopBestValue(providers, 1)
	require.Len(t, bestValue, 1)
	assert.Equal(t, "groq", bestValue[0].Provider)

	mostStable := TopMostStable(providers, 3)
	require.Len(t, mostStable, 3)
	assert.Equal(t, "groq", mostStable[0].Provider)

	// The input slice order must survive ranking.
	assert.Equal(t, "groq", providers[0].Provider)
	assert.Equal(t, "openai", providers[1].Provider)
}

func TestTopRankings_TiesKeepIncomingOrder(t *testing.T) {
	t.Parallel()

	providers := []*models.ProviderMetrics{
		{Provider: "first", Jitter: 100},
		{Provider: "second", Jitter: 100},
		{Provider: "third", Jitter: 100},
	}

	stable := TopMostStable(providers, 3)
	assert.Equal(t, "first", stable[0].Provider)
	assert.Equal(t, "second", stable[1].Provider)
	assert.Equal(t, "third", stable[2].Provider)
}

func TestTopRankings_NLargerThanInput(t *testing.T) {
	t.Parallel()

	providers := metricsFixture()
	assert.Len(t, TopFastest(providers, 10), 3)
	assert.Empty(t, TopFastest(nil, 3))
}

func TestSpeedGap(t *testing.T) {
	t.Parallel()

	results := []*models.BenchmarkResult{
		{TotalLatencyMs: 1, TTFTMs: floatPtr(98)},
		{TotalLatencyMs: 1, TTFTMs: floatPtr(510)},
		{TotalLatencyMs: 1}, // no TTFT, ignored
	}
	assert.Equal(t, 5.0, SpeedGap(results), "510/98 rounds to 5")

	assert.Zero(t, SpeedGap(nil))
	assert.Zero(t, SpeedGap([]*models.BenchmarkResult{
		{TotalLatencyMs: 1, TTFTMs: floatPtr(100)},
	}), "a single TTFT sample has no gap")
}

func TestCostSpread(t *testing.T) {
	t.Parallel()

	providers := []*models.ProviderMetrics{
		{Provider: "a", AvgCost: 0.5},
		{Provider: "b", AvgCost: 10},
		{Provider: "c"}, // no price data, ignored
	}
	assert.Equal(t, 20.0, CostSpread(providers))

	assert.Zero(t, CostSpread(nil))
	assert.Zero(t, CostSpread([]*models.ProviderMetrics{{Provider: "a", AvgCost: 5}}))
	assert.Zero(t, CostSpread([]*models.ProviderMetrics{
		{Provider: "a"}, {Provider: "b"},
	}), "providers without price data do not form a spread")
}

func TestReliabilityRate(t *testing.T) {
	t.Parallel()

	statusOK := 200
	statusErr := 500

	tests := []struct {
		name     string
		results  []*models.BenchmarkResult
		expected float64
	}{
		{name: "empty", results: nil, expected: 0},
		{
			name: "all failed",
			results: []*models.BenchmarkResult{
				{StatusCode: &statusErr}, {Success: false},
			},
			expected: 0,
		},
		{
			name: "all succeeded",
			results: []*models.BenchmarkResult{
				{Success: true}, {StatusCode: &statusOK},
			},
			expected: 100,
		},
		{
			name: "two of three",
			results: []*models.BenchmarkResult{
				{Success: true}, {Success: true}, {StatusCode: &statusErr},
			},
			expected: 66.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReliabilityRate(tt.results))
		})
	}
}
