package rankings

import (
	"fmt"
	"testing"

	"bench-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultsWithTTFTs(provider string, ttfts ...float64) []*models.BenchmarkResult {
	results := make([]*models.BenchmarkResult, 0, len(ttfts))
	for _, ttft := range ttfts {
		v := ttft
		results = append(results, &models.BenchmarkResult{
			Provider: provider, TotalLatencyMs: v, TTFTMs: &v,
		})
	}
	return results
}

func TestStabilityRatios_SkipsProvidersWithTooFewSamples(t *testing.T) {
	t.Parallel()

	results := append(
		resultsWithTTFTs("steady", 100, 100, 100, 100),
		resultsWithTTFTs("single", 100)...,
	)
	results = append(results, &models.BenchmarkResult{Provider: "nottft", TotalLatencyMs: 100})

	ratios := StabilityRatios(results)

	require.Len(t, ratios, 1)
	assert.Equal(t, "steady", ratios[0].Provider)
}

func TestStabilityRatios_FlatDistributionReadsOne(t *testing.T) {
	t.Parallel()

	ratios := StabilityRatios(resultsWithTTFTs("steady", 100, 100, 100, 100))

	require.Len(t, ratios, 1)
	assert.Equal(t, 1.0, ratios[0].P95ToMedian)
	assert.Equal(t, 1.0, ratios[0].P99ToMedian)
	assert.Equal(t, 4, ratios[0].SampleSize)
}

func TestStabilityRatios_P99GatedOnSampleCount(t *testing.T) {
	t.Parallel()

	// 10 samples: p95 computed, p99 pinned to 1.
	small := resultsWithTTFTs("spiky", 100, 100, 100, 100, 100, 100, 100, 100, 100, 1000)
	ratios := StabilityRatios(small)
	require.Len(t, ratios, 1)
	assert.Greater(t, ratios[0].P95ToMedian, 1.0)
	assert.Equal(t, 1.0, ratios[0].P99ToMedian, "p99 needs more than 10 samples")

	// 11 samples: both tails computed.
	large := resultsWithTTFTs("spiky", 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 1000)
	ratios = StabilityRatios(large)
	require.Len(t, ratios, 1)
	assert.Greater(t, ratios[0].P99ToMedian, 1.0)
}

func TestMTBFLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total     int
		successes int
		expected  string
	}{
		// Zero failures wins over the small-sample rule.
		{total: 5, successes: 5, expected: "∞"},
		{total: 1000, successes: 1000, expected: "∞"},
		{total: 9, successes: 5, expected: "N/A"},
		// 240 requests / 12 per hour / 1 failure = 20h.
		{total: 240, successes: 239, expected: "20.0h"},
		// 2400 requests / 12 per hour / 1 failure = 200h.
		{total: 2400, successes: 2399, expected: "99+h"},
		// 120 requests / 12 per hour / 110 failures < 0.1h.
		{total: 120, successes: 10, expected: "<0.1h"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.successes, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.expected, MTBFLabel(tt.total, tt.successes))
		})
	}
}
