package rankings

import (
	"testing"

	"bench-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEfficiencyScores_BestProviderReadsExactly100(t *testing.T) {
	t.Parallel()

	results := []*models.BenchmarkResult{
		// groq: avg TPS 200, all succeeded, $0.001 per 100 tokens.
		{Provider: "groq", TotalLatencyMs: 1, TPS: floatPtr(200), Success: true, InputTokens: 50, OutputTokens: 50, CostUSD: 0.001},
		{Provider: "groq", TotalLatencyMs: 1, TPS: floatPtr(200), Success: true, InputTokens: 50, OutputTokens: 50, CostUSD: 0.001},
		// openai: slower and pricier.
		{Provider: "openai", TotalLatencyMs: 1, TPS: floatPtr(50), Success: true, InputTokens: 50, OutputTokens: 50, CostUSD: 0.01},
	}

	scores := EfficiencyScores(results)

	require.Len(t, scores, 2)
	assert.Equal(t, "groq", scores[0].Provider, "first-seen order")
	assert.Equal(t, 100, scores[0].Score, "batch maximum is pinned to 100")
	assert.Greater(t, scores[0].RawScore, scores[1].RawScore)
	assert.Less(t, scores[1].Score, 100)
	assert.Greater(t, scores[1].Score, 0)
}

func TestEfficiencyScores_FailuresDiscountThroughput(t *testing.T) {
	t.Parallel()

	allGood := rawEfficiency([]*models.BenchmarkResult{
		{Provider: "a", TotalLatencyMs: 1, TPS: floatPtr(100), Success: true, InputTokens: 50, OutputTokens: 50, CostUSD: 0.001},
		{Provider: "a", TotalLatencyMs: 1, TPS: floatPtr(100), Success: true, InputTokens: 50, OutputTokens: 50, CostUSD: 0.001},
	})
	halfGood := rawEfficiency([]*models.BenchmarkResult{
		{Provider: "a", TotalLatencyMs: 1, TPS: floatPtr(100), Success: true, InputTokens: 50, OutputTokens: 50, CostUSD: 0.001},
		{Provider: "a", TotalLatencyMs: 1, TPS: floatPtr(100), Success: false, InputTokens: 50, OutputTokens: 50, CostUSD: 0.001},
	})

	assert.InDelta(t, allGood/2, halfGood, 1e-9, "a 50% success rate halves the raw score")
}

func TestEfficiencyScores_NoCostOrTokenData(t *testing.T) {
	t.Parallel()

	results := []*models.BenchmarkResult{
		{Provider: "freebie", TotalLatencyMs: 1, TPS: floatPtr(100), Success: true},
	}

	scores := EfficiencyScores(results)

	require.Len(t, scores, 1)
	assert.Zero(t, scores[0].RawScore)
	assert.Zero(t, scores[0].Score, "an all-zero batch stays all-zero rather than normalizing 0/0")

	assert.Empty(t, EfficiencyScores(nil))
}
