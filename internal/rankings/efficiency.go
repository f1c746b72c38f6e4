package rankings

import (
	"math"

	"bench-analytics/internal/models"
	"bench-analytics/internal/stats"
)

// EfficiencyScore combines throughput, reliability and cost into one number
// per provider.
//
// Score is normalized across the batch: every raw score is divided by the
// batch maximum and scaled to 0-100, so the best provider in any given window
// always reads exactly 100 and the number is only meaningful relative to the
// other providers in the same query. RawScore is the unnormalized absolute
// value (tokens/sec of successful throughput per dollar-per-million-tokens)
// for callers that need a batch-independent unit.
type EfficiencyScore struct {
	Provider string  `json:"provider"`
	Score    int     `json:"score"`
	RawScore float64 `json:"rawScore"`
}

// EfficiencyScores computes per-provider efficiency over the full result set,
// in first-seen provider order. Providers with no cost or token data get a
// raw score of 0. Empty input returns an empty slice.
func EfficiencyScores(results []*models.BenchmarkResult) []EfficiencyScore {
	order, groups := providerOrder(results)
	if len(order) == 0 {
		return nil
	}

	scores := make([]EfficiencyScore, 0, len(order))
	var maxRaw float64
	for _, provider := range order {
		raw := rawEfficiency(groups[provider])
		if raw > maxRaw {
			maxRaw = raw
		}
		scores = append(scores, EfficiencyScore{Provider: provider, RawScore: raw})
	}

	if maxRaw <= 0 {
		return scores
	}
	for i := range scores {
		scores[i].Score = int(math.Round(scores[i].RawScore / maxRaw * 100))
	}
	return scores
}

func rawEfficiency(results []*models.BenchmarkResult) float64 {
	if len(results) == 0 {
		return 0
	}

	var tpsValues []float64
	var successes int
	var totalCost float64
	var totalTokens int64
	for _, r := range results {
		if r.TPS != nil {
			tpsValues = append(tpsValues, *r.TPS)
		}
		if r.Succeeded() {
			successes++
		}
		totalCost += r.CostUSD
		totalTokens += r.TotalTokens()
	}

	if totalTokens <= 0 || totalCost <= 0 {
		return 0
	}

	avgTPS := stats.Mean(tpsValues)
	successRate := float64(successes) / float64(len(results))
	costPerToken := totalCost / float64(totalTokens)

	return avgTPS * successRate / (costPerToken * 1_000_000)
}
