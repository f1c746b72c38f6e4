package aggregators

import (
	"bench-analytics/internal/models"
	"bench-analytics/internal/stats"

	"github.com/samber/lo"
)

//go:generate mockgen -source=provider_aggregator.go -destination=./mocks/provider_aggregator_mock.go -package=mocks
type ProviderAggregator interface {
	// AggregateProvider reduces one provider's results to a ProviderMetrics
	// summary. It never fails: missing or malformed numeric fields degrade to
	// zero defaults so a partial snapshot from the measurement pipeline can
	// never take the dashboard down.
	AggregateProvider(provider string, results []*models.BenchmarkResult) *models.ProviderMetrics

	// AggregateAll groups results by resolved provider key and aggregates
	// each group. Rows with no resolvable provider land in the "unknown"
	// group, never silently dropped.
	AggregateAll(results []*models.BenchmarkResult) map[string]*models.ProviderMetrics
}

type providerAggregator struct {
	thresholds JitterThresholds
}

func NewProviderAggregator(thresholds JitterThresholds) ProviderAggregator {
	return &providerAggregator{thresholds: thresholds}
}

// AggregateProvider computes the summary for a single provider group.
//
// LastUpdated is taken from the first result in the slice, so callers that
// need "timestamp of the most recent result" must pass results ordered newest
// first (the result store guarantees created_at DESC ordering).
func (a *providerAggregator) AggregateProvider(provider string, results []*models.BenchmarkResult) *models.ProviderMetrics {
	metrics := &models.ProviderMetrics{
		Provider:            provider,
		ProviderDisplayName: models.DisplayName(provider),
		SampleSize:          len(results),
	}

	if len(results) > 0 {
		metrics.LastUpdated = results[0].CreatedAt
	}

	// Speed stats only over results with a present, positive TTFT.
	ttfts := make([]float64, 0, len(results))
	for _, r := range results {
		if r.HasTTFT() {
			ttfts = append(ttfts, *r.TTFTMs)
		}
	}
	metrics.AvgTTFT = stats.Mean(ttfts)
	metrics.MinTTFT = stats.Min(ttfts)
	metrics.MaxTTFT = stats.Max(ttfts)
	metrics.P50TTFT = stats.Median(ttfts)
	metrics.P95TTFT = stats.Percentile(ttfts, 95)

	// Jitter is measured over every result's total latency, TTFT-less rows
	// included. Stability and speed intentionally see different populations.
	latencies := lo.Map(results, func(r *models.BenchmarkResult, _ int) float64 {
		return r.TotalLatencyMs
	})
	metrics.Jitter = stats.StdDev(latencies)
	metrics.JitterColor = ClassifyJitter(metrics.Jitter, a.thresholds)

	// Value score collapses to 0 at this boundary, not null.
	if score, ok := AvgValueScore(results); ok {
		metrics.ValueScore = score
	}

	var tpsValues []float64
	for _, r := range results {
		if r.TPS != nil {
			tpsValues = append(tpsValues, *r.TPS)
		}
	}
	metrics.AvgTPS = stats.Mean(tpsValues)

	var prices []float64
	for _, r := range results {
		if price := BlendedPricePerMillion(r); price > 0 {
			prices = append(prices, price)
		}
	}
	metrics.AvgCost = stats.Mean(prices)

	return metrics
}

func (a *providerAggregator) AggregateAll(results []*models.BenchmarkResult) map[string]*models.ProviderMetrics {
	grouped := lo.GroupBy(results, func(r *models.BenchmarkResult) string {
		return r.ProviderKey()
	})

	aggregated := make(map[string]*models.ProviderMetrics, len(grouped))
	for provider, group := range grouped {
		aggregated[provider] = a.AggregateProvider(provider, group)
	}
	return aggregated
}

// ProvidersInOrder returns the distinct provider keys of results in first-seen
// order. Rankings sort a copy of this list, so ties keep the order the rows
// arrived in.
func ProvidersInOrder(results []*models.BenchmarkResult) []string {
	seen := make(map[string]struct{}, 8)
	var order []string
	for _, r := range results {
		key := r.ProviderKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		order = append(order, key)
	}
	return order
}
