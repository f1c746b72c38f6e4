// Package rankings derives the dashboard card values from aggregated provider
// metrics and raw benchmark results. Every function is pure and no-throw:
// same input, same output, and degenerate input (empty sets, single samples,
// zero costs) resolves to a documented default instead of an error.
package rankings

import (
	"math"
	"sort"

	"bench-analytics/internal/models"
)

// topN stable-sorts a copy of providers and returns the first n. Stability
// matters: providers tied on the sort key keep their incoming relative order.
func topN(providers []*models.ProviderMetrics, n int, less func(a, b *models.ProviderMetrics) bool) []*models.ProviderMetrics {
	sorted := make([]*models.ProviderMetrics, len(providers))
	copy(sorted, providers)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if n > len(sorted) {
		n = len(sorted)
	}
	if n < 0 {
		n = 0
	}
	return sorted[:n]
}

// TopFastest returns the n providers with the lowest average TTFT.
func TopFastest(providers []*models.ProviderMetrics, n int) []*models.ProviderMetrics {
	return topN(providers, n, func(a, b *models.ProviderMetrics) bool { return a.AvgTTFT < b.AvgTTFT })
}

// TopSlowest returns the n providers with the highest average TTFT.
func TopSlowest(providers []*models.ProviderMetrics, n int) []*models.ProviderMetrics {
	return topN(providers, n, func(a, b *models.ProviderMetrics) bool { return a.AvgTTFT > b.AvgTTFT })
}

// TopBestValue returns the n providers with the highest value score.
func TopBestValue(providers []*models.ProviderMetrics, n int) []*models.ProviderMetrics {
	return topN(providers, n, func(a, b *models.ProviderMetrics) bool { return a.ValueScore > b.ValueScore })
}

// TopMostStable returns the n providers with the lowest jitter.
func TopMostStable(providers []*models.ProviderMetrics, n int) []*models.ProviderMetrics {
	return topN(providers, n, func(a, b *models.ProviderMetrics) bool { return a.Jitter < b.Jitter })
}

// SpeedGap is the rounded ratio between the slowest and fastest TTFT sample
// in the raw result set. 0 when fewer than 2 results carry a usable TTFT.
func SpeedGap(results []*models.BenchmarkResult) float64 {
	var min, max float64
	var count int
	for _, r := range results {
		if !r.HasTTFT() {
			continue
		}
		ttft := *r.TTFTMs
		if count == 0 || ttft < min {
			min = ttft
		}
		if count == 0 || ttft > max {
			max = ttft
		}
		count++
	}
	if count < 2 || min <= 0 {
		return 0
	}
	return math.Round(max / min)
}

// CostSpread is the ratio between the most and least expensive provider's
// average blended price, rounded to one decimal. 0 when fewer than two
// providers have price data.
func CostSpread(providers []*models.ProviderMetrics) float64 {
	var min, max float64
	var count int
	for _, p := range providers {
		if p.AvgCost <= 0 {
			continue
		}
		if count == 0 || p.AvgCost < min {
			min = p.AvgCost
		}
		if count == 0 || p.AvgCost > max {
			max = p.AvgCost
		}
		count++
	}
	if count < 2 || min <= 0 {
		return 0
	}
	return math.Round((max/min)*10) / 10
}

// ReliabilityRate is the percentage of results that succeeded (success flag
// set or status code 200), rounded to one decimal. 0 for empty input.
func ReliabilityRate(results []*models.BenchmarkResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var successes int
	for _, r := range results {
		if r.Succeeded() {
			successes++
		}
	}
	pct := float64(successes) / float64(len(results)) * 100
	return math.Round(pct*10) / 10
}

// providerOrder returns the distinct provider keys of results in first-seen
// order, so per-provider derivations are deterministic for a given row order.
func providerOrder(results []*models.BenchmarkResult) ([]string, map[string][]*models.BenchmarkResult) {
	groups := make(map[string][]*models.BenchmarkResult, 8)
	var order []string
	for _, r := range results {
		key := r.ProviderKey()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}
	return order, groups
}
