package rankings

import (
	"fmt"
	"math"

	"bench-analytics/internal/models"
	"bench-analytics/internal/stats"
)

// p99MinSamples gates the P99/median ratio: below this many TTFT samples a
// 99th percentile is noise, so the ratio is pinned to 1.
const p99MinSamples = 10

// mtbfSamplesPerHour is the assumed measurement cadence: one probe every five
// minutes.
const mtbfSamplesPerHour = 12

// StabilityRatio relates a provider's tail latency to its median. A ratio
// close to 1 means the tail behaves like the median; large ratios flag
// providers whose p95/p99 blow up under load.
type StabilityRatio struct {
	Provider    string  `json:"provider"`
	P95ToMedian float64 `json:"p95ToMedian"`
	P99ToMedian float64 `json:"p99ToMedian"`
	SampleSize  int     `json:"sampleSize"`
}

// StabilityRatios computes per-provider tail ratios over each provider's own
// TTFT distribution, in first-seen provider order. Providers with fewer than
// 2 TTFT samples are skipped. Ratios default to 1 when the sample count is
// too small for the percentile to mean anything.
func StabilityRatios(results []*models.BenchmarkResult) []StabilityRatio {
	order, groups := providerOrder(results)

	var ratios []StabilityRatio
	for _, provider := range order {
		var ttfts []float64
		for _, r := range groups[provider] {
			if r.HasTTFT() {
				ttfts = append(ttfts, *r.TTFTMs)
			}
		}
		if len(ttfts) < 2 {
			continue
		}

		ratio := StabilityRatio{
			Provider:    provider,
			P95ToMedian: 1,
			P99ToMedian: 1,
			SampleSize:  len(ttfts),
		}
		median := stats.Median(ttfts)
		if median > 0 {
			ratio.P95ToMedian = roundRatio(stats.Percentile(ttfts, 95) / median)
			if len(ttfts) > p99MinSamples {
				ratio.P99ToMedian = roundRatio(stats.Percentile(ttfts, 99) / median)
			}
		}
		ratios = append(ratios, ratio)
	}
	return ratios
}

// MTBFLabel estimates mean time between failures from observed counts at the
// assumed 12-samples-per-hour cadence and renders it as a dashboard label:
//
//	"∞"     zero failures
//	"N/A"   fewer than 10 total requests (insufficient sample)
//	"99+h"  above 100 hours
//	"<0.1h" below 0.1 hours
//	"X.Xh"  otherwise
func MTBFLabel(totalRequests, successCount int) string {
	failures := totalRequests - successCount
	if failures <= 0 {
		return "∞"
	}
	if totalRequests < 10 {
		return "N/A"
	}

	hours := float64(totalRequests) / mtbfSamplesPerHour / float64(failures)
	switch {
	case hours > 100:
		return "99+h"
	case hours < 0.1:
		return "<0.1h"
	default:
		return fmt.Sprintf("%.1fh", hours)
	}
}

func roundRatio(v float64) float64 {
	return math.Round(v*10) / 10
}
