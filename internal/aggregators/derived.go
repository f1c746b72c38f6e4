package aggregators

import (
	"math"

	"bench-analytics/internal/models"
)

const (
	// DefaultJitterGreenMs and DefaultJitterYellowMs are the default stability
	// classification thresholds. Jitter below green is green, below yellow is
	// yellow, everything else red. Thresholds are exclusive upper bounds on
	// the lower band: jitter of exactly 200 is yellow, exactly 500 is red.
	DefaultJitterGreenMs  = 200.0
	DefaultJitterYellowMs = 500.0

	// minCostPerMillion floors the blended price when cost rounds to zero so
	// the value score never divides by zero.
	minCostPerMillion = 0.01
)

// JitterThresholds carries the configurable jitter classification bounds.
type JitterThresholds struct {
	GreenMs  float64
	YellowMs float64
}

// DefaultJitterThresholds returns the stock green/yellow bounds.
func DefaultJitterThresholds() JitterThresholds {
	return JitterThresholds{GreenMs: DefaultJitterGreenMs, YellowMs: DefaultJitterYellowMs}
}

// ClassifyJitter maps a jitter value to its traffic-light color.
func ClassifyJitter(jitter float64, t JitterThresholds) models.JitterColor {
	switch {
	case jitter < t.GreenMs:
		return models.JitterGreen
	case jitter < t.YellowMs:
		return models.JitterYellow
	default:
		return models.JitterRed
	}
}

// ValueScore derives the "tokens of throughput per dollar" score for a single
// result: round(tps / costPerMillionTokens). The second return is false when
// the result contributes no score: absent or non-positive TPS, or zero total
// tokens. A non-positive blended price is floored at 0.01 rather than treated
// as missing.
func ValueScore(r *models.BenchmarkResult) (float64, bool) {
	if r.TPS == nil || *r.TPS <= 0 {
		return 0, false
	}
	totalTokens := r.TotalTokens()
	if totalTokens == 0 {
		return 0, false
	}

	costPerMillion := (r.CostUSD / float64(totalTokens)) * 1_000_000
	if costPerMillion <= 0 {
		costPerMillion = minCostPerMillion
	}
	return math.Round(*r.TPS / costPerMillion), true
}

// AvgValueScore averages the value scores of the qualifying results in rs and
// rounds. The second return is false when no result qualifies.
func AvgValueScore(rs []*models.BenchmarkResult) (float64, bool) {
	var sum float64
	var count int
	for _, r := range rs {
		if score, ok := ValueScore(r); ok {
			sum += score
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return math.Round(sum / float64(count)), true
}

// BlendedPricePerMillion is the cost of the call expressed as dollars per
// million tokens, 0 when the result has no tokens or no cost.
func BlendedPricePerMillion(r *models.BenchmarkResult) float64 {
	totalTokens := r.TotalTokens()
	if totalTokens <= 0 || r.CostUSD <= 0 {
		return 0
	}
	return (r.CostUSD / float64(totalTokens)) * 1_000_000
}
