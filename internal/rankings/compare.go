package rankings

import (
	"fmt"
	"math"

	"bench-analytics/internal/models"
)

// equalTolerance is the absolute delta under which two metric values read as
// a tie.
const equalTolerance = 0.01

// ComparisonSide is one provider+model identity reduced to the metrics the
// head-to-head view compares.
type ComparisonSide struct {
	Provider       string  `json:"provider"`
	Model          string  `json:"model"`
	AvgTTFT        float64 `json:"avgTtft"`
	AvgTPS         float64 `json:"avgTps"`
	CostPerMillion float64 `json:"costPerMillion"`
	Jitter         float64 `json:"jitter"`
	ReliabilityPct float64 `json:"reliabilityPct"`
	SampleSize     int     `json:"sampleSize"`
}

// MetricComparison is one row of the head-to-head table: both values, the
// winning side's provider key ("" on a tie), and a human-readable delta.
type MetricComparison struct {
	Metric string  `json:"metric"`
	A      float64 `json:"a"`
	B      float64 `json:"b"`
	Winner string  `json:"winner"`
	Delta  string  `json:"delta"`
}

type metricSpec struct {
	name          string
	lowerIsBetter bool
	percentage    bool
	comparative   string // "faster", "higher", ...
	value         func(s ComparisonSide) float64
}

var comparisonMetrics = []metricSpec{
	{name: "ttft", lowerIsBetter: true, comparative: "faster", value: func(s ComparisonSide) float64 { return s.AvgTTFT }},
	{name: "tps", comparative: "higher", value: func(s ComparisonSide) float64 { return s.AvgTPS }},
	{name: "cost", lowerIsBetter: true, comparative: "cheaper", value: func(s ComparisonSide) float64 { return s.CostPerMillion }},
	{name: "jitter", lowerIsBetter: true, comparative: "steadier", value: func(s ComparisonSide) float64 { return s.Jitter }},
	{name: "reliability", percentage: true, value: func(s ComparisonSide) float64 { return s.ReliabilityPct }},
}

// CompareSides computes one MetricComparison per metric. Equal within 0.01 is
// a tie. Rate-like metrics render the larger/smaller ratio ("1.5× faster");
// percentage metrics render the absolute point difference ("+3.2%"). A ratio
// against a zero value is meaningless, so the delta degrades to "n/a" while
// the winner is still reported.
func CompareSides(a, b ComparisonSide) []MetricComparison {
	comparisons := make([]MetricComparison, 0, len(comparisonMetrics))
	for _, spec := range comparisonMetrics {
		va, vb := spec.value(a), spec.value(b)
		row := MetricComparison{Metric: spec.name, A: va, B: vb}

		if math.Abs(va-vb) < equalTolerance {
			row.Delta = "Equal"
			comparisons = append(comparisons, row)
			continue
		}

		aWins := va > vb
		if spec.lowerIsBetter {
			aWins = va < vb
		}
		if aWins {
			row.Winner = a.Provider
		} else {
			row.Winner = b.Provider
		}

		if spec.percentage {
			row.Delta = fmt.Sprintf("+%.1f%%", math.Abs(va-vb))
		} else {
			larger, smaller := math.Max(va, vb), math.Min(va, vb)
			if smaller <= 0 {
				row.Delta = "n/a"
			} else {
				row.Delta = fmt.Sprintf("%.1f× %s", roundRatio(larger/smaller), spec.comparative)
			}
		}
		comparisons = append(comparisons, row)
	}
	return comparisons
}

// SideFromMetrics builds a ComparisonSide from an aggregated provider summary
// plus the reliability rate of the same rows (reliability is a raw-result
// derivation, not part of ProviderMetrics).
func SideFromMetrics(metrics *models.ProviderMetrics, model string, reliabilityPct float64) ComparisonSide {
	return ComparisonSide{
		Provider:       metrics.Provider,
		Model:          model,
		AvgTTFT:        metrics.AvgTTFT,
		AvgTPS:         metrics.AvgTPS,
		CostPerMillion: metrics.AvgCost,
		Jitter:         metrics.Jitter,
		ReliabilityPct: reliabilityPct,
		SampleSize:     metrics.SampleSize,
	}
}
