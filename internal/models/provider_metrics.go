package models

import "time"

// JitterColor is the traffic-light stability classification of a provider.
type JitterColor string

const (
	JitterGreen  JitterColor = "green"
	JitterYellow JitterColor = "yellow"
	JitterRed    JitterColor = "red"
)

// ProviderMetrics is the per-provider summary produced by one aggregation pass
// over a time window of benchmark results. It is ephemeral: recomputed on every
// fetch, never persisted, and owned by the aggregator that returned it. Callers
// that need a filtered view filter the raw results and re-aggregate.
//
// The speed fields (AvgTTFT through P95TTFT) are computed only over results
// with a present, positive TTFT sample and default to 0 when none exist.
// Jitter is the population standard deviation of total request latency across
// all results in the group, TTFT-less rows included: stability is measured on
// the raw request, speed on the token-level sub-metric.
type ProviderMetrics struct {
	Provider            string `json:"provider"`
	ProviderDisplayName string `json:"providerDisplayName"`

	AvgTTFT float64 `json:"avgTtft"`
	MinTTFT float64 `json:"minTtft"`
	MaxTTFT float64 `json:"maxTtft"`
	P50TTFT float64 `json:"p50Ttft"`
	P95TTFT float64 `json:"p95Ttft"`

	Jitter      float64     `json:"jitter"`
	JitterColor JitterColor `json:"jitterColor"`

	ValueScore float64 `json:"valueScore"`
	AvgTPS     float64 `json:"avgTps"`
	AvgCost    float64 `json:"avgCost"`

	SampleSize  int       `json:"sampleSize"`
	LastUpdated time.Time `json:"lastUpdated"`
}
