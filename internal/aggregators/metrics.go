package aggregators

import (
	"bench-analytics/internal/shared/metrics"
)

// metricSnapshotComputedTotal counts full snapshot recomputations per query
// window. Cache hits do not increment it, so the rate of this metric against
// the HTTP request rate is the effective cache miss ratio.
var (
	metricSnapshotComputedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "snapshot_computed_total",
		},
		[]string{"window"},
	)
)
