package caches

import (
	"bench-analytics/internal/shared/metrics"
)

var (
	metricSnapshotCacheHits = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCache,
			Name:      "snapshot_hits_total",
		},
		[]string{},
	)

	metricSnapshotCacheMisses = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCache,
			Name:      "snapshot_misses_total",
		},
		[]string{},
	)
)
