package streams

import (
	"bench-analytics/internal/shared/metrics"
)

var (
	streamResultBatch              = "result_batch"
	metricResultBatchProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "result_batch_published_total",
		},
		[]string{"stream_id"},
	)

	metricResultBatchConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "result_batch_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)
)
