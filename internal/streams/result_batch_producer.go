package streams

import (
	"context"

	"bench-analytics/internal/events"
	"bench-analytics/internal/models"

	"github.com/samber/lo"
)

// ResultBatchProducer splits an ingested batch by resolved provider key and
// publishes one ResultBatchEvent per provider to the partitioned queue.
//
// The partition key is the provider key, so all events for a provider are
// handled by the same consumer worker. That single-writer-per-provider lane
// keeps a provider's rows inserted in arrival order without any locking,
// while unrelated providers are persisted in parallel.
//
//go:generate mockgen -source=result_batch_producer.go -destination=./mocks/result_batch_producer_mock.go -package=mocks
type ResultBatchProducer interface {
	Produce(ctx context.Context, batch *models.ResultBatch) error
}

type resultBatchProducer struct {
	queue *PartitionedQueue[events.ResultBatchEvent]
}

func NewResultBatchProducer(queue *PartitionedQueue[events.ResultBatchEvent]) ResultBatchProducer {
	return &resultBatchProducer{
		queue: queue,
	}
}

func (producer *resultBatchProducer) Produce(ctx context.Context, batch *models.ResultBatch) error {
	byProvider := lo.GroupBy(batch.Results, func(r *models.BenchmarkResult) string {
		return r.ProviderKey()
	})

	for provider, results := range byProvider {
		event := events.ResultBatchEvent{
			BatchID:  batch.BatchID,
			RunID:    batch.RunID,
			Provider: provider,
			Results:  results,
		}

		if err := producer.publishResultBatchEvent(ctx, provider, event); err != nil {
			return err
		}
		metricResultBatchProducedTotal.WithLabelValues(streamResultBatch).Inc()
	}

	return nil
}

func (producer *resultBatchProducer) publishResultBatchEvent(ctx context.Context, partitionKey string, event events.ResultBatchEvent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// Partition by provider key (single-writer guarantee).
	producer.queue.Publish(partitionKey, event)
	return nil
}
