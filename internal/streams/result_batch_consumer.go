package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"bench-analytics/internal/events"
	"bench-analytics/internal/shared/loggers"
	"bench-analytics/internal/shared/metrics"
	"bench-analytics/internal/shared/svcerrors"
	"bench-analytics/internal/shared/ulid"
	"bench-analytics/internal/stores"
)

//go:generate mockgen -source=result_batch_consumer.go -destination=./mocks/result_batch_consumer_mock.go -package=mocks
type ResultBatchConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type resultBatchConsumer struct {
	queue       *PartitionedQueue[events.ResultBatchEvent]
	resultStore stores.ResultStore

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewResultBatchConsumer(queue *PartitionedQueue[events.ResultBatchEvent], resultStore stores.ResultStore, logger loggers.Logger) ResultBatchConsumer {
	return &resultBatchConsumer{
		queue:       queue,
		resultStore: resultStore,
		stopCh:      make(chan struct{}),
		logger:      logger,
	}
}

// Start spawns 1 worker goroutine per partition. Each partition is a
// single-writer lane for provider keys routed by the producer.
func (consumer *resultBatchConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		partitionIndex := partitionIndex
		ch := consumer.queue.partitions[partitionIndex]
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

// Stop waits for workers to stop (best called during app shutdown).
func (consumer *resultBatchConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *resultBatchConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.ResultBatchEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case event := <-ch:
			consumer.handleEvent(ctx, partitionIndex, event)
		}
	}
}

func (consumer *resultBatchConsumer) handleEvent(ctx context.Context, partitionIndex int, event events.ResultBatchEvent) {
	// Panic recovery keeps a poisoned event from killing the worker.
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("consumer panic recovered: %v", r)

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricResultBatchConsumedTotal.WithLabelValues(streamResultBatch, svcErr.Code).Inc()
		}
	}()

	ctx = consumer.logger.With().
		Str(loggers.FieldPartitionId, fmt.Sprintf("%d", partitionIndex)).
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Logger().WithContext(ctx)

	if err := consumer.resultStore.InsertResults(ctx, event.Results); err != nil {
		loggers.Ctx(ctx).Error().
			Err(err).
			Str("batch_id", event.BatchID).
			Str("provider", event.Provider).
			Msg("failed to persist result batch event")

		svcErr := svcerrors.NewInternalErrorUndefined(err)
		metricResultBatchConsumedTotal.WithLabelValues(streamResultBatch, svcErr.Code).Inc()
		return
	}

	loggers.Ctx(ctx).Debug().
		Str("batch_id", event.BatchID).
		Str("provider", event.Provider).
		Int("rows", len(event.Results)).
		Msg("persisted result batch event")
	metricResultBatchConsumedTotal.WithLabelValues(streamResultBatch, metrics.ValueNoError).Inc()
}
