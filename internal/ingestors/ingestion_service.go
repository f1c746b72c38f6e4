package ingestors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"bench-analytics/internal/models"
	"bench-analytics/internal/shared/loggers"
	"bench-analytics/internal/shared/metrics"
	"bench-analytics/internal/shared/ulid"
	"bench-analytics/internal/stores"
	"bench-analytics/internal/streams"
)

const (
	maxBatchBytes  = 2 * 1024 * 1024
	maxProviderLen = 128
	maxModelLen    = 256
)

const (
	FormatJSON = "json"
)

// IngestResult represents the result of a batch ingestion operation.
type IngestResult struct {
	BatchID  string
	Accepted int
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// IngestBatch accepts a JSON array of benchmark result rows from the
	// measurement runner, archives the batch for idempotency, and hands the
	// rows to the persistence pipeline.
	IngestBatch(ctx context.Context, runID string, idempotencyKey string, format string, r io.Reader) (*IngestResult, error)
}

type ingestionService struct {
	rawBatchStore       stores.RawBatchStore
	resultBatchProducer streams.ResultBatchProducer
	now                 func() time.Time
}

func NewIngestionService(rawBatchStore stores.RawBatchStore, resultBatchProducer streams.ResultBatchProducer) IngestionService {
	return &ingestionService{
		rawBatchStore:       rawBatchStore,
		resultBatchProducer: resultBatchProducer,
		now:                 time.Now,
	}
}

func (s *ingestionService) IngestBatch(ctx context.Context, runID string, idempotencyKey string, format string, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started ingesting batch with run ID: %s, idempotency key: %s, format: %s", runID, idempotencyKey, format)

	results, err := s.validateResultBatch(runID, format, r)
	if err != nil {
		return nil, err
	}

	batchID := strings.TrimSpace(idempotencyKey)
	if batchID == "" {
		batchID = ulid.NewULID()
	}

	batch := &models.ResultBatch{
		BatchID: batchID,
		RunID:   runID,
		Results: results,
	}
	s.normalizeBatch(batch)

	// Archive the raw batch; duplicate idempotency keys are rejected here.
	err = s.rawBatchStore.Put(ctx, batch)
	if err != nil {
		if errors.Is(err, stores.ErrResultBatchAlreadyExist) {
			svcError := errBatchAlreadyProcessed(err)
			metricBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
			return nil, svcError
		}
		return nil, errInternalRawBatchStoreFailed(err)
	}

	// Hand the rows to the persistence pipeline, partitioned by provider.
	err = s.resultBatchProducer.Produce(ctx, batch)
	if err != nil {
		return nil, errInternalResultBatchProducerFailed(err)
	}

	metricBatchIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return &IngestResult{BatchID: batchID, Accepted: len(results)}, nil
}

func (s *ingestionService) validateResultBatch(runID string, format string, r io.Reader) ([]*models.BenchmarkResult, error) {
	if runID == "" {
		return nil, errValidationFailed("runID is required", nil)
	}

	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	buf, err := s.readWithLimit(r, maxBatchBytes)
	if err != nil {
		return nil, errValidationFailed("batch too large: must be <= 2MB", nil)
	}

	// Content type matching is loose on purpose: runners send
	// "application/json; charset=utf-8" and friends.
	formatLower := strings.ToLower(format)
	if !strings.Contains(formatLower, FormatJSON) {
		return nil, errValidationFailed(fmt.Sprintf("unsupported input format: %q", format), nil)
	}

	var results []*models.BenchmarkResult
	if err := json.Unmarshal(buf, &results); err != nil {
		return nil, errValidationFailed("invalid json", err)
	}

	if len(results) == 0 {
		return nil, errValidationFailed("result rows cannot be empty", nil)
	}

	for i, result := range results {
		if result == nil {
			return nil, errValidationFailed(fmt.Sprintf("item at index %d: must be an object", i), nil)
		}
		if err := s.validateResult(result, i); err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (s *ingestionService) validateResult(r *models.BenchmarkResult, index int) error {
	if r.TotalLatencyMs <= 0 {
		return errValidationFailed(fmt.Sprintf("item at index %d: totalLatencyMs must be > 0", index), nil)
	}
	if r.InputTokens < 0 || r.OutputTokens < 0 {
		return errValidationFailed(fmt.Sprintf("item at index %d: token counts must be >= 0", index), nil)
	}
	if r.TTFTMs != nil && *r.TTFTMs <= 0 {
		return errValidationFailed(fmt.Sprintf("item at index %d: ttftMs must be > 0 when present", index), nil)
	}
	if r.TPS != nil && *r.TPS <= 0 {
		return errValidationFailed(fmt.Sprintf("item at index %d: tps must be > 0 when present", index), nil)
	}
	if r.CostUSD < 0 {
		return errValidationFailed(fmt.Sprintf("item at index %d: costUsd must be >= 0", index), nil)
	}
	if len(r.Provider) > maxProviderLen {
		return errValidationFailed(fmt.Sprintf("item at index %d: provider too long: max %d characters", index, maxProviderLen), nil)
	}
	if len(r.Model) > maxModelLen {
		return errValidationFailed(fmt.Sprintf("item at index %d: model too long: max %d characters", index, maxModelLen), nil)
	}
	return nil
}

// normalizeBatch fills in generated IDs and defaults before the batch leaves
// the ingest boundary. Aggregation-level resolution (provider precedence,
// unknown sentinel) stays in the models resolvers; ingest only trims and
// stamps.
func (s *ingestionService) normalizeBatch(batch *models.ResultBatch) {
	now := s.now().UTC()
	for _, r := range batch.Results {
		r.Provider = strings.TrimSpace(r.Provider)
		r.Model = strings.TrimSpace(r.Model)
		if r.ID == "" {
			r.ID = ulid.NewULID()
		}
		if r.RunID == "" {
			r.RunID = batch.RunID
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
	}
}

// readWithLimit reads up to max+1 bytes from r and checks if it exceeds max.
func (s *ingestionService) readWithLimit(r io.Reader, max int) ([]byte, error) {
	limited := io.LimitReader(r, int64(max+1))
	buf, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if len(buf) > max {
		return nil, fmt.Errorf("batch exceeds %d bytes", max)
	}
	return buf, nil
}
