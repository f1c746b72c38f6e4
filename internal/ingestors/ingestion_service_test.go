package ingestors_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"bench-analytics/internal/ingestors"
	"bench-analytics/internal/models"
	"bench-analytics/internal/shared/svcerrors"
	"bench-analytics/internal/stores"
	storemocks "bench-analytics/internal/stores/mocks"
	streammocks "bench-analytics/internal/streams/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIngestBatch_ErrValidationFailed_InvalidFormat(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rawBatchStore := storemocks.NewMockRawBatchStore(ctrl)
	resultBatchProducer := streammocks.NewMockResultBatchProducer(ctrl)
	service := ingestors.NewIngestionService(rawBatchStore, resultBatchProducer)

	ctx := context.Background()
	body := bytes.NewReader([]byte(`[]`))
	result, err := service.IngestBatch(ctx, "run1", "key1", "xml", body)

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_1000", svcErr.Code)
	assert.Equal(t, "invalid_argument", svcErr.Category)
	assert.Nil(t, result, "expected nil result on error")
}

func TestIngestBatch_ErrValidationFailed_MissingRunID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rawBatchStore := storemocks.NewMockRawBatchStore(ctrl)
	resultBatchProducer := streammocks.NewMockResultBatchProducer(ctrl)
	service := ingestors.NewIngestionService(rawBatchStore, resultBatchProducer)

	ctx := context.Background()
	body := bytes.NewReader([]byte(`[{"provider":"groq","totalLatencyMs":100}]`))
	result, err := service.IngestBatch(ctx, "", "key1", "json", body)

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_1000", svcErr.Code)
	assert.Nil(t, result, "expected nil result on error")
}

func TestIngestBatch_ErrValidationFailed_InvalidJSON(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rawBatchStore := storemocks.NewMockRawBatchStore(ctrl)
	resultBatchProducer := streammocks.NewMockResultBatchProducer(ctrl)
	service := ingestors.NewIngestionService(rawBatchStore, resultBatchProducer)

	ctx := context.Background()
	invalidJSON := bytes.NewReader([]byte(`{invalid json}`))
	result, err := service.IngestBatch(ctx, "run1", "key1", "json", invalidJSON)

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_1000", svcErr.Code)
	assert.Equal(t, "invalid_argument", svcErr.Category)
	assert.Nil(t, result, "expected nil result on error")
}

func TestIngestBatch_ErrValidationFailed_BatchTooLarge(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rawBatchStore := storemocks.NewMockRawBatchStore(ctrl)
	resultBatchProducer := streammocks.NewMockResultBatchProducer(ctrl)
	service := ingestors.NewIngestionService(rawBatchStore, resultBatchProducer)

	ctx := context.Background()
	// Create body with size 2*1024*1024 + 1 bytes
	largeBody := make([]byte, 2*1024*1024+1)
	body := bytes.NewReader(largeBody)

	_, err := service.IngestBatch(ctx, "run1", "key1", "json", body)

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_1000", svcErr.Code)
	assert.Equal(t, "invalid_argument", svcErr.Category)
	assert.Equal(t, "batch too large: must be <= 2MB", svcErr.Message)
}

func TestIngestBatch_ErrValidationFailed_ResultValidation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rawBatchStore := storemocks.NewMockRawBatchStore(ctrl)
	resultBatchProducer := streammocks.NewMockResultBatchProducer(ctrl)
	service := ingestors.NewIngestionService(rawBatchStore, resultBatchProducer)

	tests := []struct {
		name string
		json string
	}{
		{
			name: "empty rows",
			json: `[]`,
		},
		{
			name: "missing totalLatencyMs",
			json: `[{"provider":"groq","model":"llama"}]`,
		},
		{
			name: "negative totalLatencyMs",
			json: `[{"provider":"groq","totalLatencyMs":-1}]`,
		},
		{
			name: "negative input tokens",
			json: `[{"provider":"groq","totalLatencyMs":100,"inputTokens":-5}]`,
		},
		{
			name: "zero ttft when present",
			json: `[{"provider":"groq","totalLatencyMs":100,"ttftMs":0}]`,
		},
		{
			name: "negative tps when present",
			json: `[{"provider":"groq","totalLatencyMs":100,"tps":-2}]`,
		},
		{
			name: "negative cost",
			json: `[{"provider":"groq","totalLatencyMs":100,"costUsd":-0.01}]`,
		},
		{
			name: "provider exceeds max length",
			json: `[{"provider":"` + strings.Repeat("a", 129) + `","totalLatencyMs":100}]`,
		},
		{
			name: "model exceeds max length",
			json: `[{"provider":"groq","model":"` + strings.Repeat("a", 257) + `","totalLatencyMs":100}]`,
		},
		{
			name: "null row",
			json: `[null]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			body := bytes.NewReader([]byte(tt.json))
			result, err := service.IngestBatch(ctx, "run1", "key1", "json", body)

			require.Error(t, err, "expected error")
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, "ING_1000", svcErr.Code)
			assert.Nil(t, result, "expected nil result on error")
		})
	}
}

func TestIngestBatch_ErrRawBatchPutFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		putError         error
		expectedCode     string
		expectedCategory string
	}{
		{
			name:             "result batch already exists",
			putError:         stores.ErrResultBatchAlreadyExist,
			expectedCode:     "ING_1001",
			expectedCategory: "resource_conflict",
		},
		{
			name:             "result batch put failed",
			putError:         assert.AnError,
			expectedCode:     "ING_9000",
			expectedCategory: "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rawBatchStore := storemocks.NewMockRawBatchStore(ctrl)
			resultBatchProducer := streammocks.NewMockResultBatchProducer(ctrl)

			rawBatchStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(tt.putError)

			service := ingestors.NewIngestionService(rawBatchStore, resultBatchProducer)

			ctx := context.Background()
			validJSON := `[{"provider":"groq","model":"llama-3","totalLatencyMs":120.5,"success":true}]`
			body := bytes.NewReader([]byte(validJSON))

			result, err := service.IngestBatch(ctx, "run1", "key1", "json", body)

			require.Error(t, err, "expected error")
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, tt.expectedCode, svcErr.Code)
			assert.Equal(t, tt.expectedCategory, svcErr.Category)
			assert.Nil(t, result, "expected nil result on error")
		})
	}
}

func TestIngestBatch_ErrResultBatchPublishFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rawBatchStore := storemocks.NewMockRawBatchStore(ctrl)
	resultBatchProducer := streammocks.NewMockResultBatchProducer(ctrl)

	rawBatchStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	resultBatchProducer.EXPECT().Produce(gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	service := ingestors.NewIngestionService(rawBatchStore, resultBatchProducer)

	ctx := context.Background()
	validJSON := `[{"provider":"groq","model":"llama-3","totalLatencyMs":120.5,"success":true}]`
	body := bytes.NewReader([]byte(validJSON))

	result, err := service.IngestBatch(ctx, "run1", "key1", "json", body)

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ING_9001", svcErr.Code)
	assert.Equal(t, "internal", svcErr.Category)
	assert.Nil(t, result, "expected nil result on error")
}

func TestIngestBatch_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rawBatchStore := storemocks.NewMockRawBatchStore(ctrl)
	resultBatchProducer := streammocks.NewMockResultBatchProducer(ctrl)

	var storedBatch *models.ResultBatch
	var publishedBatch *models.ResultBatch

	rawBatchStore.EXPECT().Put(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, batch *models.ResultBatch) {
			storedBatch = batch
		}).
		Return(nil)

	resultBatchProducer.EXPECT().Produce(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, batch *models.ResultBatch) {
			publishedBatch = batch
		}).
		Return(nil)

	service := ingestors.NewIngestionService(rawBatchStore, resultBatchProducer)

	ctx := context.Background()
	validJSON := `[
		{"provider":"  groq  ","model":"llama-3","totalLatencyMs":120.5,"ttftMs":45.2,"tps":210.4,"costUsd":0.002,"success":true},
		{"provider":"openai","model":"gpt-4o","totalLatencyMs":480.1,"statusCode":200}
	]`
	body := bytes.NewReader([]byte(validJSON))

	result, err := service.IngestBatch(ctx, "run1", "key1", "json", body)

	require.NoError(t, err, "unexpected error")
	require.NotNil(t, result, "expected non-nil result")
	assert.Equal(t, "key1", result.BatchID)
	assert.Equal(t, 2, result.Accepted)

	require.NotNil(t, storedBatch)
	require.NotNil(t, publishedBatch)
	assert.Equal(t, "key1", storedBatch.BatchID)
	assert.Equal(t, "run1", storedBatch.RunID)
	assert.Same(t, storedBatch, publishedBatch)

	// Normalization stamps IDs, run ID, timestamps, and trims names.
	for _, row := range storedBatch.Results {
		assert.NotEmpty(t, row.ID)
		assert.Equal(t, "run1", row.RunID)
		assert.False(t, row.CreatedAt.IsZero())
	}
	assert.Equal(t, "groq", storedBatch.Results[0].Provider)
}

func TestIngestBatch_GeneratesBatchIDWhenKeyMissing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rawBatchStore := storemocks.NewMockRawBatchStore(ctrl)
	resultBatchProducer := streammocks.NewMockResultBatchProducer(ctrl)

	rawBatchStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	resultBatchProducer.EXPECT().Produce(gomock.Any(), gomock.Any()).Return(nil)

	service := ingestors.NewIngestionService(rawBatchStore, resultBatchProducer)

	ctx := context.Background()
	validJSON := `[{"provider":"groq","totalLatencyMs":100,"success":true}]`
	body := bytes.NewReader([]byte(validJSON))

	result, err := service.IngestBatch(ctx, "run1", "  ", "json", body)

	require.NoError(t, err, "unexpected error")
	require.NotNil(t, result)
	assert.NotEmpty(t, result.BatchID, "expected a generated batch ID")
	assert.NotEqual(t, "  ", result.BatchID)
}
