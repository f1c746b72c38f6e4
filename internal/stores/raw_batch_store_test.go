package stores

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"bench-analytics/internal/models"
	"bench-analytics/internal/shared/filestorages"
	"bench-analytics/internal/shared/filestorages/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ttftPtr(f float64) *float64 { return &f }

func TestNewRawBatchStore(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewRawBatchStore(mockFileStorage)

	assert.NotNil(t, store)
}

func TestRawBatchStore_Put_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewRawBatchStore(mockFileStorage)

	ctx := context.Background()
	batch := &models.ResultBatch{
		BatchID: "batch-123",
		RunID:   "run-e2e-001",
		Results: []*models.BenchmarkResult{
			{
				Provider:       "groq",
				Model:          "llama-3.3-70b",
				TotalLatencyMs: 412.5,
				TTFTMs:         ttftPtr(98.2),
				Success:        true,
				CostUSD:        0.001,
			},
			{
				Provider:       "openai",
				Model:          "gpt-4o",
				TotalLatencyMs: 890.0,
				Success:        false,
			},
		},
	}

	expectedKey := "raw-batches/run-e2e-001/batch-123.json"
	expectedJSON, _ := json.Marshal(batch)

	mockFileStorage.EXPECT().
		Put(ctx, expectedKey, gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
		DoAndReturn(func(ctx context.Context, key string, r io.Reader, opts filestorages.PutOptions) (*filestorages.PutResult, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, expectedJSON, data)
			assert.False(t, opts.AllowOverwrite, "AllowOverwrite should be false")
			return &filestorages.PutResult{FileKey: key}, nil
		})

	err := store.Put(ctx, batch)
	assert.NoError(t, err)
}

func TestRawBatchStore_Put_FileAlreadyExists(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewRawBatchStore(mockFileStorage)

	ctx := context.Background()
	batch := &models.ResultBatch{
		BatchID: "batch-123",
		RunID:   "run-e2e-001",
		Results: []*models.BenchmarkResult{
			{Provider: "groq", TotalLatencyMs: 100, Success: true},
		},
	}

	expectedKey := "raw-batches/run-e2e-001/batch-123.json"

	mockFileStorage.EXPECT().
		Put(ctx, expectedKey, gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
		Return(nil, filestorages.ErrFileAlreadyExists)

	err := store.Put(ctx, batch)
	assert.Error(t, err)
	assert.Equal(t, ErrResultBatchAlreadyExist, err)
	assert.ErrorIs(t, err, ErrResultBatchAlreadyExist)
}

func TestRawBatchStore_Put_StorageError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewRawBatchStore(mockFileStorage)

	ctx := context.Background()
	batch := &models.ResultBatch{
		BatchID: "batch-123",
		RunID:   "run-e2e-001",
		Results: []*models.BenchmarkResult{
			{Provider: "groq", TotalLatencyMs: 100, Success: true},
		},
	}

	storageErr := errors.New("disk full")
	mockFileStorage.EXPECT().
		Put(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, storageErr)

	err := store.Put(ctx, batch)
	assert.Error(t, err)
	assert.NotEqual(t, ErrResultBatchAlreadyExist, err)
	assert.ErrorIs(t, err, storageErr)
}
