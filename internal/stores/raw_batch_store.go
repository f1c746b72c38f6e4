package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bench-analytics/internal/models"
	"bench-analytics/internal/shared/filestorages"
)

var (
	ErrResultBatchAlreadyExist = errors.New("result batch already exists")
)

// RawBatchStore archives the raw ingest payload per batch and doubles as the
// idempotency check. Put performs an atomic create-if-not-exists: when two
// runners post the same idempotency key, the first archive wins and the
// second batch is rejected as a duplicate instead of double-counting rows.
//
//go:generate mockgen -source=raw_batch_store.go -destination=./mocks/raw_batch_store_mock.go -package=mocks
type RawBatchStore interface {
	Put(ctx context.Context, batch *models.ResultBatch) error
}

type rawBatchStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewRawBatchStore(fileStorage filestorages.FileStorage) RawBatchStore {
	return &rawBatchStore{fileStorage: fileStorage, dir: "raw-batches"}
}

func (s *rawBatchStore) Put(ctx context.Context, batch *models.ResultBatch) error {
	jsonData, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal result batch: %w", err)
	}
	reader := bytes.NewReader(jsonData)

	key := fmt.Sprintf("%s/%s/%s.json", s.dir, batch.RunID, batch.BatchID)

	_, err = s.fileStorage.Put(ctx, key, reader, filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrResultBatchAlreadyExist
		}
		return fmt.Errorf("failed to put result batch: %w", err)
	}
	return nil
}
