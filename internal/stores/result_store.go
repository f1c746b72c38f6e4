package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bench-analytics/internal/models"

	"github.com/lib/pq"
)

//go:generate mockgen -source=result_store.go -destination=./mocks/result_store_mock.go -package=mocks
type ResultStore interface {
	// ListResults returns rows whose createdAt falls inside the window,
	// newest first, capped at limit. The DESC ordering is part of the
	// contract: the aggregator derives LastUpdated from the first row of
	// each provider group.
	ListResults(ctx context.Context, window models.TimeWindow, limit int) ([]*models.BenchmarkResult, error)

	// InsertResults appends a batch of rows in one transaction.
	InsertResults(ctx context.Context, results []*models.BenchmarkResult) error
}

type postgresResultStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresResultStore(db *sql.DB) ResultStore {
	return &postgresResultStore{db: db, now: time.Now}
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

const listResultsQuery = `
SELECT id, run_id, provider, model, input_tokens, output_tokens,
       total_latency_ms, ttft_ms, tps, status_code, success, error_message,
       cost_usd, created_at
FROM benchmark_results
WHERE created_at >= $1
ORDER BY created_at DESC
LIMIT $2`

func (s *postgresResultStore) ListResults(ctx context.Context, window models.TimeWindow, limit int) ([]*models.BenchmarkResult, error) {
	since := window.Since(s.now())

	rows, err := s.db.QueryContext(ctx, listResultsQuery, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmark results: %w", err)
	}
	defer rows.Close()

	var results []*models.BenchmarkResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate benchmark results: %w", err)
	}
	return results, nil
}

const insertResultQuery = `
INSERT INTO benchmark_results
  (id, run_id, provider, model, input_tokens, output_tokens,
   total_latency_ms, ttft_ms, tps, status_code, success, error_message,
   cost_usd, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (id) DO NOTHING`

func (s *postgresResultStore) InsertResults(ctx context.Context, results []*models.BenchmarkResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertResultQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		_, err := stmt.ExecContext(ctx,
			r.ID,
			r.RunID,
			r.ProviderKey(),
			r.ModelName(),
			r.InputTokens,
			r.OutputTokens,
			r.TotalLatencyMs,
			nullFloat(r.TTFTMs),
			nullFloat(r.TPS),
			nullInt(r.StatusCode),
			r.Success,
			nullString(r.ErrorMessage),
			r.CostUSD,
			r.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert benchmark result %q: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit insert: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*models.BenchmarkResult, error) {
	var (
		result       models.BenchmarkResult
		ttft, tps    sql.NullFloat64
		statusCode   sql.NullInt64
		errorMessage sql.NullString
		createdAt    pq.NullTime
	)

	err := row.Scan(
		&result.ID,
		&result.RunID,
		&result.Provider,
		&result.Model,
		&result.InputTokens,
		&result.OutputTokens,
		&result.TotalLatencyMs,
		&ttft,
		&tps,
		&statusCode,
		&result.Success,
		&errorMessage,
		&result.CostUSD,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan benchmark result: %w", err)
	}

	if ttft.Valid {
		result.TTFTMs = &ttft.Float64
	}
	if tps.Valid {
		result.TPS = &tps.Float64
	}
	if statusCode.Valid {
		code := int(statusCode.Int64)
		result.StatusCode = &code
	}
	if errorMessage.Valid {
		result.ErrorMessage = &errorMessage.String
	}
	if createdAt.Valid {
		result.CreatedAt = createdAt.Time
	}
	return &result, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
