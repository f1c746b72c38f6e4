package models

// ResultBatch is one ingest payload from the measurement runner: a set of
// benchmark results reported together, identified by the runner's idempotency
// key (or a generated ULID when none was sent).
type ResultBatch struct {
	BatchID string             `json:"batchId"`
	RunID   string             `json:"runId"`
	Results []*BenchmarkResult `json:"results"`
}
