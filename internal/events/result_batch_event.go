package events

import (
	"bench-analytics/internal/models"
)

// ResultBatchEvent carries one provider's slice of an ingested batch from the
// HTTP ingest path to the persistence worker. The producer splits each batch
// by resolved provider key and publishes one event per provider; events for
// the same provider land on the same queue partition, so rows for a provider
// are written in the order they arrived.
//
// Example JSON:
//
//	{
//	  "batchId": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
//	  "runId": "run-2026-01-14T10:00",
//	  "provider": "groq",
//	  "results": [ ...benchmark result rows for groq... ]
//	}
type ResultBatchEvent struct {
	BatchID  string                    `json:"batchId"`
	RunID    string                    `json:"runId"`
	Provider string                    `json:"provider"`
	Results  []*models.BenchmarkResult `json:"results"`
}
