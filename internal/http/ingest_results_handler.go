package http

import (
	"encoding/json"
	"net/http"

	"bench-analytics/internal/ingestors"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type ingestResultsHandler struct {
	ingestionService ingestors.IngestionService
}

func NewIngestResultsHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &ingestResultsHandler{
		ingestionService: ingestionService,
	}
}

// IngestResponse acknowledges an accepted batch.
type IngestResponse struct {
	BatchID  string `json:"batchId"`
	Accepted int    `json:"accepted"`
}

// Handle processes POST /api/results requests from the measurement runner.
func (h *ingestResultsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.ingestionService.IngestBatch(r.Context(), runID(r), idempotencyKey(r), contentType(r), r.Body)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	return json.NewEncoder(w).Encode(IngestResponse{
		BatchID:  result.BatchID,
		Accepted: result.Accepted,
	})
}
