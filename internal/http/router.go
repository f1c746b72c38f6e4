package http

import (
	"net/http"

	"bench-analytics/internal/aggregators"
	"bench-analytics/internal/ingestors"
	"bench-analytics/internal/models"
	"bench-analytics/internal/shared/loggers"
	"bench-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	ingestionService ingestors.IngestionService,
	aggregationService aggregators.AggregationService,
	defaultWindow models.TimeWindow,
	httpLogger loggers.Logger,
) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	ingestResultsHandler := NewIngestResultsHandler(ingestionService)
	providersHandler := NewProvidersHandler(aggregationService, defaultWindow)
	rankingsHandler := NewRankingsHandler(aggregationService, defaultWindow)
	compareHandler := NewCompareHandler(aggregationService, defaultWindow)

	// Routes
	router.Post("/api/results", errorHandlingAdapter(ingestResultsHandler))
	router.Get("/api/providers", errorHandlingAdapter(providersHandler))
	router.Get("/api/rankings", errorHandlingAdapter(rankingsHandler))
	router.Get("/api/compare", errorHandlingAdapter(compareHandler))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
