package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"bench-analytics/internal/aggregators"
	"bench-analytics/internal/models"
)

type providersHandler struct {
	aggregationService aggregators.AggregationService
	defaultWindow      models.TimeWindow
}

func NewProvidersHandler(aggregationService aggregators.AggregationService, defaultWindow models.TimeWindow) AppHttpHandler {
	return &providersHandler{aggregationService: aggregationService, defaultWindow: defaultWindow}
}

// Handle processes GET /api/providers: the aggregated per-provider summaries
// for the requested window.
func (h *providersHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	window, err := windowFromRequest(r, h.defaultWindow)
	if err != nil {
		return err
	}

	snapshot, err := h.aggregationService.DashboardSnapshot(r.Context(), window)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, struct {
		Window    string                    `json:"window"`
		Providers []*models.ProviderMetrics `json:"providers"`
	}{
		Window:    snapshot.Window,
		Providers: snapshot.Providers,
	})
}

type rankingsHandler struct {
	aggregationService aggregators.AggregationService
	defaultWindow      models.TimeWindow
}

func NewRankingsHandler(aggregationService aggregators.AggregationService, defaultWindow models.TimeWindow) AppHttpHandler {
	return &rankingsHandler{aggregationService: aggregationService, defaultWindow: defaultWindow}
}

// Handle processes GET /api/rankings: the full dashboard card payload.
func (h *rankingsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	window, err := windowFromRequest(r, h.defaultWindow)
	if err != nil {
		return err
	}

	snapshot, err := h.aggregationService.DashboardSnapshot(r.Context(), window)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, snapshot)
}

type compareHandler struct {
	aggregationService aggregators.AggregationService
	defaultWindow      models.TimeWindow
}

func NewCompareHandler(aggregationService aggregators.AggregationService, defaultWindow models.TimeWindow) AppHttpHandler {
	return &compareHandler{aggregationService: aggregationService, defaultWindow: defaultWindow}
}

// Handle processes GET /api/compare?a=<provider>/<model>&b=<provider>/<model>.
// The model part is optional; without it the whole provider is one side.
func (h *compareHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	window, err := windowFromRequest(r, h.defaultWindow)
	if err != nil {
		return err
	}

	a, err := identityFromParam(r, "a")
	if err != nil {
		return err
	}
	b, err := identityFromParam(r, "b")
	if err != nil {
		return err
	}

	comparison, err := h.aggregationService.Compare(r.Context(), window, a, b)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, comparison)
}

func identityFromParam(r *http.Request, name string) (aggregators.ModelIdentity, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return aggregators.ModelIdentity{}, errMissingParam(name)
	}

	identity := aggregators.ModelIdentity{Provider: raw}
	if idx := strings.IndexByte(raw, '/'); idx >= 0 {
		identity.Provider = raw[:idx]
		identity.Model = raw[idx+1:]
	}
	return identity, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}
