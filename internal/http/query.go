package http

import (
	"net/http"

	"bench-analytics/internal/models"
)

const queryParamWindow = "window"

// windowFromRequest resolves the query window: explicit ?window= if valid,
// otherwise the configured default. An unknown window value is a client
// error, not a silent fallback.
func windowFromRequest(r *http.Request, defaultWindow models.TimeWindow) (models.TimeWindow, error) {
	raw := r.URL.Query().Get(queryParamWindow)
	if raw == "" {
		return defaultWindow, nil
	}
	window, err := models.NewTimeWindowFromString(raw)
	if err != nil {
		return "", errInvalidWindow(raw, err)
	}
	return window, nil
}
