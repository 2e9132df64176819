package handlers

import (
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard headline figures
// @Tags metrics
// @Produce json
// @Success 200 {object} report.Summary
// @Failure 500 {object} ErrorResponse
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := reportService.Summary(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, m)
}
