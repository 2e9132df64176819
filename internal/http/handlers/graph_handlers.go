package handlers

import (
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/bookkeeper/internal/report"
)

const (
	GraphMoney      = "money"
	GraphTimeseries = "timeseries"
	GraphProduct    = "product"
)

// GraphDataHandler godoc
// @Summary Chart data for the dashboard
// @Description graph selects the chart: money (needs timescale: week, month, 3month, 6month, year or all), timeseries (years, metrics, products) or product
// @Tags reports
// @Accept json
// @Produce json
// @Param request body GraphRequest true "Chart selection"
// @Success 200 {object} report.Chart
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /graphdata [post]
func GraphDataHandler(w http.ResponseWriter, r *http.Request) {
	var req GraphRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, invalidInput)
		return
	}

	var (
		chart any
		err   error
	)
	switch req.Graph {
	case GraphMoney:
		chart, err = reportService.Money(r.Context(), req.Timescale, Now())
	case GraphTimeseries:
		q, perr := report.ParseTimeseriesQuery(req.Years, req.Metrics, req.Products, Now())
		if perr != nil {
			respondError(w, r, perr)
			return
		}
		chart, err = reportService.Timeseries(r.Context(), q)
	case GraphProduct:
		chart, err = reportService.ProductComparison(r.Context())
	default:
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("Graph requested `%s` is not available", req.Graph))
		return
	}

	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, chart)
}
