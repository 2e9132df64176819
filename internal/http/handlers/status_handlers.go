package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
)

// StatusHandler godoc
// @Summary Store health probe
// @Tags status
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /status [get]
func StatusHandler(w http.ResponseWriter, r *http.Request) {
	if err := health.Ping(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
		respond(w, r, http.StatusInternalServerError, StatusResponse{Status: "error"})
		return
	}
	respond(w, r, http.StatusOK, StatusResponse{Status: "ok"})
}
