package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/bookkeeper/internal/query"
	repo "github.com/rogerio-castellano/bookkeeper/internal/repo"
	"github.com/rogerio-castellano/bookkeeper/internal/report"
	"github.com/rogerio-castellano/bookkeeper/internal/service"
)

const invalidInput = "invalid input"

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// respond writes data as JSON and logs a failed write.
func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respond(w, r, status, ErrorResponse{Error: msg})
}

func writeValidationErrors(w http.ResponseWriter, r *http.Request, errs []ValidationErrorResponse) {
	respond(w, r, http.StatusBadRequest, errs)
}

// respondError maps an error from the service layers onto a status code.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	var fe *query.FieldError
	switch {
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, ve.Message)
	case errors.As(err, &fe):
		writeError(w, r, http.StatusBadRequest, fe.Error())
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, report.ErrInvalidTimescale):
		writeError(w, r, http.StatusBadRequest, report.ErrInvalidTimescale.Error())
	case errors.Is(err, report.ErrInvalidRequest):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "Internal Server Error: "+err.Error())
	}
}

func parseID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, errors.New("invalid ID")
	}
	return id, nil
}
