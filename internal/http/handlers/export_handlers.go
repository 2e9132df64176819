package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/bookkeeper/internal/query"
	"github.com/rogerio-castellano/bookkeeper/internal/report"
)

const keyFormat = "format"

// export writes records as a download in the format named by ?format=.
func export(w http.ResponseWriter, r *http.Request, name string, columns []string, records []query.Record) {
	formatter, err := report.FormatterFor(r.URL.Query().Get(keyFormat))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeExport(w, r, name, formatter, columns, records)
}

// writeExport renders the whole file before any header goes out, so a
// formatter failure still reaches the client as a 500.
func writeExport(w http.ResponseWriter, r *http.Request, name string, formatter report.Formatter, columns []string, records []query.Record) {
	var buf bytes.Buffer
	if err := formatter.Format(&buf, columns, records); err != nil {
		respondError(w, r, fmt.Errorf("export %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", formatter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, formatter.Extension()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("export", name).Msg("failed to write export")
	}
}
