package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/query"
	"github.com/rogerio-castellano/bookkeeper/internal/report"
)

// halfFormatter writes part of the file and then fails.
type halfFormatter struct{}

func (halfFormatter) ContentType() string { return "text/csv" }
func (halfFormatter) Extension() string   { return "csv" }

func (halfFormatter) Format(w io.Writer, _ []string, _ []query.Record) error {
	io.WriteString(w, "id,name\n1,")
	return errors.New("disk full")
}

func TestWriteExport_FormatterFailureIsA500(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products/export", nil)
	w := httptest.NewRecorder()

	writeExport(w, req, "products", halfFormatter{}, productColumns, nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "" {
		t.Errorf("expected no attachment header, got %q", cd)
	}
	if strings.Contains(w.Body.String(), "id,name") {
		t.Errorf("expected no partial file in the body, got %q", w.Body.String())
	}
}

func TestWriteExport_WritesWholeFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products/export", nil)
	w := httptest.NewRecorder()

	formatter, err := report.FormatterFor("csv")
	if err != nil {
		t.Fatal(err)
	}
	products := []models.Product{{ID: 1, Name: "Widget", Stock: 2, Price: models.MustMoney("5")}}
	writeExport(w, req, "products", formatter, productColumns, report.Records(products))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	want := "id,name,stock,price,number_sold,is_retired\n1,Widget,2,5.00,0,false\n"
	if w.Body.String() != want {
		t.Errorf("expected %q, got %q", want, w.Body.String())
	}
}
