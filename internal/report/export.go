package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/bookkeeper/internal/query"
)

// Formatter renders a list of records for download.
type Formatter interface {
	ContentType() string
	Extension() string
	Format(w io.Writer, columns []string, records []query.Record) error
}

var formatters = map[string]Formatter{
	"csv":  csvFormatter{},
	"json": jsonFormatter{},
}

// FormatterFor looks a formatter up by name; the empty name means csv.
func FormatterFor(name string) (Formatter, error) {
	if name == "" {
		name = "csv"
	}
	f, ok := formatters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported export format %q", ErrInvalidRequest, name)
	}
	return f, nil
}

type csvFormatter struct{}

func (csvFormatter) ContentType() string { return "text/csv" }
func (csvFormatter) Extension() string   { return "csv" }

func (csvFormatter) Format(w io.Writer, columns []string, records []query.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, r := range records {
		for i, c := range columns {
			v, _ := r.Field(c)
			row[i] = cell(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonFormatter struct{}

func (jsonFormatter) ContentType() string { return "application/json" }
func (jsonFormatter) Extension() string   { return "json" }

func (jsonFormatter) Format(w io.Writer, _ []string, records []query.Record) error {
	if records == nil {
		records = []query.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case []string:
		return strings.Join(x, ", ")
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// Records widens a typed slice for a Formatter.
func Records[T query.Record](items []T) []query.Record {
	out := make([]query.Record, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
