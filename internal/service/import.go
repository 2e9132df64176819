package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/repo"
)

// ImportMode decides what happens to a row naming an existing product.
type ImportMode string

const (
	ImportSkip   ImportMode = "skip"
	ImportUpdate ImportMode = "update"
)

// ParseImportMode defaults to skip for anything but "update".
func ParseImportMode(s string) ImportMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ImportUpdate)) {
		return ImportUpdate
	}
	return ImportSkip
}

var ErrInvalidCSV = errors.New("invalid CSV")

// ImportRow is one data line of a product CSV, kept as text until validated.
type ImportRow struct {
	Line       int
	Name       string
	Stock      string
	Price      string
	NumberSold string
}

type RowError struct {
	Line    int
	Message string
}

type ImportResult struct {
	Imported int
	Errors   []RowError
}

// ParseProductCSV reads a CSV with a header naming at least name, stock and
// price; number_sold is optional. Column order is free.
func ParseProductCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidCSV)
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "stock", "price"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: header lacks %q", ErrInvalidCSV, required)
		}
	}

	column := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []ImportRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidCSV, line, err)
		}
		rows = append(rows, ImportRow{
			Line:       line,
			Name:       column(record, "name"),
			Stock:      column(record, "stock"),
			Price:      column(record, "price"),
			NumberSold: column(record, "number_sold"),
		})
	}
	return rows, nil
}

func (row ImportRow) product() (models.Product, error) {
	p := models.Product{Name: row.Name}
	if p.Name == "" {
		return p, errors.New("missing name")
	}

	stock, err := strconv.Atoi(row.Stock)
	if err != nil {
		return p, errors.New("invalid stock")
	}
	p.Stock = stock

	price, err := models.ParseMoney(row.Price)
	if err != nil || price.IsNegative() {
		return p, errors.New("invalid price")
	}
	p.Price = price

	if row.NumberSold != "" {
		sold, err := strconv.Atoi(row.NumberSold)
		if err != nil || sold < 0 {
			return p, errors.New("invalid number_sold")
		}
		p.NumberSold = sold
	}
	return p, nil
}

// Import creates a product per row. In ImportUpdate mode a row naming an
// existing product overwrites its stock, price and number_sold instead.
// A failing row is reported and does not stop the rest. The product table is
// read once; later rows see the products created by earlier ones.
func (s *ProductService) Import(ctx context.Context, rows []ImportRow, mode ImportMode) (ImportResult, error) {
	result := ImportResult{Errors: []RowError{}}
	fail := func(line int, format string, args ...any) {
		result.Errors = append(result.Errors, RowError{Line: line, Message: fmt.Sprintf(format, args...)})
	}

	all, err := s.products.GetAll(ctx)
	if err != nil {
		return result, fmt.Errorf("could not fetch products: %w", err)
	}
	byName := make(map[string]models.Product, len(all)+len(rows))
	for _, p := range all {
		byName[models.NormalizeName(p.Name)] = p
	}

	for _, row := range rows {
		p, err := row.product()
		if err != nil {
			fail(row.Line, "%v", err)
			continue
		}
		key := models.NormalizeName(p.Name)

		if existing, ok := byName[key]; ok {
			if mode == ImportSkip {
				fail(row.Line, "product '%s' already exists", p.Name)
				continue
			}
			existing.Stock = p.Stock
			existing.Price = p.Price
			existing.NumberSold = p.NumberSold
			updated, err := s.products.Update(ctx, existing)
			if err != nil {
				fail(row.Line, "failed to update '%s'", p.Name)
				continue
			}
			byName[key] = updated
			result.Imported++
			continue
		}

		if models.IsUnknownProduct(p.Name) {
			fail(row.Line, "Cannot create Unknown Product")
			continue
		}
		created, err := s.products.Create(ctx, p)
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			fail(row.Line, "Product already exists: %s", p.Name)
			continue
		}
		if err != nil {
			return result, err
		}
		byName[key] = created
		result.Imported++
	}
	return result, nil
}
