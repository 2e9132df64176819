package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
)

// CSVList accepts a JSON array or a comma separated string. Numbers are taken
// in their literal form, so years may be sent as 2024 or "2024".
type CSVList []string

func (l *CSVList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = models.SplitNames(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*l = CSVList{n.String()}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.New("expected a list or a comma separated string")
	}
	out := make(CSVList, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, strings.TrimSpace(s))
			continue
		}
		var n json.Number
		if err := json.Unmarshal(item, &n); err != nil {
			return errors.New("list entries must be strings or numbers")
		}
		out = append(out, n.String())
	}
	*l = out
	return nil
}

type ProductRequest struct {
	Name       *string       `json:"name"`
	Stock      *int          `json:"stock"`
	Price      *models.Money `json:"price" swaggertype:"string" example:"5.00"`
	NumberSold *int          `json:"number_sold"`
	IsRetired  *bool         `json:"is_retired"`
}

func (p ProductRequest) patch() models.ProductPatch {
	return models.ProductPatch{
		Name:       p.Name,
		Stock:      p.Stock,
		Price:      p.Price,
		NumberSold: p.NumberSold,
		IsRetired:  p.IsRetired,
	}
}

type ExpenseRequest struct {
	Name  *string       `json:"name"`
	Date  *models.Date  `json:"date" swaggertype:"string" example:"2024-01-15"`
	Type  *string       `json:"type"`
	Price *models.Money `json:"price" swaggertype:"string" example:"12.50"`
}

func (e ExpenseRequest) patch() models.ExpensePatch {
	return models.ExpensePatch{Name: e.Name, Date: e.Date, Type: e.Type, Price: e.Price}
}

type TransactionRequest struct {
	Total    *models.Money `json:"total" swaggertype:"string" example:"5.00"`
	Date     *models.Date  `json:"date" swaggertype:"string" example:"2024-01-15"`
	Type     *string       `json:"type"`
	Products *CSVList      `json:"products" swaggertype:"array,string"`
}

func (t TransactionRequest) patch() models.TransactionPatch {
	p := models.TransactionPatch{Total: t.Total, Date: t.Date, Type: t.Type}
	if t.Products != nil {
		products := []string(*t.Products)
		p.Products = &products
	}
	return p
}

// GraphRequest selects a chart. Timescale applies to money; years, metrics
// and products to timeseries.
type GraphRequest struct {
	Graph     string  `json:"graph" example:"money"`
	Timescale string  `json:"timescale" example:"month"`
	Years     CSVList `json:"years" swaggertype:"string" example:"2023,2024"`
	Metrics   CSVList `json:"metrics" swaggertype:"string" example:"revenue,profit"`
	Products  CSVList `json:"products" swaggertype:"string" example:"all"`
}

type ValidationErrorResponse struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                       `json:"imported"`
	Errors                []ValidationErrorResponse `json:"errors"`
}
