package handlers

import (
	"strings"
)

func required(field string) ValidationErrorResponse {
	return ValidationErrorResponse{Field: field, Description: field + " is required"}
}

func validateProductCreate(p ProductRequest) []ValidationErrorResponse {
	errs := []ValidationErrorResponse{}
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		errs = append(errs, required("name"))
	}
	if p.Stock == nil {
		errs = append(errs, required("stock"))
	}
	if p.Price == nil {
		errs = append(errs, required("price"))
	}
	for _, e := range validateProductUpdate(p) {
		if e.Field == "name" {
			continue
		}
		errs = append(errs, e)
	}
	return errs
}

// validateProductUpdate checks only the fields that are present.
func validateProductUpdate(p ProductRequest) []ValidationErrorResponse {
	errs := []ValidationErrorResponse{}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs = append(errs, ValidationErrorResponse{Field: "name", Description: "name cannot be empty"})
	}
	if p.Price != nil && p.Price.IsNegative() {
		errs = append(errs, ValidationErrorResponse{Field: "price", Description: "price cannot be negative"})
	}
	if p.NumberSold != nil && *p.NumberSold < 0 {
		errs = append(errs, ValidationErrorResponse{Field: "number_sold", Description: "number_sold cannot be negative"})
	}
	return errs
}

func validateExpenseCreate(e ExpenseRequest) []ValidationErrorResponse {
	errs := []ValidationErrorResponse{}
	if e.Name == nil || strings.TrimSpace(*e.Name) == "" {
		errs = append(errs, required("name"))
	}
	if e.Date == nil {
		errs = append(errs, required("date"))
	}
	if e.Type == nil {
		errs = append(errs, required("type"))
	}
	if e.Price == nil {
		errs = append(errs, required("price"))
	}
	return errs
}

func validateTransactionCreate(t TransactionRequest) []ValidationErrorResponse {
	errs := []ValidationErrorResponse{}
	if t.Total == nil {
		errs = append(errs, required("total"))
	}
	if t.Date == nil {
		errs = append(errs, required("date"))
	}
	if t.Type == nil {
		errs = append(errs, required("type"))
	}
	return errs
}
