package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/query"
	"github.com/rogerio-castellano/bookkeeper/internal/report"
)

var expenseColumns = []string{"id", "name", "date", "type", "price"}

// CreateExpenseHandler godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body ExpenseRequest true "Expense to add"
// @Success 201 {object} models.Expense
// @Failure 400 {object} ErrorResponse
// @Router /expenses [post]
func CreateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	var req ExpenseRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, invalidInput)
		return
	}
	if validationErrors := validateExpenseCreate(req); len(validationErrors) > 0 {
		writeValidationErrors(w, r, validationErrors)
		return
	}

	created, err := expenseService.Create(r.Context(), req.patch().Apply(models.Expense{}))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, created)
}

// GetExpensesHandler godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param sort_by query string false "name, date, price or type"
// @Param order query string false "asc or desc"
// @Param search query string false "Case-insensitive substring over the sortable fields"
// @Success 200 {array} models.Expense
// @Failure 400 {object} ErrorResponse
// @Router /expenses [get]
func GetExpensesHandler(w http.ResponseWriter, r *http.Request) {
	expenses, err := expenseService.List(r.Context(), query.ParseParams(r.URL.Query()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, expenses)
}

// GetExpenseByIDHandler godoc
// @Summary Get expense by ID
// @Tags expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} models.Expense
// @Failure 404 {object} ErrorResponse
// @Router /expenses/{id} [get]
func GetExpenseByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid expense ID")
		return
	}
	expense, err := expenseService.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, expense)
}

// UpdateExpenseHandler godoc
// @Summary Update an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param expense body ExpenseRequest true "Fields to change"
// @Success 200 {object} models.Expense
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /expenses/{id} [put]
func UpdateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid expense ID")
		return
	}

	var req ExpenseRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, invalidInput)
		return
	}

	updated, err := expenseService.Update(r.Context(), id, req.patch())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, updated)
}

// DeleteExpenseHandler godoc
// @Summary Delete an expense
// @Tags expenses
// @Param id path int true "Expense ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {object} ErrorResponse
// @Router /expenses/{id} [delete]
func DeleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid expense ID")
		return
	}
	if err := expenseService.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportExpensesHandler godoc
// @Summary Export expenses
// @Tags export
// @Produce text/csv
// @Produce json
// @Param format query string false "csv (default) or json"
// @Success 200 {string} string "File contents"
// @Router /expenses/export [get]
func ExportExpensesHandler(w http.ResponseWriter, r *http.Request) {
	expenses, err := expenseService.List(r.Context(), query.ParseParams(r.URL.Query(), keyFormat))
	if err != nil {
		respondError(w, r, err)
		return
	}
	export(w, r, "expenses", expenseColumns, report.Records(expenses))
}
