package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/query"
	"github.com/rogerio-castellano/bookkeeper/internal/report"
)

var transactionColumns = []string{"id", "total", "date", "type", "products"}

// CreateTransactionHandler godoc
// @Summary Record a transaction
// @Description products may be a list or a comma separated string; every entry must name a product or be "unknown"
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body TransactionRequest true "Transaction to add"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} ErrorResponse
// @Router /transactions [post]
func CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, invalidInput)
		return
	}
	if validationErrors := validateTransactionCreate(req); len(validationErrors) > 0 {
		writeValidationErrors(w, r, validationErrors)
		return
	}

	tx := req.patch().Apply(models.Transaction{Products: []string{}})
	created, err := transactionService.Create(r.Context(), tx)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, created)
}

// GetTransactionsHandler godoc
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param sort_by query string false "date, total or type"
// @Param order query string false "asc or desc"
// @Param search query string false "Case-insensitive substring over the sortable fields"
// @Success 200 {array} models.Transaction
// @Failure 400 {object} ErrorResponse
// @Router /transactions [get]
func GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	transactions, err := transactionService.List(r.Context(), query.ParseParams(r.URL.Query()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, transactions)
}

// GetTransactionByIDHandler godoc
// @Summary Get transaction by ID
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{id} [get]
func GetTransactionByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid transaction ID")
		return
	}
	tx, err := transactionService.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, tx)
}

// UpdateTransactionHandler godoc
// @Summary Update a transaction
// @Description The product list is replaced only when supplied
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param transaction body TransactionRequest true "Fields to change"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{id} [put]
func UpdateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	var req TransactionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, invalidInput)
		return
	}

	updated, err := transactionService.Update(r.Context(), id, req.patch())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, updated)
}

// DeleteTransactionHandler godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param id path int true "Transaction ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{id} [delete]
func DeleteTransactionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid transaction ID")
		return
	}
	if err := transactionService.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportTransactionsHandler godoc
// @Summary Export transactions
// @Tags export
// @Produce text/csv
// @Produce json
// @Param format query string false "csv (default) or json"
// @Success 200 {string} string "File contents"
// @Router /transactions/export [get]
func ExportTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	transactions, err := transactionService.List(r.Context(), query.ParseParams(r.URL.Query(), keyFormat))
	if err != nil {
		respondError(w, r, err)
		return
	}
	export(w, r, "transactions", transactionColumns, report.Records(transactions))
}
