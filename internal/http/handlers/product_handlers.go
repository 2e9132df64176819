package handlers

import (
	"net/http"
	"strings"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/query"
	"github.com/rogerio-castellano/bookkeeper/internal/report"
)

var productColumns = []string{"id", "name", "stock", "price", "number_sold", "is_retired"}

func showRetired(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get(query.KeyShowRetired), "true")
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Names are unique ignoring case and "unknown" is reserved
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, invalidInput)
		return
	}

	if validationErrors := validateProductCreate(req); len(validationErrors) > 0 {
		writeValidationErrors(w, r, validationErrors)
		return
	}

	product := req.patch().Apply(models.Product{Price: models.ZeroMoney})
	created, err := productService.Create(r.Context(), product)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, created)
}

// GetProductsHandler godoc
// @Summary List products
// @Description Any other query parameter is an exact-match filter on the field of that name
// @Tags products
// @Produce json
// @Param show_retired query bool false "Include retired products"
// @Param sort_by query string false "name, price, stock or number_sold"
// @Param order query string false "asc or desc"
// @Param search query string false "Case-insensitive substring over the sortable fields"
// @Success 200 {array} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productService.List(r.Context(), query.ParseParams(r.URL.Query()), showRetired(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, products)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := productService.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, product)
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Only the supplied fields change
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Fields to change"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, invalidInput)
		return
	}
	if validationErrors := validateProductUpdate(req); len(validationErrors) > 0 {
		writeValidationErrors(w, r, validationErrors)
		return
	}

	updated, err := productService.Update(r.Context(), id, req.patch())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, updated)
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid product ID")
		return
	}
	if err := productService.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProductComparisonHandler godoc
// @Summary Stock against units sold for every active product
// @Tags reports
// @Produce json
// @Success 200 {object} report.Comparison
// @Failure 500 {object} ErrorResponse
// @Router /products/comparison [get]
func ProductComparisonHandler(w http.ResponseWriter, r *http.Request) {
	comparison, err := reportService.ProductComparison(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, comparison)
}

// ExportProductsHandler godoc
// @Summary Export products
// @Description Accepts the same parameters as the product list
// @Tags export
// @Produce text/csv
// @Produce json
// @Param format query string false "csv (default) or json"
// @Success 200 {string} string "File contents"
// @Failure 400 {object} ErrorResponse
// @Router /products/export [get]
func ExportProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productService.List(r.Context(), query.ParseParams(r.URL.Query(), keyFormat), showRetired(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	export(w, r, "products", productColumns, report.Records(products))
}
