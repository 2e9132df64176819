package handlers

import (
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/bookkeeper/internal/service"
)

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Header row: name,stock,price[,number_sold]. Rows naming an existing product are reported in skip mode and overwritten in update mode.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := service.ParseImportMode(r.URL.Query().Get("mode"))

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	rows, err := service.ParseProductCSV(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := productService.Import(r.Context(), rows, mode)
	if err != nil {
		respondError(w, r, err)
		return
	}

	errs := make([]ValidationErrorResponse, len(result.Errors))
	for i, e := range result.Errors {
		errs[i] = ValidationErrorResponse{Field: fmt.Sprintf("row %d", e.Line), Description: e.Message}
	}
	respond(w, r, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: result.Imported,
		Errors:                errs,
	})
}
