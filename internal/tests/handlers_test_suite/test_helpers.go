package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	handler "github.com/rogerio-castellano/bookkeeper/internal/http/handlers"
	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/repo"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func init() {
	resetStores()
	handler.Now = func() time.Time { return fixedNow }
}

// resetStores swaps in empty repositories; used as a t.Cleanup.
func resetStores() {
	handler.SetProductRepo(repo.NewInMemoryProductRepository())
	handler.SetExpenseRepo(repo.NewInMemoryExpenseRepository())
	handler.SetTransactionRepo(repo.NewInMemoryTransactionRepository())
}

func ptr[T any](v T) *T {
	return &v
}

func money(s string) *models.Money {
	return ptr(models.MustMoney(s))
}

func date(s string) *models.Date {
	return ptr(models.MustDate(s))
}

func names(s ...string) *handler.CSVList {
	l := handler.CSVList(s)
	return &l
}

func doJSON(r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doRaw(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", p)
}

func createExpense(r http.Handler, e handler.ExpenseRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/expenses", e)
}

func createTransaction(r http.Handler, t handler.TransactionRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/transactions", t)
}

func widget(name, price string, stock int) handler.ProductRequest {
	return handler.ProductRequest{Name: ptr(name), Stock: ptr(stock), Price: money(price)}
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
