package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/bookkeeper/internal/http"
	handler "github.com/rogerio-castellano/bookkeeper/internal/http/handlers"
	"github.com/rogerio-castellano/bookkeeper/internal/models"
)

func sale(day, total string, products ...string) handler.TransactionRequest {
	return handler.TransactionRequest{Total: money(total), Date: date(day), Type: ptr("sale"), Products: names(products...)}
}

func TestCreateTransactionHandler(t *testing.T) {
	t.Cleanup(resetStores)
	r := api.NewRouter()

	if w := createProduct(r, widget("Widget", "5.00", 10)); w.Code != http.StatusCreated {
		t.Fatalf("setup failed: %d", w.Code)
	}

	t.Run("list of known products", func(t *testing.T) {
		w := createTransaction(r, sale("2024-01-15", "10.00", "Widget", "widget", "unknown"))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
		}
		var got models.Transaction
		json.NewDecoder(w.Body).Decode(&got)
		if len(got.Products) != 3 || got.Products[0] != "Widget" {
			t.Errorf("expected the product list as sent, got %v", got.Products)
		}
	})

	t.Run("comma separated products", func(t *testing.T) {
		w := doRaw(r, http.MethodPost, "/transactions",
			`{"total":"7.50","date":"2024-01-16","type":"sale","products":"Widget, unknown,"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
		}
		var got models.Transaction
		json.NewDecoder(w.Body).Decode(&got)
		if fmt.Sprint(got.Products) != "[Widget unknown]" {
			t.Errorf("expected [Widget unknown], got %v", got.Products)
		}
	})

	t.Run("no products", func(t *testing.T) {
		w := createTransaction(r, handler.TransactionRequest{Total: money("1.00"), Date: date("2024-01-17"), Type: ptr("sale")})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", w.Code)
		}
		var got models.Transaction
		json.NewDecoder(w.Body).Decode(&got)
		if got.Products == nil || len(got.Products) != 0 {
			t.Errorf("expected an empty product list, got %v", got.Products)
		}
	})

	t.Run("unknown product name persists nothing", func(t *testing.T) {
		before := countTransactions(t, r)

		w := createTransaction(r, sale("2024-01-18", "3.00", "Widget", "Gizmo"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
		var resp handler.ErrorResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Error != "Product does not exist: Gizmo" {
			t.Errorf("unexpected error %q", resp.Error)
		}

		if after := countTransactions(t, r); after != before {
			t.Errorf("expected %d transactions, got %d", before, after)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		w := createTransaction(r, handler.TransactionRequest{})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
		var errs []handler.ValidationErrorResponse
		json.NewDecoder(w.Body).Decode(&errs)
		if len(errs) != 3 {
			t.Errorf("expected 3 validation errors, got %v", errs)
		}
	})
}

func TestUpdateTransactionHandler(t *testing.T) {
	t.Cleanup(resetStores)
	r := api.NewRouter()

	createProduct(r, widget("Widget", "5.00", 10))
	createProduct(r, widget("Gadget", "8.00", 10))

	w := createTransaction(r, sale("2024-01-15", "5.00", "Widget"))
	var created models.Transaction
	json.NewDecoder(w.Body).Decode(&created)
	target := fmt.Sprintf("/transactions/%d", created.ID)

	t.Run("products kept when absent", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, target, handler.TransactionRequest{Total: money("6.00")})
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		var got models.Transaction
		json.NewDecoder(w.Body).Decode(&got)
		if got.Total.String() != "6.00" || fmt.Sprint(got.Products) != "[Widget]" {
			t.Errorf("unexpected transaction after update: %+v", got)
		}
	})

	t.Run("products replaced when present", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, target, handler.TransactionRequest{Products: names("Gadget", "Gadget")})
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		var got models.Transaction
		json.NewDecoder(w.Body).Decode(&got)
		if fmt.Sprint(got.Products) != "[Gadget Gadget]" {
			t.Errorf("expected [Gadget Gadget], got %v", got.Products)
		}
	})

	t.Run("invalid product leaves it untouched", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, target, handler.TransactionRequest{Total: money("1.00"), Products: names("Nope")})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
		w = doJSON(r, http.MethodGet, target, nil)
		var got models.Transaction
		json.NewDecoder(w.Body).Decode(&got)
		if got.Total.String() != "6.00" {
			t.Errorf("expected total 6.00 to survive, got %s", got.Total)
		}
	})

	t.Run("update missing transaction", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/transactions/9999", handler.TransactionRequest{Total: money("1.00")})
		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", w.Code)
		}
	})
}

func countTransactions(t *testing.T, r http.Handler) int {
	t.Helper()
	w := doJSON(r, http.MethodGet, "/transactions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var all []models.Transaction
	json.NewDecoder(w.Body).Decode(&all)
	return len(all)
}
