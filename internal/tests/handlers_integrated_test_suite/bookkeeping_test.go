//go:build integration

package handlers_integrated_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"testing"

	api "github.com/rogerio-castellano/bookkeeper/internal/http"
	handler "github.com/rogerio-castellano/bookkeeper/internal/http/handlers"
	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/report"
)

func TestStatusHandler(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestProductLifecycle(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := doRaw(r, http.MethodPost, "/products", `{"name":"Widget","stock":10,"price":"5.00"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.Product
	json.NewDecoder(w.Body).Decode(&created)

	w = doRaw(r, http.MethodPost, "/products", `{"name":"WIDGET","stock":1,"price":"1.00"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected duplicate name to be rejected, got %d", w.Code)
	}

	target := fmt.Sprintf("/products/%d", created.ID)
	w = doJSON(r, http.MethodPut, target, handler.ProductRequest{IsRetired: ptr(true)})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/products", nil)
	var active []models.Product
	json.NewDecoder(w.Body).Decode(&active)
	if len(active) != 0 {
		t.Errorf("expected retired product to be hidden, got %v", active)
	}

	if w := doJSON(r, http.MethodDelete, target, nil); w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, target, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestTransactionProductsRoundTrip(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	doRaw(r, http.MethodPost, "/products", `{"name":"Widget","stock":10,"price":"5.00"}`)
	doRaw(r, http.MethodPost, "/products", `{"name":"Gadget","stock":10,"price":"8.00"}`)

	w := doRaw(r, http.MethodPost, "/transactions",
		`{"total":"18.00","date":"2024-01-15","type":"sale","products":["Widget","unknown","Widget","Gadget"]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.Transaction
	json.NewDecoder(w.Body).Decode(&created)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/transactions/%d", created.ID), nil)
	var got models.Transaction
	json.NewDecoder(w.Body).Decode(&got)
	want := []string{"Widget", "unknown", "Widget", "Gadget"}
	if !slices.Equal(got.Products, want) {
		t.Errorf("expected %v in order, got %v", want, got.Products)
	}
	if got.Total.String() != "18.00" || got.Date.String() != "2024-01-15" {
		t.Errorf("unexpected transaction %+v", got)
	}

	w = doRaw(r, http.MethodPost, "/transactions",
		`{"total":"1.00","date":"2024-01-16","type":"sale","products":"Nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an unknown product, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/transactions", nil)
	var all []models.Transaction
	json.NewDecoder(w.Body).Decode(&all)
	if len(all) != 1 {
		t.Errorf("expected 1 stored transaction, got %d", len(all))
	}
}

func TestMoneyGraph(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	doRaw(r, http.MethodPost, "/products", `{"name":"Widget","stock":10,"price":"5.00"}`)
	doRaw(r, http.MethodPost, "/transactions", `{"total":"5.00","date":"2024-01-15","type":"sale","products":["Widget"]}`)
	doRaw(r, http.MethodPost, "/expenses", `{"name":"Ink","date":"2024-01-15","type":"supplies","price":"1.50"}`)

	w := doRaw(r, http.MethodPost, "/graphdata", `{"graph":"money","timescale":"all"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var chart report.Chart
	json.NewDecoder(w.Body).Decode(&chart)

	if !slices.Equal(chart.Labels, []string{"2024-01-15"}) {
		t.Fatalf("unexpected labels %v", chart.Labels)
	}
	if revenue := chart.Datasets[2].Data[0]; revenue != 3.5 {
		t.Errorf("expected revenue 3.5, got %v", revenue)
	}
}
