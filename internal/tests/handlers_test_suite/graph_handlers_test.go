package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"slices"
	"testing"

	api "github.com/rogerio-castellano/bookkeeper/internal/http"
	handler "github.com/rogerio-castellano/bookkeeper/internal/http/handlers"
	"github.com/rogerio-castellano/bookkeeper/internal/repo"
	"github.com/rogerio-castellano/bookkeeper/internal/report"
)

func postGraph(t *testing.T, r http.Handler, body string) (int, report.Chart) {
	t.Helper()
	w := doRaw(r, http.MethodPost, "/graphdata", body)
	var chart report.Chart
	if w.Code == http.StatusOK {
		if err := json.NewDecoder(w.Body).Decode(&chart); err != nil {
			t.Fatalf("failed to decode chart: %v", err)
		}
	}
	return w.Code, chart
}

func dataset(t *testing.T, chart report.Chart, label string) []float64 {
	t.Helper()
	for _, d := range chart.Datasets {
		if d.Label == label {
			return d.Data
		}
	}
	t.Fatalf("no dataset %q in %+v", label, chart.Datasets)
	return nil
}

func TestGraphDataHandler_Money(t *testing.T) {
	t.Cleanup(resetStores)
	r := api.NewRouter()

	if w := createProduct(r, widget("Widget", "5.00", 10)); w.Code != http.StatusCreated {
		t.Fatalf("setup failed: %d", w.Code)
	}
	if w := createTransaction(r, sale("2024-01-15", "5.00", "Widget")); w.Code != http.StatusCreated {
		t.Fatalf("setup failed: %d", w.Code)
	}

	t.Run("all time", func(t *testing.T) {
		code, chart := postGraph(t, r, `{"graph":"money","timescale":"all"}`)
		if code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", code)
		}
		i := slices.Index(chart.Labels, "2024-01-15")
		if i < 0 {
			t.Fatalf("expected label 2024-01-15, got %v", chart.Labels)
		}
		if got := dataset(t, chart, "Total Income")[i]; got != 5 {
			t.Errorf("expected income 5, got %v", got)
		}
		if got := dataset(t, chart, "Total Spending")[i]; got != 0 {
			t.Errorf("expected spending 0, got %v", got)
		}
		if got := dataset(t, chart, "Revenue")[i]; got != 5 {
			t.Errorf("expected revenue 5, got %v", got)
		}
	})

	t.Run("expenses on the same day", func(t *testing.T) {
		t.Cleanup(func() {
			handler.SetExpenseRepo(repo.NewInMemoryExpenseRepository())
		})
		createExpense(r, handler.ExpenseRequest{Name: ptr("Ink"), Date: date("2024-01-15"), Type: ptr("supplies"), Price: money("2.00")})
		createExpense(r, handler.ExpenseRequest{Name: ptr("Tape"), Date: date("2024-01-10"), Type: ptr("supplies"), Price: money("1.00")})

		code, chart := postGraph(t, r, `{"graph":"money","timescale":"all"}`)
		if code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", code)
		}
		if want := []string{"2024-01-10", "2024-01-15"}; !slices.Equal(chart.Labels, want) {
			t.Fatalf("expected labels %v, got %v", want, chart.Labels)
		}
		if got := dataset(t, chart, "Revenue"); !slices.Equal(got, []float64{-1, 3}) {
			t.Errorf("expected revenue [-1 3], got %v", got)
		}
	})

	t.Run("window excludes older records", func(t *testing.T) {
		code, chart := postGraph(t, r, `{"graph":"money","timescale":"month"}`)
		if code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", code)
		}
		if len(chart.Labels) != 0 {
			t.Errorf("expected no labels inside the last month, got %v", chart.Labels)
		}
	})

	t.Run("invalid timescale", func(t *testing.T) {
		w := doRaw(r, http.MethodPost, "/graphdata", `{"graph":"money","timescale":"decade"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
		var resp handler.ErrorResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Error != "Invalid time scale" {
			t.Errorf("unexpected error %q", resp.Error)
		}
	})

	t.Run("missing timescale", func(t *testing.T) {
		code, _ := postGraph(t, r, `{"graph":"money"}`)
		if code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", code)
		}
	})
}

func TestGraphDataHandler_UnknownGraph(t *testing.T) {
	r := api.NewRouter()

	w := doRaw(r, http.MethodPost, "/graphdata", `{"graph":"pie"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	var resp handler.ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error != "Graph requested `pie` is not available" {
		t.Errorf("unexpected error %q", resp.Error)
	}
}

func TestGraphDataHandler_Timeseries(t *testing.T) {
	t.Cleanup(resetStores)
	r := api.NewRouter()

	createProduct(r, widget("Widget", "5.00", 10))
	createTransaction(r, sale("2024-03-02", "20.00", "Widget", "Widget"))
	createTransaction(r, sale("2023-03-09", "4.00", "Widget"))
	createExpense(r, handler.ExpenseRequest{Name: ptr("Ink"), Date: date("2024-03-20"), Type: ptr("supplies"), Price: money("5.00")})

	t.Run("defaults to the current year", func(t *testing.T) {
		code, chart := postGraph(t, r, `{"graph":"timeseries"}`)
		if code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", code)
		}
		if len(chart.Labels) != 12 || chart.Labels[0] != "2024-01" {
			t.Errorf("expected the months of 2024, got %v", chart.Labels)
		}
		if got := dataset(t, chart, "Revenue 2024")[2]; got != 20 {
			t.Errorf("expected march revenue 20, got %v", got)
		}
		if got := dataset(t, chart, "Profit 2024")[2]; got != 15 {
			t.Errorf("expected march profit 15, got %v", got)
		}
	})

	t.Run("years as a comma separated string", func(t *testing.T) {
		code, chart := postGraph(t, r, `{"graph":"timeseries","years":"2023,2024","metrics":["loss"]}`)
		if code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", code)
		}
		if len(chart.Datasets) != 2 {
			t.Fatalf("expected one loss series per year, got %d", len(chart.Datasets))
		}
		if len(chart.Labels) != 24 {
			t.Errorf("expected 24 labels, got %d", len(chart.Labels))
		}
	})

	t.Run("product sales count each entry", func(t *testing.T) {
		code, chart := postGraph(t, r, `{"graph":"timeseries","years":[2024],"metrics":"product_sales","products":"all"}`)
		if code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", code)
		}
		if got := dataset(t, chart, "Widget Sales 2024")[2]; got != 2 {
			t.Errorf("expected 2 sales in march, got %v", got)
		}
	})

	t.Run("unknown metric", func(t *testing.T) {
		code, _ := postGraph(t, r, `{"graph":"timeseries","metrics":"margin"}`)
		if code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", code)
		}
	})

	t.Run("invalid year", func(t *testing.T) {
		code, _ := postGraph(t, r, `{"graph":"timeseries","years":"twenty"}`)
		if code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", code)
		}
	})
}

func TestGraphDataHandler_Product(t *testing.T) {
	t.Cleanup(resetStores)
	r := api.NewRouter()

	sold := widget("Widget", "5.00", 10)
	sold.NumberSold = ptr(7)
	createProduct(r, sold)
	retired := widget("Old", "1.00", 2)
	retired.IsRetired = ptr(true)
	createProduct(r, retired)

	w := doRaw(r, http.MethodPost, "/graphdata", `{"graph":"product"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var comparison report.Comparison
	if err := json.NewDecoder(w.Body).Decode(&comparison); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !slices.Equal(comparison.Labels, []string{"Widget"}) {
		t.Errorf("expected only active products, got %v", comparison.Labels)
	}
	if got := dataset(t, comparison.Chart, "Number Sold"); !slices.Equal(got, []float64{7}) {
		t.Errorf("expected number sold [7], got %v", got)
	}
	if len(comparison.ProductDetails) != 1 {
		t.Errorf("expected one product detail, got %d", len(comparison.ProductDetails))
	}
}

func TestGraphDataHandler_InvalidJSON(t *testing.T) {
	r := api.NewRouter()

	code, _ := postGraph(t, r, `not json`)
	if code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", code)
	}
}
