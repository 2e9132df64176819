package report

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/repo"
)

const (
	MetricRevenue      = "revenue"
	MetricLoss         = "loss"
	MetricProfit       = "profit"
	MetricProductSales = "product_sales"
)

// yearlyMetrics are emitted per year in this order.
var yearlyMetrics = []struct {
	name  string
	label string
}{
	{MetricRevenue, "Revenue"},
	{MetricLoss, "Loss"},
	{MetricProfit, "Profit"},
}

var defaultMetrics = []string{MetricRevenue, MetricProfit}

// TimeseriesQuery selects the year-over-year series. A nil Products means every
// product that is not retired.
type TimeseriesQuery struct {
	Years    []int
	Metrics  []string
	Products []string
}

func (q TimeseriesQuery) wants(metric string) bool {
	return slices.Contains(q.Metrics, metric)
}

// ParseTimeseriesQuery validates the raw request lists and fills in defaults:
// the year of now, revenue and profit, and all active products.
func ParseTimeseriesQuery(years, metrics, products []string, now time.Time) (TimeseriesQuery, error) {
	var q TimeseriesQuery

	for _, raw := range years {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 || y > 9999 {
			return TimeseriesQuery{}, fmt.Errorf("%w: invalid year %q", ErrInvalidRequest, raw)
		}
		if !slices.Contains(q.Years, y) {
			q.Years = append(q.Years, y)
		}
	}
	if len(q.Years) == 0 {
		q.Years = []int{now.Year()}
	}

	for _, raw := range metrics {
		m := strings.ToLower(strings.TrimSpace(raw))
		if m == "" {
			continue
		}
		switch m {
		case MetricRevenue, MetricLoss, MetricProfit, MetricProductSales:
		default:
			return TimeseriesQuery{}, fmt.Errorf("%w: unknown metric %q", ErrInvalidRequest, raw)
		}
		if !slices.Contains(q.Metrics, m) {
			q.Metrics = append(q.Metrics, m)
		}
	}
	if len(q.Metrics) == 0 {
		q.Metrics = slices.Clone(defaultMetrics)
	}

	for _, raw := range products {
		if name := strings.TrimSpace(raw); name != "" {
			q.Products = append(q.Products, name)
		}
	}
	if len(q.Products) == 1 && strings.EqualFold(q.Products[0], "all") {
		q.Products = nil
	}
	return q, nil
}

func monthLabels(year int) []string {
	labels := make([]string, 12)
	for m := range labels {
		labels[m] = fmt.Sprintf("%04d-%02d", year, m+1)
	}
	return labels
}

func floats(months [12]decimal.Decimal) []float64 {
	out := make([]float64, 12)
	for i, d := range months {
		out[i] = d.InexactFloat64()
	}
	return out
}

// Timeseries buckets a year of transactions and expenses into calendar months
// per requested year. Product sales series follow every yearly series.
func (s *Service) Timeseries(ctx context.Context, q TimeseriesQuery) (Chart, error) {
	if len(q.Years) == 0 {
		return emptyChart(), nil
	}

	from := models.NewDate(slices.Min(q.Years), time.January, 1)
	to := models.NewDate(slices.Max(q.Years), time.December, 31)
	window := repo.DateRange{From: &from, To: &to}

	var expenses []models.Expense
	var transactions []models.Transaction
	selected := q.Products
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.Between(gctx, window)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.transactions.Between(gctx, window)
		return err
	})
	if q.wants(MetricProductSales) && selected == nil {
		g.Go(func() error {
			products, err := s.products.GetAll(gctx)
			if err != nil {
				return err
			}
			selected = []string{}
			for _, p := range products {
				if !p.IsRetired {
					selected = append(selected, p.Name)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Chart{}, err
	}

	revenue := map[int]*[12]decimal.Decimal{}
	loss := map[int]*[12]decimal.Decimal{}
	for _, y := range q.Years {
		revenue[y] = &[12]decimal.Decimal{}
		loss[y] = &[12]decimal.Decimal{}
	}
	for _, t := range transactions {
		if months, ok := revenue[t.Date.Year()]; ok {
			m := t.Date.Month() - 1
			months[m] = months[m].Add(t.Total.Decimal)
		}
	}
	for _, e := range expenses {
		if months, ok := loss[e.Date.Year()]; ok {
			m := e.Date.Month() - 1
			months[m] = months[m].Add(e.Price.Decimal)
		}
	}

	var labels []string
	datasets := []Dataset{}
	for i, year := range q.Years {
		color := Palette[i%len(Palette)]
		var profit [12]decimal.Decimal
		for m := range profit {
			profit[m] = revenue[year][m].Sub(loss[year][m])
		}
		values := map[string][12]decimal.Decimal{
			MetricRevenue: *revenue[year],
			MetricLoss:    *loss[year],
			MetricProfit:  profit,
		}
		for _, metric := range yearlyMetrics {
			if q.wants(metric.name) {
				label := fmt.Sprintf("%s %d", metric.label, year)
				datasets = append(datasets, lineDataset(label, color, floats(values[metric.name])))
			}
		}
		labels = append(labels, monthLabels(year)...)
	}

	if q.wants(MetricProductSales) {
		for _, year := range q.Years {
			sales := make([][]float64, len(selected))
			for i := range sales {
				sales[i] = make([]float64, 12)
			}
			for _, t := range transactions {
				if t.Date.Year() != year {
					continue
				}
				m := t.Date.Month() - 1
				for _, name := range t.Products {
					for i, product := range selected {
						if models.SameName(name, product) {
							sales[i][m]++
						}
					}
				}
			}

			for i, product := range selected {
				labels = append(labels, monthLabels(year)...)
				color := Palette[(i+len(q.Years))%len(Palette)]
				datasets = append(datasets, lineDataset(fmt.Sprintf("%s Sales %d", product, year), color, sales[i]))
			}
		}
	}

	if len(datasets) == 0 {
		return emptyChart(), nil
	}
	return Chart{Labels: dedupe(labels), Datasets: datasets}, nil
}

// dedupe drops repeated labels, keeping the first occurrence.
func dedupe(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
