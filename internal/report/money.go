package report

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/repo"
)

// Timescale windows in days. "all" has no lower bound.
var timescaleDays = map[string]int{
	"week":   7,
	"month":  30,
	"3month": 90,
	"6month": 180,
	"year":   365,
}

const TimescaleAll = "all"

// Cutoff returns the first date inside the window named by timescale, or nil
// for "all".
func Cutoff(timescale string, now time.Time) (*models.Date, error) {
	if timescale == TimescaleAll {
		return nil, nil
	}
	days, ok := timescaleDays[timescale]
	if !ok {
		return nil, ErrInvalidTimescale
	}
	cutoff := models.DateOf(now.AddDate(0, 0, -days))
	return &cutoff, nil
}

// Money sums income and spending per calendar date since the timescale cutoff.
// The date axis is the ascending union of dates with any record, and
// revenue is income minus spending on each date.
func (s *Service) Money(ctx context.Context, timescale string, now time.Time) (Chart, error) {
	cutoff, err := Cutoff(timescale, now)
	if err != nil {
		return Chart{}, err
	}
	window := repo.DateRange{From: cutoff}

	var expenses []models.Expense
	var transactions []models.Transaction
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
	if err := g.Wait(); err != nil {
		return Chart{}, err
	}

	income := map[string]decimal.Decimal{}
	spending := map[string]decimal.Decimal{}
	for _, t := range transactions {
		key := t.Date.String()
		income[key] = income[key].Add(t.Total.Decimal)
	}
	for _, e := range expenses {
		key := e.Date.String()
		spending[key] = spending[key].Add(e.Price.Decimal)
	}

	dates := make([]string, 0, len(income)+len(spending))
	for d := range income {
		dates = append(dates, d)
	}
	for d := range spending {
		if _, ok := income[d]; !ok {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)

	incomeData := make([]float64, len(dates))
	spendingData := make([]float64, len(dates))
	revenueData := make([]float64, len(dates))
	for i, d := range dates {
		in, out := income[d], spending[d]
		incomeData[i] = in.InexactFloat64()
		spendingData[i] = out.InexactFloat64()
		revenueData[i] = in.Sub(out).InexactFloat64()
	}

	return Chart{
		Labels: dates,
		Datasets: []Dataset{
			{Label: "Total Income", Data: incomeData, BorderColor: "#42A5F5", BackgroundColor: "rgba(66, 165, 245, 0.2)"},
			{Label: "Total Spending", Data: spendingData, BorderColor: "#66BB6A", BackgroundColor: "rgba(102, 187, 106, 0.2)"},
			{Label: "Revenue", Data: revenueData, BorderColor: "#FF7043", BackgroundColor: "rgba(255, 112, 67, 0.2)"},
		},
	}, nil
}
