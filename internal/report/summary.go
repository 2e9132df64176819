package report

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/repo"
)

const topSellersLimit = 5

type TopSeller struct {
	Name       string `json:"name"`
	NumberSold int    `json:"number_sold"`
}

// Summary is the dashboard headline figures.
type Summary struct {
	TotalProducts     int          `json:"total_products"`
	ActiveProducts    int          `json:"active_products"`
	RetiredProducts   int          `json:"retired_products"`
	OutOfStockCount   int          `json:"out_of_stock_count"`
	TotalExpenses     int          `json:"total_expenses"`
	TotalTransactions int          `json:"total_transactions"`
	Income            models.Money `json:"income"`
	Spending          models.Money `json:"spending"`
	Net               models.Money `json:"net"`
	TopSellers        []TopSeller  `json:"top_sellers"`
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var products []models.Product
	var expenses []models.Expense
	var transactions []models.Transaction

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.products.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.Between(gctx, repo.DateRange{})
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.transactions.Between(gctx, repo.DateRange{})
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	m := Summary{
		TotalProducts:     len(products),
		TotalExpenses:     len(expenses),
		TotalTransactions: len(transactions),
		Income:            models.ZeroMoney,
		Spending:          models.ZeroMoney,
		TopSellers:        []TopSeller{},
	}

	for _, p := range products {
		if p.IsRetired {
			m.RetiredProducts++
			continue
		}
		m.ActiveProducts++
		if p.Stock <= 0 {
			m.OutOfStockCount++
		}
		m.TopSellers = append(m.TopSellers, TopSeller{Name: p.Name, NumberSold: p.NumberSold})
	}
	sort.SliceStable(m.TopSellers, func(i, j int) bool {
		return m.TopSellers[i].NumberSold > m.TopSellers[j].NumberSold
	})
	if len(m.TopSellers) > topSellersLimit {
		m.TopSellers = m.TopSellers[:topSellersLimit]
	}

	for _, t := range transactions {
		m.Income = m.Income.Add(t.Total)
	}
	for _, e := range expenses {
		m.Spending = m.Spending.Add(e.Price)
	}
	m.Net = m.Income.Sub(m.Spending)
	return m, nil
}
