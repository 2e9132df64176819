// Package report derives chart-ready aggregates from products, expenses and
// transactions.
package report

import (
	"errors"

	"github.com/rogerio-castellano/bookkeeper/internal/repo"
)

var (
	ErrInvalidTimescale = errors.New("Invalid time scale")
	ErrInvalidRequest   = errors.New("invalid report request")
)

// Palette is cycled through by the year-over-year series.
var Palette = []string{"#42A5F5", "#FF6384", "#4BC0C0", "#FFCE56", "#36A2EB", "#9966FF", "#FF9F40"}

// Chart is the labels/datasets shape the dashboard charts consume.
type Chart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	PointRadius     int       `json:"pointRadius,omitempty"`
	Fill            *bool     `json:"fill,omitempty"`
}

func emptyChart() Chart {
	return Chart{Labels: []string{}, Datasets: []Dataset{}}
}

// lineDataset is the style shared by every year-over-year series.
func lineDataset(label, color string, data []float64) Dataset {
	fill := false
	return Dataset{
		Label:           label,
		Data:            data,
		BorderColor:     color,
		BackgroundColor: "transparent",
		BorderWidth:     2,
		PointRadius:     4,
		Fill:            &fill,
	}
}

// Service computes reports over the three stores.
type Service struct {
	products     repo.ProductRepository
	expenses     repo.ExpenseRepository
	transactions repo.TransactionRepository
}

func NewService(products repo.ProductRepository, expenses repo.ExpenseRepository, transactions repo.TransactionRepository) *Service {
	return &Service{products: products, expenses: expenses, transactions: transactions}
}
