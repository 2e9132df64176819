package repo

import (
	"context"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
)

// DateRange bounds a query by calendar date. Nil bounds are open; both ends are inclusive.
type DateRange struct {
	From *models.Date
	To   *models.Date
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d models.Date) bool {
	if r.From != nil && d.Before(*r.From) {
		return false
	}
	if r.To != nil && d.After(*r.To) {
		return false
	}
	return true
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense models.Expense) (models.Expense, error)
	GetAll(ctx context.Context) ([]models.Expense, error)
	GetByID(ctx context.Context, id int) (models.Expense, error)
	Update(ctx context.Context, expense models.Expense) (models.Expense, error)
	Delete(ctx context.Context, id int) error
	// Between returns the expenses dated inside r, ordered by date then id.
	Between(ctx context.Context, r DateRange) ([]models.Expense, error)
}
