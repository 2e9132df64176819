package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
)

type InMemoryExpenseRepository struct {
	mu       sync.RWMutex
	expenses []models.Expense
	nextID   int
}

func NewInMemoryExpenseRepository() *InMemoryExpenseRepository {
	return &InMemoryExpenseRepository{
		expenses: []models.Expense{},
		nextID:   1,
	}
}

func (r *InMemoryExpenseRepository) Create(_ context.Context, expense models.Expense) (models.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	expense.ID = r.nextID
	r.nextID++
	r.expenses = append(r.expenses, expense)
	return expense, nil
}

func (r *InMemoryExpenseRepository) GetAll(_ context.Context) ([]models.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.expenses), nil
}

func (r *InMemoryExpenseRepository) GetByID(_ context.Context, id int) (models.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Expense{}, ErrExpenseNotFound
}

func (r *InMemoryExpenseRepository) Update(_ context.Context, expense models.Expense) (models.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.expenses {
		if e.ID == expense.ID {
			r.expenses[i] = expense
			return expense, nil
		}
	}
	return models.Expense{}, ErrExpenseNotFound
}

func (r *InMemoryExpenseRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.expenses {
		if e.ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return ErrExpenseNotFound
}

func (r *InMemoryExpenseRepository) Between(_ context.Context, dr DateRange) ([]models.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Expense
	for _, e := range r.expenses {
		if dr.Contains(e.Date) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Expense) int {
		return a.Date.Compare(b.Date.Time)
	})
	return out, nil
}

func (r *InMemoryExpenseRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses = []models.Expense{}
}
