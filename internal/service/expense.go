package service

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/query"
	"github.com/rogerio-castellano/bookkeeper/internal/repo"
)

var ExpenseSortFields = []string{"name", "date", "price", "type"}

type ExpenseService struct {
	expenses repo.ExpenseRepository
}

func NewExpenseService(expenses repo.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

func (s *ExpenseService) List(ctx context.Context, p query.Params) ([]models.Expense, error) {
	all, err := s.expenses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch expenses: %w", err)
	}
	return query.Apply(all, p, ExpenseSortFields)
}

func (s *ExpenseService) Get(ctx context.Context, id int) (models.Expense, error) {
	return s.expenses.GetByID(ctx, id)
}

func (s *ExpenseService) Create(ctx context.Context, e models.Expense) (models.Expense, error) {
	return s.expenses.Create(ctx, e)
}

func (s *ExpenseService) Update(ctx context.Context, id int, patch models.ExpensePatch) (models.Expense, error) {
	existing, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return models.Expense{}, err
	}
	return s.expenses.Update(ctx, patch.Apply(existing))
}

func (s *ExpenseService) Delete(ctx context.Context, id int) error {
	return s.expenses.Delete(ctx, id)
}
