package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/query"
	"github.com/rogerio-castellano/bookkeeper/internal/repo"
)

var TransactionSortFields = []string{"date", "total", "type"}

type TransactionService struct {
	transactions repo.TransactionRepository
	products     repo.ProductRepository
}

func NewTransactionService(transactions repo.TransactionRepository, products repo.ProductRepository) *TransactionService {
	return &TransactionService{transactions: transactions, products: products}
}

func (s *TransactionService) List(ctx context.Context, p query.Params) ([]models.Transaction, error) {
	all, err := s.transactions.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch transactions: %w", err)
	}
	return query.Apply(all, p, TransactionSortFields)
}

func (s *TransactionService) Get(ctx context.Context, id int) (models.Transaction, error) {
	return s.transactions.GetByID(ctx, id)
}

// Create stores t after checking every entry of its product list. Nothing is
// written when an entry names no product.
func (s *TransactionService) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	products, err := s.checkProducts(ctx, t.Products)
	if err != nil {
		return models.Transaction{}, err
	}
	t.Products = products
	return s.transactions.Create(ctx, t)
}

// Update merges the patch into transaction id. The product list is replaced
// only when the patch carries one.
func (s *TransactionService) Update(ctx context.Context, id int, patch models.TransactionPatch) (models.Transaction, error) {
	existing, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}

	if patch.Products != nil {
		products, err := s.checkProducts(ctx, *patch.Products)
		if err != nil {
			return models.Transaction{}, err
		}
		patch.Products = &products
	}
	return s.transactions.Update(ctx, patch.Apply(existing))
}

func (s *TransactionService) Delete(ctx context.Context, id int) error {
	return s.transactions.Delete(ctx, id)
}

// checkProducts trims every entry and verifies it names an existing product or
// the unknown sentinel. The returned list keeps the input order.
func (s *TransactionService) checkProducts(ctx context.Context, names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	if len(names) == 0 {
		return out, nil
	}

	all, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch products: %w", err)
	}
	known := make(map[string]struct{}, len(all))
	for _, p := range all {
		known[models.NormalizeName(p.Name)] = struct{}{}
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := known[models.NormalizeName(name)]; !ok && !models.IsUnknownProduct(name) {
			return nil, newValidationError("products", "Product does not exist: %s", name)
		}
		out = append(out, name)
	}
	return out, nil
}
