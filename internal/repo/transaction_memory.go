package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
)

type InMemoryTransactionRepository struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	nextID       int
}

func NewInMemoryTransactionRepository() *InMemoryTransactionRepository {
	return &InMemoryTransactionRepository{
		transactions: []models.Transaction{},
		nextID:       1,
	}
}

func (r *InMemoryTransactionRepository) Create(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx.ID = r.nextID
	r.nextID++
	tx.Products = slices.Clone(tx.Products)
	r.transactions = append(r.transactions, tx)
	return tx, nil
}

func (r *InMemoryTransactionRepository) GetAll(_ context.Context) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Transaction, len(r.transactions))
	for i, tx := range r.transactions {
		out[i] = cloneTransaction(tx)
	}
	return out, nil
}

func (r *InMemoryTransactionRepository) GetByID(_ context.Context, id int) (models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tx := range r.transactions {
		if tx.ID == id {
			return cloneTransaction(tx), nil
		}
	}
	return models.Transaction{}, ErrTransactionNotFound
}

func (r *InMemoryTransactionRepository) Update(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.transactions {
		if existing.ID == tx.ID {
			r.transactions[i] = cloneTransaction(tx)
			return tx, nil
		}
	}
	return models.Transaction{}, ErrTransactionNotFound
}

func (r *InMemoryTransactionRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, tx := range r.transactions {
		if tx.ID == id {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return ErrTransactionNotFound
}

func (r *InMemoryTransactionRepository) Between(_ context.Context, dr DateRange) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Transaction
	for _, tx := range r.transactions {
		if dr.Contains(tx.Date) {
			out = append(out, cloneTransaction(tx))
		}
	}
	slices.SortStableFunc(out, func(a, b models.Transaction) int {
		return a.Date.Compare(b.Date.Time)
	})
	return out, nil
}

func (r *InMemoryTransactionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = []models.Transaction{}
}

func cloneTransaction(tx models.Transaction) models.Transaction {
	tx.Products = slices.Clone(tx.Products)
	return tx
}
