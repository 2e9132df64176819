package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
)

// ErrNotFound is wrapped by every entity-specific not-found error.
var ErrNotFound = errors.New("not found")

var (
	ErrProductNotFound     = fmt.Errorf("product %w", ErrNotFound)
	ErrExpenseNotFound     = fmt.Errorf("expense %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)

	// ErrDuplicatedValueUnique is returned when a write violates a uniqueness constraint.
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")
)

// ProductRepository defines the interface for product data operations.
// GetAll returns products ordered by id.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id int) error
}
