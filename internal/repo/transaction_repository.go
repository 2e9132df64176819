package repo

import (
	"context"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
)

// TransactionRepository stores transactions together with their product lists.
// Implementations must return Products in the order they were written.
type TransactionRepository interface {
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	GetAll(ctx context.Context) ([]models.Transaction, error)
	GetByID(ctx context.Context, id int) (models.Transaction, error)
	Update(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	Delete(ctx context.Context, id int) error
	Between(ctx context.Context, r DateRange) ([]models.Transaction, error)
}
