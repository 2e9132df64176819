package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// Like the postgres schema it enforces case-insensitive name uniqueness.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(product.Name, 0) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.products), nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == product.ID {
			if r.nameTaken(product.Name, product.ID) {
				return models.Product{}, ErrDuplicatedValueUnique
			}
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

func (r *InMemoryProductRepository) nameTaken(name string, exceptID int) bool {
	for _, p := range r.products {
		if p.ID != exceptID && models.SameName(p.Name, name) {
			return true
		}
	}
	return false
}
