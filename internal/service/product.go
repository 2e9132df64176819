package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/query"
	"github.com/rogerio-castellano/bookkeeper/internal/repo"
)

// ProductSortFields are the product fields eligible for sort and search.
var ProductSortFields = []string{"name", "price", "stock", "number_sold"}

type ProductService struct {
	products repo.ProductRepository
}

func NewProductService(products repo.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns products narrowed by p. Retired products are dropped first
// unless showRetired is set.
func (s *ProductService) List(ctx context.Context, p query.Params, showRetired bool) ([]models.Product, error) {
	all, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch products: %w", err)
	}
	if !showRetired {
		all = Active(all)
	}
	return query.Apply(all, p, ProductSortFields)
}

// Active filters out retired products.
func Active(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !p.IsRetired {
			out = append(out, p)
		}
	}
	return out
}

func (s *ProductService) Get(ctx context.Context, id int) (models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := s.checkName(ctx, p.Name, 0); err != nil {
		return models.Product{}, err
	}

	created, err := s.products.Create(ctx, p)
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		return models.Product{}, newValidationError("name", "Product already exists: %s", p.Name)
	}
	return created, err
}

// Update applies the patch to product id. Name rules are checked only when the
// patch carries a name.
func (s *ProductService) Update(ctx context.Context, id int, patch models.ProductPatch) (models.Product, error) {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
		if err := s.checkName(ctx, name, id); err != nil {
			return models.Product{}, err
		}
	}

	next := patch.Apply(existing)
	updated, err := s.products.Update(ctx, next)
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		return models.Product{}, newValidationError("name", "Product already exists: %s", next.Name)
	}
	return updated, err
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	return s.products.Delete(ctx, id)
}

// checkName enforces the name rules against every product but exceptID.
func (s *ProductService) checkName(ctx context.Context, name string, exceptID int) error {
	if name == "" {
		return newValidationError("name", "Name is required")
	}
	if models.IsUnknownProduct(name) {
		return newValidationError("name", "Cannot create Unknown Product")
	}

	all, err := s.products.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("could not fetch products: %w", err)
	}
	for _, p := range all {
		if p.ID != exceptID && models.SameName(p.Name, name) {
			return newValidationError("name", "Product already exists: %s", name)
		}
	}
	return nil
}
