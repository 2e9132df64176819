package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/query"
	"github.com/rogerio-castellano/bookkeeper/internal/repo"
)

func newProductService(t *testing.T, products ...models.Product) (*ProductService, *repo.InMemoryProductRepository) {
	t.Helper()
	r := repo.NewInMemoryProductRepository()
	for _, p := range products {
		if _, err := r.Create(context.Background(), p); err != nil {
			t.Fatalf("seeding %q: %v", p.Name, err)
		}
	}
	return NewProductService(r), r
}

func TestProductCreate_RejectsDuplicateNameIgnoringCase(t *testing.T) {
	svc, _ := newProductService(t, models.Product{Name: "Widget", Price: models.MustMoney("5")})

	_, err := svc.Create(context.Background(), models.Product{Name: "wIDGET", Price: models.MustMoney("1")})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Message != "Product already exists: wIDGET" {
		t.Errorf("unexpected message %q", ve.Message)
	}
}

func TestProductCreate_RejectsUnknownInAnyCase(t *testing.T) {
	svc, _ := newProductService(t)

	for _, name := range []string{"unknown", "UNKNOWN", " Unknown "} {
		_, err := svc.Create(context.Background(), models.Product{Name: name})
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Message != "Cannot create Unknown Product" {
			t.Errorf("%q: expected unknown product error, got %v", name, err)
		}
	}
}

func TestProductCreate_TrimsName(t *testing.T) {
	svc, _ := newProductService(t)

	p, err := svc.Create(context.Background(), models.Product{Name: "  Gadget ", Price: models.MustMoney("2.5")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Gadget" {
		t.Errorf("expected trimmed name, got %q", p.Name)
	}
}

func TestProductUpdate_AllowsOwnNameInOtherCase(t *testing.T) {
	svc, _ := newProductService(t, models.Product{Name: "Widget"}, models.Product{Name: "Gadget"})

	name := "WIDGET"
	p, err := svc.Update(context.Background(), 1, models.ProductPatch{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "WIDGET" {
		t.Errorf("expected renamed product, got %q", p.Name)
	}

	taken := "gadget"
	if _, err := svc.Update(context.Background(), 1, models.ProductPatch{Name: &taken}); !IsValidation(err) {
		t.Errorf("expected validation error when taking another product's name, got %v", err)
	}
}

func TestProductUpdate_PartialKeepsOtherFields(t *testing.T) {
	svc, _ := newProductService(t, models.Product{Name: "Widget", Stock: 10, Price: models.MustMoney("5"), NumberSold: 3})

	stock := 4
	p, err := svc.Update(context.Background(), 1, models.ProductPatch{Stock: &stock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Stock != 4 || p.Name != "Widget" || p.NumberSold != 3 || p.Price.String() != "5.00" {
		t.Errorf("unexpected product after patch: %+v", p)
	}
}

func TestProductUpdate_NotFound(t *testing.T) {
	svc, _ := newProductService(t)

	stock := 1
	_, err := svc.Update(context.Background(), 42, models.ProductPatch{Stock: &stock})
	if !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestProductList_HidesRetiredUnlessAsked(t *testing.T) {
	svc, _ := newProductService(t,
		models.Product{Name: "Widget"},
		models.Product{Name: "Old", IsRetired: true},
	)

	active, err := svc.List(context.Background(), query.Params{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Widget" {
		t.Errorf("expected only the active product, got %+v", active)
	}

	all, err := svc.List(context.Background(), query.Params{}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected both products, got %d", len(all))
	}
}

func TestProductImport(t *testing.T) {
	svc, _ := newProductService(t, models.Product{Name: "Widget", Stock: 1, Price: models.MustMoney("1")})

	csv := "name,stock,price,number_sold\n" +
		"Gadget,5,2.50,1\n" +
		"widget,9,3.00,2\n" +
		",1,1.00,0\n" +
		"Gizmo,x,1.00,0\n"
	rows, err := ParseProductCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	t.Run("skip", func(t *testing.T) {
		res, err := svc.Import(context.Background(), rows, ImportSkip)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Imported != 1 {
			t.Errorf("expected 1 imported, got %d", res.Imported)
		}
		if len(res.Errors) != 3 {
			t.Fatalf("expected 3 row errors, got %+v", res.Errors)
		}
		if res.Errors[0].Line != 3 || !strings.Contains(res.Errors[0].Message, "already exists") {
			t.Errorf("unexpected first error %+v", res.Errors[0])
		}
	})

	t.Run("update", func(t *testing.T) {
		res, err := svc.Import(context.Background(), rows[1:2], ImportUpdate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Imported != 1 || len(res.Errors) != 0 {
			t.Fatalf("unexpected result %+v", res)
		}
		p, _ := svc.Get(context.Background(), 1)
		if p.Stock != 9 || p.Price.String() != "3.00" || p.NumberSold != 2 {
			t.Errorf("expected existing product overwritten, got %+v", p)
		}
	})
}

// countingProducts counts full table reads.
type countingProducts struct {
	*repo.InMemoryProductRepository
	getAll int
}

func (c *countingProducts) GetAll(ctx context.Context) ([]models.Product, error) {
	c.getAll++
	return c.InMemoryProductRepository.GetAll(ctx)
}

func TestProductImport_ReadsProductsOnce(t *testing.T) {
	store := &countingProducts{InMemoryProductRepository: repo.NewInMemoryProductRepository()}
	svc := NewProductService(store)

	csv := "name,stock,price\n" +
		"Gadget,5,2.50\n" +
		"Gizmo,1,1.00\n" +
		"GADGET,7,3.00\n" +
		"unknown,1,1.00\n" +
		"Doohickey,2,4.00\n"
	rows, err := ParseProductCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	res, err := svc.Import(context.Background(), rows, ImportSkip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.getAll != 1 {
		t.Errorf("expected a single table read, got %d", store.getAll)
	}
	if res.Imported != 3 {
		t.Errorf("expected 3 imported, got %d", res.Imported)
	}
	if len(res.Errors) != 2 || res.Errors[0].Line != 4 || res.Errors[1].Line != 5 {
		t.Errorf("expected the repeated name and the reserved name rejected, got %+v", res.Errors)
	}
}

func TestParseProductCSV_RequiresHeaderColumns(t *testing.T) {
	_, err := ParseProductCSV(strings.NewReader("name,price\nWidget,1\n"))
	if !errors.Is(err, ErrInvalidCSV) {
		t.Errorf("expected ErrInvalidCSV, got %v", err)
	}
}
