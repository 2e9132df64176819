package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
	"github.com/rogerio-castellano/bookkeeper/internal/repo"
)

func newTransactionService(t *testing.T) (*TransactionService, *repo.InMemoryTransactionRepository) {
	t.Helper()
	products := repo.NewInMemoryProductRepository()
	for _, name := range []string{"Widget", "Gadget"} {
		if _, err := products.Create(context.Background(), models.Product{Name: name}); err != nil {
			t.Fatalf("seeding %q: %v", name, err)
		}
	}
	transactions := repo.NewInMemoryTransactionRepository()
	return NewTransactionService(transactions, products), transactions
}

func sale(products ...string) models.Transaction {
	return models.Transaction{
		Total:    models.MustMoney("5.00"),
		Date:     models.MustDate("2024-01-15"),
		Type:     "sale",
		Products: products,
	}
}

func TestTransactionCreate_AcceptsKnownNamesAndSentinel(t *testing.T) {
	svc, _ := newTransactionService(t)

	tx, err := svc.Create(context.Background(), sale("widget", "UNKNOWN", " Gadget", "widget"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"widget", "UNKNOWN", "Gadget", "widget"}
	if len(tx.Products) != len(want) {
		t.Fatalf("expected %v, got %v", want, tx.Products)
	}
	for i := range want {
		if tx.Products[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], tx.Products[i])
		}
	}
}

func TestTransactionCreate_InvalidNamePersistsNothing(t *testing.T) {
	svc, store := newTransactionService(t)

	_, err := svc.Create(context.Background(), sale("Widget", "Nope"))

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Message != "Product does not exist: Nope" {
		t.Errorf("unexpected message %q", ve.Message)
	}
	all, _ := store.GetAll(context.Background())
	if len(all) != 0 {
		t.Errorf("expected no stored transactions, got %d", len(all))
	}
}

func TestTransactionUpdate(t *testing.T) {
	svc, _ := newTransactionService(t)
	created, err := svc.Create(context.Background(), sale("Widget"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("keeps products when not supplied", func(t *testing.T) {
		typ := "refund"
		tx, err := svc.Update(context.Background(), created.ID, models.TransactionPatch{Type: &typ})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.Type != "refund" || len(tx.Products) != 1 || tx.Products[0] != "Widget" {
			t.Errorf("unexpected transaction %+v", tx)
		}
	})

	t.Run("invalid product leaves record unchanged", func(t *testing.T) {
		bad := []string{"Gadget", "Missing"}
		if _, err := svc.Update(context.Background(), created.ID, models.TransactionPatch{Products: &bad}); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		tx, _ := svc.Get(context.Background(), created.ID)
		if len(tx.Products) != 1 || tx.Products[0] != "Widget" {
			t.Errorf("expected products untouched, got %v", tx.Products)
		}
	})

	t.Run("replaces products when supplied", func(t *testing.T) {
		next := []string{"Gadget", "unknown"}
		tx, err := svc.Update(context.Background(), created.ID, models.TransactionPatch{Products: &next})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tx.Products) != 2 || tx.Products[0] != "Gadget" {
			t.Errorf("unexpected products %v", tx.Products)
		}
	})
}

func TestTransactionDelete_NotFound(t *testing.T) {
	svc, _ := newTransactionService(t)
	if err := svc.Delete(context.Background(), 7); !errors.Is(err, repo.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}
