package handlers

import (
	"context"
	"time"

	repo "github.com/rogerio-castellano/bookkeeper/internal/repo"
	"github.com/rogerio-castellano/bookkeeper/internal/report"
	"github.com/rogerio-castellano/bookkeeper/internal/service"
)

// HealthChecker probes the backing store.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

var (
	productRepo     repo.ProductRepository
	expenseRepo     repo.ExpenseRepository
	transactionRepo repo.TransactionRepository

	productService     *service.ProductService
	expenseService     *service.ExpenseService
	transactionService *service.TransactionService
	reportService      *report.Service

	health HealthChecker = noopHealth{}

	// Now is the clock the reports are computed against.
	Now = time.Now
)

type noopHealth struct{}

func (noopHealth) Ping(context.Context) error { return nil }

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
	rebuildServices()
}

func SetExpenseRepo(r repo.ExpenseRepository) {
	expenseRepo = r
	rebuildServices()
}

func SetTransactionRepo(r repo.TransactionRepository) {
	transactionRepo = r
	rebuildServices()
}

func SetHealthChecker(h HealthChecker) {
	if h == nil {
		h = noopHealth{}
	}
	health = h
}

func rebuildServices() {
	productService = service.NewProductService(productRepo)
	expenseService = service.NewExpenseService(expenseRepo)
	transactionService = service.NewTransactionService(transactionRepo, productRepo)
	reportService = report.NewService(productRepo, expenseRepo, transactionRepo)
}
