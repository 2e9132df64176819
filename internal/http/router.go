package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/bookkeeper/docs"
	"github.com/rogerio-castellano/bookkeeper/internal/http/handlers"
	mw "github.com/rogerio-castellano/bookkeeper/internal/http/middleware"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/status", handlers.StatusHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", handlers.GetProductsHandler)
		r.Get("/comparison", handlers.ProductComparisonHandler)
		r.Get("/export", handlers.ExportProductsHandler)
		r.Get("/{id}", handlers.GetProductByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit)
			r.Post("/", handlers.CreateProductHandler)
			r.Post("/import", handlers.ImportProductsHandler)
			r.Put("/{id}", handlers.UpdateProductHandler)
			r.Delete("/{id}", handlers.DeleteProductHandler)
		})
	})

	r.Route("/expenses", func(r chi.Router) {
		r.Get("/", handlers.GetExpensesHandler)
		r.Get("/export", handlers.ExportExpensesHandler)
		r.Get("/{id}", handlers.GetExpenseByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit)
			r.Post("/", handlers.CreateExpenseHandler)
			r.Put("/{id}", handlers.UpdateExpenseHandler)
			r.Delete("/{id}", handlers.DeleteExpenseHandler)
		})
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", handlers.GetTransactionsHandler)
		r.Get("/export", handlers.ExportTransactionsHandler)
		r.Get("/{id}", handlers.GetTransactionByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit)
			r.Post("/", handlers.CreateTransactionHandler)
			r.Put("/{id}", handlers.UpdateTransactionHandler)
			r.Delete("/{id}", handlers.DeleteTransactionHandler)
		})
	})

	r.Post("/graphdata", handlers.GraphDataHandler)
	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)

	return r
}
