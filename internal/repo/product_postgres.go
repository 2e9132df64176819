package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, name, stock, price, number_sold, is_retired`

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, stock, price, number_sold, is_retired) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Name, p.Stock, p.Price, p.NumberSold, p.IsRetired).Scan(&p.ID)
	if err != nil {
		return models.Product{}, translate(err)
	}
	return p, nil
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock, &p.Price, &p.NumberSold, &p.IsRetired); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Stock, &p.Price, &p.NumberSold, &p.IsRetired)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $1, stock = $2, price = $3, number_sold = $4, is_retired = $5 WHERE id = $6`
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.Name, p.Stock, p.Price, p.NumberSold, p.IsRetired, p.ID)
	if err != nil {
		return models.Product{}, translate(err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
