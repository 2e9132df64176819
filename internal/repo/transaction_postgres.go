package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
)

// PostgresTransactionRepository keeps the product list of each transaction in
// transaction_products, one row per entry, ordered by position. product_id is
// resolved by name when the entry names a known product and cleared when that
// product is deleted; product_name always keeps the name as written.
type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

const transactionColumns = `id, total, date, type`

func (r *PostgresTransactionRepository) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Transaction{}, err
	}
	defer sqlTx.Rollback()

	query := `INSERT INTO transactions (total, date, type) VALUES ($1, $2, $3) RETURNING id`
	if err := sqlTx.QueryRowContext(ctx, query, t.Total, t.Date, t.Type).Scan(&t.ID); err != nil {
		return models.Transaction{}, err
	}
	if err := insertProducts(ctx, sqlTx, t.ID, t.Products); err != nil {
		return models.Transaction{}, err
	}
	if err := sqlTx.Commit(); err != nil {
		return models.Transaction{}, err
	}
	t.Products = cloneNames(t.Products)
	return t, nil
}

func (r *PostgresTransactionRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	return r.list(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY id`)
}

func (r *PostgresTransactionRepository) GetByID(ctx context.Context, id int) (models.Transaction, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var t models.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Total, &t.Date, &t.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		return models.Transaction{}, err
	}

	byID, err := r.productsFor(ctx, []int{id})
	if err != nil {
		return models.Transaction{}, err
	}
	t.Products = nonNil(byID[id])
	return t, nil
}

func (r *PostgresTransactionRepository) Update(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Transaction{}, err
	}
	defer sqlTx.Rollback()

	query := `UPDATE transactions SET total = $1, date = $2, type = $3 WHERE id = $4`
	res, err := sqlTx.ExecContext(ctx, query, t.Total, t.Date, t.Type, t.ID)
	if err != nil {
		return models.Transaction{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Transaction{}, ErrTransactionNotFound
	}

	if _, err := sqlTx.ExecContext(ctx, `DELETE FROM transaction_products WHERE transaction_id = $1`, t.ID); err != nil {
		return models.Transaction{}, err
	}
	if err := insertProducts(ctx, sqlTx, t.ID, t.Products); err != nil {
		return models.Transaction{}, err
	}
	if err := sqlTx.Commit(); err != nil {
		return models.Transaction{}, err
	}
	t.Products = cloneNames(t.Products)
	return t, nil
}

func (r *PostgresTransactionRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// transaction_products rows go with the parent through ON DELETE CASCADE.
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *PostgresTransactionRepository) Between(ctx context.Context, dr DateRange) ([]models.Transaction, error) {
	clause, args := rangeClause("date", dr, 0)
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1` + clause + ` ORDER BY date, id`
	return r.list(ctx, query, args...)
}

func (r *PostgresTransactionRepository) list(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	var ids []int
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Total, &t.Date, &t.Type); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return transactions, nil
	}

	byID, err := r.productsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		transactions[i].Products = nonNil(byID[transactions[i].ID])
	}
	return transactions, nil
}

// productsFor loads the ordered product lists of the given transactions.
func (r *PostgresTransactionRepository) productsFor(ctx context.Context, ids []int) (map[int][]string, error) {
	query := `SELECT transaction_id, product_name FROM transaction_products
		WHERE transaction_id = ANY($1) ORDER BY transaction_id, position`
	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int][]string, len(ids))
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		byID[id] = append(byID[id], name)
	}
	return byID, rows.Err()
}

func insertProducts(ctx context.Context, sqlTx *sql.Tx, transactionID int, names []string) error {
	if len(names) == 0 {
		return nil
	}
	stmt, err := sqlTx.PrepareContext(ctx, `INSERT INTO transaction_products (transaction_id, product_id, product_name, position)
		VALUES ($1, (SELECT id FROM products WHERE lower(name) = lower($2)), $2, $3)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, name := range names {
		if _, err := stmt.ExecContext(ctx, transactionID, name, i); err != nil {
			return err
		}
	}
	return nil
}

func cloneNames(names []string) []string {
	return append([]string{}, names...)
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
