package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rogerio-castellano/bookkeeper/internal/models"
)

type PostgresExpenseRepository struct {
	db *sql.DB
}

func NewPostgresExpenseRepository(db *sql.DB) *PostgresExpenseRepository {
	return &PostgresExpenseRepository{db: db}
}

const expenseColumns = `id, name, date, type, price`

func (r *PostgresExpenseRepository) Create(ctx context.Context, e models.Expense) (models.Expense, error) {
	query := `INSERT INTO expenses (name, date, type, price) VALUES ($1, $2, $3, $4) RETURNING id`
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := r.db.QueryRowContext(ctx, query, e.Name, e.Date, e.Type, e.Price).Scan(&e.ID); err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

func (r *PostgresExpenseRepository) GetAll(ctx context.Context) ([]models.Expense, error) {
	return r.list(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY id`)
}

func (r *PostgresExpenseRepository) GetByID(ctx context.Context, id int) (models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var e models.Expense
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Date, &e.Type, &e.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Expense{}, ErrExpenseNotFound
	}
	return e, err
}

func (r *PostgresExpenseRepository) Update(ctx context.Context, e models.Expense) (models.Expense, error) {
	query := `UPDATE expenses SET name = $1, date = $2, type = $3, price = $4 WHERE id = $5`
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, e.Name, e.Date, e.Type, e.Price, e.ID)
	if err != nil {
		return models.Expense{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Expense{}, ErrExpenseNotFound
	}
	return e, nil
}

func (r *PostgresExpenseRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *PostgresExpenseRepository) Between(ctx context.Context, dr DateRange) ([]models.Expense, error) {
	clause, args := rangeClause("date", dr, 0)
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1` + clause + ` ORDER BY date, id`
	return r.list(ctx, query, args...)
}

func (r *PostgresExpenseRepository) list(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Type, &e.Price); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
