package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const queryTimeout = 3 * time.Second

const uniqueViolation = "23505"

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// translate maps driver errors onto repository errors.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicatedValueUnique
	}
	return err
}

// rangeClause appends the date bounds of r to a WHERE clause that already has
// argc positional arguments.
func rangeClause(column string, r DateRange, argc int) (string, []any) {
	clause := ""
	var args []any
	if r.From != nil {
		argc++
		clause += " AND " + column + fmt.Sprintf(" >= $%d", argc)
		args = append(args, *r.From)
	}
	if r.To != nil {
		argc++
		clause += " AND " + column + fmt.Sprintf(" <= $%d", argc)
		args = append(args, *r.To)
	}
	return clause, args
}
