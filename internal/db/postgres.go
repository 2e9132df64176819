package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const connectTimeout = 5 * time.Second

var ErrMissingURL = errors.New("database url is empty")

// Connect opens a pgx-backed pool and verifies it answers.
func Connect(ctx context.Context, url string) (*sql.DB, error) {
	if url == "" {
		return nil, ErrMissingURL
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// Health reports whether the database is reachable. A nil DB is always healthy,
// which is the case when the service runs on the in-memory backend.
type Health struct {
	DB *sql.DB
}

func (h Health) Ping(ctx context.Context) error {
	if h.DB == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return h.DB.PingContext(ctx)
}
