package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/bookkeeper/internal/config"
	"github.com/rogerio-castellano/bookkeeper/internal/db"
	api "github.com/rogerio-castellano/bookkeeper/internal/http"
	"github.com/rogerio-castellano/bookkeeper/internal/http/ban"
	"github.com/rogerio-castellano/bookkeeper/internal/http/handlers"
	rl "github.com/rogerio-castellano/bookkeeper/internal/http/rate_limiter"
	"github.com/rogerio-castellano/bookkeeper/internal/redissvc"
	"github.com/rogerio-castellano/bookkeeper/internal/repo"
	logx "github.com/rogerio-castellano/bookkeeper/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Bookkeeper API
// @version 1.0
// @description REST API for tracking products, expenses and sales transactions, with chart-ready reports.
// @host localhost:8080
// @BasePath /
func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("could not load configuration")
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Environment, Level: cfg.LogLevel})
	if err := cfg.Validate(); err != nil {
		logx.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := setupStorage(ctx, cfg)
	if err != nil {
		logx.Fatal().Err(err).Str("backend", cfg.DataBackend).Msg("could not set up storage")
	}
	if database != nil {
		defer database.Close()
	}

	if cfg.RedisURL != "" {
		redisService, err := redissvc.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logx.Fatal().Err(err).Msg("could not connect to redis")
		}
		defer redisService.Close()
		ban.SetRedisService(redisService)
	}
	ban.Configure(cfg.BanMaxStrikes, cfg.BanDuration)
	rl.Configure(cfg.RateLimitRPS, cfg.RateLimitBurst)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logx.Info().Str("addr", srv.Addr).Str("backend", cfg.DataBackend).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logx.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if rl.Enabled() {
		g.Go(func() error {
			rl.StartVisitorCleanupLoop(gctx)
			return nil
		})
	}
	if ban.Enabled() {
		g.Go(func() error {
			ban.StartDailyBanSummary(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logx.Fatal().Err(err).Msg("server stopped")
	}
}

// setupStorage wires the repositories for the configured backend. The returned
// database is nil for the in-memory backend.
func setupStorage(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if cfg.DataBackend == config.BackendMemory {
		handlers.SetProductRepo(repo.NewInMemoryProductRepository())
		handlers.SetExpenseRepo(repo.NewInMemoryExpenseRepository())
		handlers.SetTransactionRepo(repo.NewInMemoryTransactionRepository())
		logx.Warn().Msg("using in-memory storage; data is lost on restart")
		return nil, nil
	}

	if cfg.MigrateOnStart {
		if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		logx.Info().Msg("migrations applied")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetExpenseRepo(repo.NewPostgresExpenseRepository(database))
	handlers.SetTransactionRepo(repo.NewPostgresTransactionRepository(database))
	handlers.SetHealthChecker(db.Health{DB: database})
	return database, nil
}
