// Package app assembles the application: configuration, logging,
// database, adapters, services, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ideagarden/backend/internal/adapter/llm"
	"github.com/ideagarden/backend/internal/adapter/postgres"
	conversationrepo "github.com/ideagarden/backend/internal/adapter/postgres/conversation"
	entryrepo "github.com/ideagarden/backend/internal/adapter/postgres/entry"
	idearepo "github.com/ideagarden/backend/internal/adapter/postgres/idea"
	writingrepo "github.com/ideagarden/backend/internal/adapter/postgres/writing"
	"github.com/ideagarden/backend/internal/adapter/s3store"
	"github.com/ideagarden/backend/internal/config"
	ideasvc "github.com/ideagarden/backend/internal/service/idea"
	journalsvc "github.com/ideagarden/backend/internal/service/journal"
	writingsvc "github.com/ideagarden/backend/internal/service/writing"
	"github.com/ideagarden/backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects
// to the database, wires adapters and services, and serves HTTP until
// the process receives SIGINT or SIGTERM.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("parse database config: %w", err)
	}
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	store, err := s3store.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// Adapters.
	txManager := postgres.NewTxManager(pool)
	entries := entryrepo.New(pool)
	ideas := idearepo.New(pool)
	workspaces := writingrepo.New(pool)
	conversations := conversationrepo.New(pool)
	model := llm.New(cfg.Anthropic)

	// Services.
	journalService := journalsvc.NewService(logger, entries, ideas, model, txManager)
	ideaService := ideasvc.NewService(logger, ideas, model)
	writingService := writingsvc.NewService(logger, workspaces, ideas, conversations, model, store)

	// HTTP.
	router := rest.NewRouter(logger, cfg,
		rest.NewHealthHandler(pool, BuildVersion()),
		rest.NewJournalHandler(journalService, logger),
		rest.NewIdeaHandler(ideaService, logger),
		rest.NewWritingHandler(writingService, logger),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
