// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unclebandit/campaign-scheduler/internal/config"
	"github.com/unclebandit/campaign-scheduler/internal/controller"
	"github.com/unclebandit/campaign-scheduler/internal/db"
	"github.com/unclebandit/campaign-scheduler/internal/handler"
	"github.com/unclebandit/campaign-scheduler/internal/logx"
	"github.com/unclebandit/campaign-scheduler/internal/queue"
	"github.com/unclebandit/campaign-scheduler/internal/repository"
	"github.com/unclebandit/campaign-scheduler/internal/seed"
	"github.com/unclebandit/campaign-scheduler/internal/service"
	"github.com/unclebandit/campaign-scheduler/internal/validation"
)

func main() {
	if err := run(); err != nil {
		logx.L().Errorw("server_exit", "err", err)
		logx.Sync()
		os.Exit(1)
	}
}

func run() error {
	// Load .env and environment
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logx.Init(cfg.LogLevel)
	defer logx.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init store
	store, closeStore, err := openStore(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.SeedOnStart {
		if _, err := seed.Seed(ctx, store, time.Now()); err != nil {
			return err
		}
	}

	// Lifecycle events
	q, closeQueue, err := openQueue(cfg.AMQP)
	if err != nil {
		return err
	}
	defer closeQueue()

	catalogService := &service.CatalogService{
		Store:     store,
		Validator: &validation.Engine{PatchEmptyTemplateNotFound: cfg.PatchEmptyTemplateNotFound},
		Queue:     q,
		Topic:     cfg.AMQP.Queue,
	}
	catalogController := &controller.CatalogController{CatalogService: catalogService}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.NewRouter(catalogController, cfg.HTTP.RequestTimeout),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logx.L().Infow("server_listening", "addr", cfg.HTTP.Addr, "db_driver", cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logx.L().Infow("server_shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.DB) (repository.CatalogRepositoryInterface, func(), error) {
	if cfg.Driver == "memory" {
		logx.L().Infow("store_selected", "driver", "memory")
		return repository.NewMemoryStore(), func() {}, nil
	}

	conn, dialect, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closeConn := func() { closeDB(conn) }
	if err := db.Migrate(ctx, conn, dialect); err != nil {
		closeConn()
		return nil, nil, err
	}
	return repository.NewSQLStore(conn, dialect), closeConn, nil
}

// openQueue dials RabbitMQ when configured. Otherwise events stay in process
// and are consumed by the audit logger.
func openQueue(cfg config.AMQP) (queue.Queue, func(), error) {
	if cfg.URL != "" {
		q, err := queue.DialAMQP(cfg.URL)
		if err != nil {
			return nil, nil, err
		}
		logx.L().Infow("queue_selected", "kind", "amqp", "queue", cfg.Queue)
		return q, func() {
			if err := q.Close(); err != nil {
				logx.L().Warnw("amqp_close_failed", "err", err)
			}
		}, nil
	}

	q := queue.NewInMemoryQueue()
	if err := queue.StartEventAuditor(q, cfg.Queue); err != nil {
		return nil, nil, err
	}
	logx.L().Infow("queue_selected", "kind", "memory", "queue", cfg.Queue)
	return q, q.Drain, nil
}

func closeDB(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logx.L().Warnw("db_close_failed", "err", err)
	}
}
