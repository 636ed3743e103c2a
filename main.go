package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/task-tracker/internal/config"
	"github.com/msomdec/task-tracker/internal/domain"
	"github.com/msomdec/task-tracker/internal/handler"
	"github.com/msomdec/task-tracker/internal/logger"
	"github.com/msomdec/task-tracker/internal/repository/postgres"
	"github.com/msomdec/task-tracker/internal/repository/sqlite"
	"github.com/msomdec/task-tracker/internal/service"
)

// store is what the services need from a backend.
type store interface {
	domain.Database
	domain.Store
	domain.Transactor
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.New(slog.LevelInfo, config.LogFormatText).Fatal("invalid configuration", "error", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log.Logger)

	db, err := openStore(context.Background(), cfg.Database)
	if err != nil {
		log.Fatal("failed to open database", "driver", cfg.Database.Driver, "error", err)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}
	slog.Info("database migrations applied", "driver", cfg.Database.Driver)

	tokens := service.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuthService(db.Users(), tokens, service.NewPasswordHasher(cfg.BcryptCost))
	projectService := service.NewProjectService(db, db)
	taskService := service.NewTaskService(db.Tasks())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, projectService, taskService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.RequestLogger(handler.SecurityHeaders(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		return
	}
	slog.Info("server stopped")
}

func openStore(ctx context.Context, cfg config.Database) (store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
