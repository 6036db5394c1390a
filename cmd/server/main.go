package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dispatch-rota/scheduler/internal/config"
	httpapi "github.com/dispatch-rota/scheduler/internal/transport/http"
	"github.com/dispatch-rota/scheduler/pkg/postgres"
	"github.com/dispatch-rota/scheduler/pkg/utils/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	env := os.Getenv("SCHEDULER_ENV")
	if env == "" {
		env = "dev"
	}

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	router := chi.NewRouter()
	httpapi.NewHandler(database, cfg, logger).RegisterRoutes(router)

	logger.Info("Starting HTTP server", zap.String("addr", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}
