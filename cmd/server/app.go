package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mkazantsev/bookmart-api/internal/api"
	"github.com/mkazantsev/bookmart-api/internal/config"
	"github.com/mkazantsev/bookmart-api/internal/platform/logger"
	"github.com/mkazantsev/bookmart-api/internal/platform/postgres"
	"github.com/mkazantsev/bookmart-api/internal/service"
	"github.com/mkazantsev/bookmart-api/internal/service/auth"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	router http.Handler
}

// newApplication loads configuration and wires every component: logger,
// database, stores, services, and the HTTP router.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	sellerStore := postgres.NewPostgresSellerStore(db, log)
	bookStore := postgres.NewPostgresBookStore(db, log)

	sellerService := service.NewSellerService(sellerStore, bookStore, auth.NewBcryptHasher(), log)
	bookService := service.NewBookService(bookStore, log)

	return &application{
		config: cfg,
		logger: log,
		db:     db,
		router: api.NewRouter(sellerService, bookService, jwtService),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
	}
}
