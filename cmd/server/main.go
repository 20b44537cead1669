// Package main initializes and starts the catalog HTTP server, setting up
// configuration, logging, the storage backend, services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/disenos/catalogo/internal/config"
	"github.com/disenos/catalogo/internal/db"
	"github.com/disenos/catalogo/internal/logger"
	"github.com/disenos/catalogo/internal/models"
	"github.com/disenos/catalogo/internal/repository"
	"github.com/disenos/catalogo/internal/server/handler/http"
	"github.com/disenos/catalogo/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Pick the storage backend: PostgreSQL when a DSN is configured,
	// otherwise the in-memory store.
	var store repository.Storage
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		if err := db.SeedAdmin(context.Background(), postgresDB, options.AdminUsername, options.AdminPassword); err != nil {
			zapLogger.Fatal("cannot seed admin user", zap.Error(err))
		}
		store = repository.NewPostgresStorage(postgresDB)
		zapLogger.Info("using postgres backend")
	} else {
		memory := repository.NewMemoryStorage()
		if _, err := memory.CreateUser(context.Background(), &models.CreateUser{
			Username: options.AdminUsername,
			Password: options.AdminPassword,
		}); err != nil {
			zapLogger.Fatal("cannot seed admin user", zap.Error(err))
		}
		if err := seedDemoCatalog(context.Background(), memory); err != nil {
			zapLogger.Warn("demo catalog seed incomplete", zap.Error(err))
		}
		store = memory
		zapLogger.Info("using in-memory backend")
	}

	// Initialize business-logic services.
	catalogService := service.NewCatalog(store)
	authService := service.NewAuth(store)

	// Create HTTP handlers for products and auth endpoints.
	productHandler := &http.ProductHandler{Catalog: catalogService, BaseURL: options.BaseURL}
	authHandler := &http.AuthHandler{AuthService: authService}

	// Build the router with middleware and routes.
	router := http.NewRouter(productHandler, authHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
