package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hypermart/pos-backend/api/routes"
	"github.com/hypermart/pos-backend/internal/catalog"
	"github.com/hypermart/pos-backend/internal/ledger"
	"github.com/hypermart/pos-backend/internal/pos"
	"github.com/hypermart/pos-backend/internal/receipts"
	"github.com/hypermart/pos-backend/internal/restock"
	"github.com/hypermart/pos-backend/internal/sales"
	"github.com/hypermart/pos-backend/internal/settings"
	"github.com/hypermart/pos-backend/pkg/config"
	"github.com/hypermart/pos-backend/pkg/db"
	"github.com/hypermart/pos-backend/pkg/logger"
	"github.com/hypermart/pos-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "pos-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "pos-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(cfg.DB)
	if err != nil {
		logg.Error(context.Background(), "failed to open database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRun(context.Background(), cfg, dbClient, logg); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient)
	catalogService := catalog.NewService(catalogRepo)
	settingsService := settings.NewService(settings.NewRepository(dbClient))
	ledgerService := ledger.NewService(ledger.NewRepository(dbClient))
	salesService := sales.NewService(dbClient, logg, sales.NewRepository(dbClient), catalogRepo, settingsService, ledgerService)
	restockService := restock.NewService(dbClient, logg, catalogRepo, ledgerService)
	posManager := pos.NewManager(logg, catalogService, salesService)
	receiptGen := receipts.NewGenerator(cfg.Store)

	// Reclaim carts abandoned mid-shift.
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			posManager.Prune(context.Background())
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting pos api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, dbClient,
			catalogService, salesService, ledgerService, restockService,
			posManager, receiptGen,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "pos api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
