package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/letehaha/budget-tracker-be-sub001/internal/account"
	accountStore "github.com/letehaha/budget-tracker-be-sub001/internal/account/store"
	"github.com/letehaha/budget-tracker-be-sub001/internal/balance"
	balanceStore "github.com/letehaha/budget-tracker-be-sub001/internal/balance/store"
	"github.com/letehaha/budget-tracker-be-sub001/internal/config"
	"github.com/letehaha/budget-tracker-be-sub001/internal/currency"
	currencyStore "github.com/letehaha/budget-tracker-be-sub001/internal/currency/store"
	"github.com/letehaha/budget-tracker-be-sub001/internal/database"
	ledgerHttp "github.com/letehaha/budget-tracker-be-sub001/internal/http"
	accountHandler "github.com/letehaha/budget-tracker-be-sub001/internal/http/account"
	txHandler "github.com/letehaha/budget-tracker-be-sub001/internal/http/transaction"
	"github.com/letehaha/budget-tracker-be-sub001/internal/metrics"
	"github.com/letehaha/budget-tracker-be-sub001/internal/transaction"
	txStore "github.com/letehaha/budget-tracker-be-sub001/internal/transaction/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unavailable, rates will not be cached", "addr", cfg.Redis.Addr, "error", err)
		}
	}

	var (
		collector  = metrics.NewCollector()
		transactor = database.NewTransactor(db)
		currencies = currencyStore.New(db)
		converter  = currency.NewConverter(currencies, currency.NewResolver(currencies, rdb, cfg.Redis.RateTTL))
		history    = balance.NewService(balanceStore.New(db))

		accountService     = account.NewService(accountStore.New(db), currencies, converter, history, transactor, collector)
		transactionService = transaction.NewService(txStore.New(db), accountService, converter, history, transactor, collector)
	)

	router := ledgerHttp.New(
		ledgerHttp.Options{
			JWTSecret:      []byte(cfg.Auth.JWTSecret),
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Timeout:        cfg.Server.Timeout,
			Metrics:        collector.Handler(),
		},
		accountHandler.NewHandler(accountService),
		txHandler.NewHandler(transactionService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "name", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
