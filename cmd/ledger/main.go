package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"bank_ledger/internal/api"
	"bank_ledger/internal/domain"
	"bank_ledger/internal/engine"
	"bank_ledger/internal/repository/memory"
	"bank_ledger/internal/service"
	"bank_ledger/pkg/config"
	"bank_ledger/pkg/crypto"
	"bank_ledger/pkg/metrics"
)

const (
	appName = "bank_ledger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel)
	logger.Info("Starting application",
		slog.String("name", appName))

	metricsCollector := metrics.NewCollector(logger)
	signer := crypto.NewSigner(cfg.SecretKey, logger)
	accountRepo := memory.NewAccountRepository()
	customerRepo := memory.NewCustomerRepository()
	ledgerEngine := engine.NewTransactionEngine(accountRepo, customerRepo, logger)
	dispatcher := setupDispatcher(cfg, logger)

	if cfg.SeedDemoAccounts {
		if err := seedDemoAccounts(ledgerEngine, dispatcher); err != nil {
			logger.Error("Failed to seed demo accounts", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	apiHandler := api.NewAPIHandler(ledgerEngine, metricsCollector, signer, logger)
	metricsServer := metricsCollector.StartMetricsServer(cfg.MetricsAddr)
	httpServer := startHTTPServer(cfg.ServerAddr, apiHandler, logger)
	waitForShutdown(logger, httpServer, metricsServer, dispatcher, metricsCollector)
	logger.Info("Application shutdown complete")
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

func setupDispatcher(cfg config.Config, logger *slog.Logger) *service.Dispatcher {
	emailSender := &service.MockEmailSender{}
	smsSender := &service.MockSMSSender{}

	return service.NewDispatcher(
		"alerts",
		"customers@example.com",
		emailSender,
		smsSender,
		cfg.DispatchWorkers,
		cfg.DispatchQueue,
		logger,
	)
}

// seedDemoAccounts recreates the demo fixture: Alice with a savings account
// and Bob with a current account, both greeted with a welcome notification.
func seedDemoAccounts(ledgerEngine *engine.TransactionEngine, dispatcher *service.Dispatcher) error {
	ctx := context.Background()

	alice, err := ledgerEngine.CreateCustomer(ctx, "Alice")
	if err != nil {
		return err
	}
	bob, err := ledgerEngine.CreateCustomer(ctx, "Bob")
	if err != nil {
		return err
	}

	savings, err := ledgerEngine.CreateAccount(ctx, "S101", "Alice's Savings", decimal.NewFromInt(1000))
	if err != nil {
		return err
	}
	current, err := ledgerEngine.CreateAccount(ctx, "C202", "Bob's Current", decimal.NewFromInt(500))
	if err != nil {
		return err
	}

	savings.Attach(alice)
	savings.Attach(dispatcher)
	current.Attach(bob)
	current.Attach(dispatcher)

	savings.SetInterestStrategy(domain.StrategySavings)
	current.SetInterestStrategy(domain.StrategyCurrent)

	savings.Notify("Welcome to your Savings Account!")
	current.Notify("Welcome to your Current Account!")

	return nil
}

func startHTTPServer(addr string, apiHandler *api.APIHandler, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()

	apiHandler.RegisterRoutes(mux)

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"name": "%s", "status": "ok"}`, appName)
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	return server
}

func waitForShutdown(
	logger *slog.Logger,
	httpServer *http.Server,
	metricsServer *http.Server,
	dispatcher *service.Dispatcher,
	metricsCollector *metrics.Collector,
) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Error("Metrics server shutdown failed", slog.String("error", err.Error()))
	}

	metricsCollector.RecordDroppedNotifications(dispatcher.Dropped())
	if err := dispatcher.Shutdown(ctx); err != nil {
		logger.Error("Notification dispatcher shutdown failed", slog.String("error", err.Error()))
	}
}
