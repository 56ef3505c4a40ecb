package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry             *prometheus.Registry
	depositsTotal        prometheus.Counter
	withdrawalsTotal     prometheus.Counter
	withdrawalsRejected  prometheus.Counter
	undosTotal           prometheus.Counter
	commandDuration      prometheus.Histogram
	notificationsDropped prometheus.Counter
	accountBalance       *prometheus.GaugeVec
	logger               *slog.Logger
}

func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	collector := &Collector{
		registry: registry,
		depositsTotal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_deposits_total",
			Help: "Total number of executed deposit commands",
		}),
		withdrawalsTotal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_withdrawals_total",
			Help: "Total number of executed withdrawal commands",
		}),
		withdrawalsRejected: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_withdrawals_rejected_total",
			Help: "Total number of withdrawals rejected for insufficient funds",
		}),
		undosTotal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_undos_total",
			Help: "Total number of undone commands",
		}),
		commandDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_command_duration_seconds",
			Help:    "Time taken to execute a command",
			Buckets: prometheus.DefBuckets,
		}),
		notificationsDropped: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_notifications_dropped_total",
			Help: "Notifications dropped because a dispatch queue was full",
		}),
		accountBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "ledger_account_balance",
			Help: "Current account balance",
		}, []string{"account_id"}),
		logger: logger,
	}

	return collector
}

func (c *Collector) RecordDeposit(duration time.Duration) {
	c.depositsTotal.Inc()
	c.commandDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordWithdrawal(duration time.Duration, success bool) {
	if success {
		c.withdrawalsTotal.Inc()
	} else {
		c.withdrawalsRejected.Inc()
	}
	c.commandDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordUndo() {
	c.undosTotal.Inc()
}

func (c *Collector) RecordDroppedNotifications(count int64) {
	c.notificationsDropped.Add(float64(count))
}

func (c *Collector) UpdateAccountBalance(accountID string, balance float64) {
	c.accountBalance.WithLabelValues(accountID).Set(balance)
}

func (c *Collector) GetHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) StartMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.GetHandler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		c.logger.Info("Starting metrics server", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()

	return server
}

func (c *Collector) Shutdown(ctx context.Context) error {
	c.logger.Info("Metrics collector shutdown complete")
	return nil
}
