package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"
)

var (
	connectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_connections_active",
		Help: "Open client connections, authenticated or not.",
	})

	sessionsOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_sessions_online",
		Help: "Authenticated sessions currently in the registry.",
	})

	messagesRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_messages_relayed_total",
		Help: "Messages delivered to recipients, by kind.",
	}, []string{"kind"})

	deliveryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_delivery_failures_total",
		Help: "Writes to recipients that failed and forced a disconnect.",
	})
)

// ServeMetrics exposes /metrics on addr, optionally behind basic auth.
// Blocks; run on its own goroutine.
func ServeMetrics(addr, username, password string, logger *slog.Logger) {
	metrics := promhttp.Handler().ServeHTTP
	if username != "" {
		metrics = BasicAuth(metrics, username, password, "metrics")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", metrics)

	logger.Info("Metrics listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server stopped", "err", err.Error())
	}
}
