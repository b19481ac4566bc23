package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BasketMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_mutations_total",
		Help: "Total number of basket mutations by operation",
	}, []string{"op"})

	BasketPersistFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "basket_persist_failures_total",
		Help: "Total number of best-effort basket writes that failed",
	})

	CheckoutOpenedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_opened_total",
		Help: "Total number of checkout dialogs opened by method",
	}, []string{"method"})

	CheckoutOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_outcomes_total",
		Help: "Total number of processor outcome events by type",
	}, []string{"outcome"})

	QuoteRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quote_refreshes_total",
		Help: "Total number of successful quote refreshes",
	})

	QuoteRefreshFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quote_refresh_failures_total",
		Help: "Total number of failed quote refreshes",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
