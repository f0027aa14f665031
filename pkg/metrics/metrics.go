// Package metrics exposes Prometheus instrumentation for the POS service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks HTTP latency by method, route and status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shopflow",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// CheckoutsTotal counts committed invoices by payment mode.
	CheckoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopflow",
			Subsystem: "billing",
			Name:      "checkouts_total",
			Help:      "Total invoices committed.",
		},
		[]string{"payment_mode"},
	)

	// SalesAmount accumulates the rounded totals of committed invoices.
	SalesAmount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shopflow",
			Subsystem: "billing",
			Name:      "sales_amount_total",
			Help:      "Sum of invoice grand totals.",
		},
	)

	// CartRejections counts cart operations refused with a warning.
	CartRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopflow",
			Subsystem: "billing",
			Name:      "cart_rejections_total",
			Help:      "Cart mutations rejected with a user-facing warning.",
		},
		[]string{"operation"}, // "add" | "quantity" | "checkout"
	)
)

// Registry is the Prometheus registry served on /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	Registry.MustRegister(
		RequestDuration,
		CheckoutsTotal,
		SalesAmount,
		CartRejections,
	)
}

// Handler returns the HTTP handler for the metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
