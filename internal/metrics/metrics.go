// Package metrics exposes request-level prometheus instrumentation for
// the sync endpoint.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studentmoney",
			Subsystem: "http",
			Name:      "requests_total",
		},
		[]string{"method", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "studentmoney",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "status"},
	)
)

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	requestsTotal.WithLabelValues(method, code).Inc()
	requestDuration.WithLabelValues(method, code).Observe(elapsed.Seconds())
}

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
