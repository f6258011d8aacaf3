package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	requestsTotal      *prometheus.CounterVec
	latencySeconds     *prometheus.HistogramVec
	errorsTotal        *prometheus.CounterVec
	ledgerCommitsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "elearn_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "elearn_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "elearn_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		ledgerCommitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "elearn_ledger_commits_total",
			Help: "Total number of committed ledger steps by operation.",
		}, []string{"operation"})

		prometheus.MustRegister(requestsTotal, latencySeconds, errorsTotal, ledgerCommitsTotal)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// LedgerCommits exposes the counter for committed ledger steps.
func LedgerCommits() *prometheus.CounterVec {
	RegisterMetrics()
	return ledgerCommitsTotal
}
