package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/letehaha/budget-tracker-be-sub001/internal/apperr"
)

// Collector records ledger activity. A nil *Collector discards everything,
// so services can run without metrics in tests.
type Collector struct {
	registry         *prometheus.Registry
	mutations        *prometheus.CounterVec
	mutationDuration *prometheus.HistogramVec
	refundRejections *prometheus.CounterVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		mutations: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_mutations_total",
			Help: "Ledger mutations by operation and outcome",
		}, []string{"operation", "outcome"}),
		mutationDuration: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_mutation_duration_seconds",
			Help:    "Time taken by a ledger mutation including its database transaction",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		refundRejections: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "refund_rejections_total",
			Help: "Refund links rejected by validation, by error kind",
		}, []string{"kind"}),
	}
}

// Outcome names the error class of a finished operation.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperr.ErrValidation):
		return "validation"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

// ObserveMutation is meant to be deferred with the start time of the operation.
func (c *Collector) ObserveMutation(operation string, start time.Time, err error) {
	if c == nil {
		return
	}

	c.mutations.WithLabelValues(operation, Outcome(err)).Inc()
	c.mutationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (c *Collector) RefundRejected(err error) {
	if c == nil || err == nil {
		return
	}

	c.refundRejections.WithLabelValues(Outcome(err)).Inc()
}

func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
