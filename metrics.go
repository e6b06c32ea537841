/*

Prometheus metrics of session store operations.

*/

package memsession

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names used as the "op" label.
const (
	opGet     = "get"
	opSet     = "set"
	opDestroy = "destroy"
	opClear   = "clear"
)

// Metrics records session store operations in Prometheus collectors.
type Metrics struct {
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the store collectors and registers them with reg.
// Pass nil to skip registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "memsession_operations_total",
				Help: "Total number of session store operations by outcome",
			},
			[]string{"op", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "memsession_operation_duration_seconds",
				Help:    "Duration of session store round trips to the key-value client",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.ops, m.duration)
	}
	return m
}

// observe records one operation. result is "hit", "miss", "ok" or "error".
// Safe to call on a nil *Metrics.
func (m *Metrics) observe(op, result string, start time.Time) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
