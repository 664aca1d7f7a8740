// Package metrics exposes Prometheus instrumentation for noscrypt contexts.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation results recorded in the result label.
const (
	ResultOK      = "ok"
	ResultFalse   = "false"
	ResultInvalid = "invalid_input"
	ResultError   = "error"
)

// Collector records context lifecycle and operation metrics. A nil *Collector
// is valid and records nothing.
type Collector struct {
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	reseeds      prometheus.Counter
	contextsOpen prometheus.Gauge
}

// NewCollector creates a Collector and registers it on reg. Passing nil
// registers on prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "noscrypt_operations_total",
				Help: "Total number of noscrypt context operations by result",
			},
			[]string{"op", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "noscrypt_operation_duration_seconds",
				Help:    "Duration of noscrypt context operations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"op"},
		),
		reseeds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "noscrypt_reseeds_total",
				Help: "Total number of context reseeds",
			},
		),
		contextsOpen: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "noscrypt_contexts_open",
				Help: "Number of initialized noscrypt contexts",
			},
		),
	}
	for _, col := range []prometheus.Collector{c.operations, c.duration, c.reseeds, c.contextsOpen} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveOperation records one finished operation.
func (c *Collector) ObserveOperation(op, result string, d time.Duration) {
	if c == nil {
		return
	}
	c.operations.WithLabelValues(op, result).Inc()
	c.duration.WithLabelValues(op).Observe(d.Seconds())
}

// Reseeded counts one successful reseed.
func (c *Collector) Reseeded() {
	if c == nil {
		return
	}
	c.reseeds.Inc()
}

// ContextOpened tracks a newly initialized context.
func (c *Collector) ContextOpened() {
	if c == nil {
		return
	}
	c.contextsOpen.Inc()
}

// ContextClosed tracks a destroyed context.
func (c *Collector) ContextClosed() {
	if c == nil {
		return
	}
	c.contextsOpen.Dec()
}
