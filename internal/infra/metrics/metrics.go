// Package metrics counts interpreted exchanges with Prometheus collectors.
//
// s3lens is a short-lived CLI, so nothing is served over HTTP: metrics live in a private
// registry and are written out in the node_exporter textfile format at the end of a run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/ports"
)

// Metrics tracks exchange outcomes.
type Metrics struct {
	registry *prometheus.Registry

	// ExchangesTotal counts exchanges by endpoint kind, outcome class and service code
	ExchangesTotal *prometheus.CounterVec

	// ExchangeDuration tracks transport latency by endpoint kind
	ExchangeDuration *prometheus.HistogramVec

	// ResponseBytes tracks body sizes of successful data exchanges
	ResponseBytes prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ExchangesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "s3lens_exchanges_total",
				Help: "Total interpreted exchanges by kind, outcome class and service error code",
			},
			[]string{"kind", "class", "code"},
		),
		ExchangeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "s3lens_exchange_duration_seconds",
				Help:    "Exchange duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		ResponseBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "s3lens_data_response_bytes",
				Help:    "Size of data payloads returned by get-object exchanges",
				Buckets: prometheus.ExponentialBuckets(256, 4, 10),
			},
		),
	}

	m.registry.MustRegister(
		m.ExchangesTotal,
		m.ExchangeDuration,
		m.ResponseBytes,
	)
	return m
}

var _ ports.OutcomeRecorder = (*Metrics)(nil)

// Record counts one interpreted exchange. A nil *Metrics is a no-op.
func (m *Metrics) Record(o domain.Outcome, d time.Duration) {
	if m == nil {
		return
	}

	code := ""
	if o.ServiceError != nil {
		code = o.ServiceError.ErrorCode()
	}
	m.ExchangesTotal.WithLabelValues(string(o.Kind), string(o.Class), code).Inc()
	m.ExchangeDuration.WithLabelValues(string(o.Kind)).Observe(d.Seconds())

	if b, ok := o.Value.([]byte); ok && o.OK() {
		m.ResponseBytes.Observe(float64(len(b)))
	}
}

// WriteTextfile writes every collected metric to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return &domain.OpError{
			Op:   "metrics.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

// Null returns nil, which acts as a no-op recorder.
func Null() *Metrics {
	return nil
}
