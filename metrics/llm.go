/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LLMMetrics holds Prometheus metrics for LLM provider interactions.
type LLMMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewLLMMetrics creates and registers LLM metrics on the given registry.
func NewLLMMetrics(reg *prometheus.Registry) *LLMMetrics {
	m := &LLMMetrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Total number of LLM requests by provider and status.",
		}, []string{"provider", "status"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Histogram of LLM request latencies in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"provider"}),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration)
	return m
}

// RecordRequest records one LLM generation attempt.
func (m *LLMMetrics) RecordRequest(provider string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.RequestsTotal.WithLabelValues(provider, status).Inc()
	m.RequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}
