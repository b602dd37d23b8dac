/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetrics holds Prometheus metrics for CLI command executions.
type CommandMetrics struct {
	ExecutionsTotal   *prometheus.CounterVec
	ExecutionDuration *prometheus.HistogramVec
}

// NewCommandMetrics creates and registers command execution metrics on the
// given registry.
func NewCommandMetrics(reg *prometheus.Registry) *CommandMetrics {
	m := &CommandMetrics{
		ExecutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "command",
			Name:      "executions_total",
			Help:      "Total number of CLI command executions by tool and status.",
		}, []string{"tool", "status"}),

		ExecutionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "command",
			Name:      "execution_duration_seconds",
			Help:      "Histogram of CLI command execution latencies in seconds.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"tool"}),
	}

	reg.MustRegister(m.ExecutionsTotal, m.ExecutionDuration)
	return m
}

// RecordExecution records one command execution. The tool label is the first
// whitespace-separated field of the command string.
func (m *CommandMetrics) RecordExecution(command string, success bool, duration time.Duration) {
	tool := "unknown"
	if fields := strings.Fields(command); len(fields) > 0 {
		tool = fields[0]
	}
	status := "error"
	if success {
		status = "success"
	}
	m.ExecutionsTotal.WithLabelValues(tool, status).Inc()
	m.ExecutionDuration.WithLabelValues(tool).Observe(duration.Seconds())
}
