/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ServerMetrics holds Prometheus metrics for server-level information.
type ServerMetrics struct {
	Info   *prometheus.GaugeVec
	uptime prometheus.GaugeFunc
}

// NewServerMetrics creates and registers server metrics on the given
// registry. startTime is the server boot time used to compute uptime.
func NewServerMetrics(reg *prometheus.Registry, version string, startTime time.Time) *ServerMetrics {
	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "server",
		Name:      "info",
		Help:      "Server metadata (version). Value is always 1.",
	}, []string{"version"})

	info.WithLabelValues(version).Set(1)

	uptime := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "server",
		Name:      "uptime_seconds",
		Help:      "Server uptime in seconds.",
	}, func() float64 {
		return time.Since(startTime).Seconds()
	})

	reg.MustRegister(info, uptime)

	return &ServerMetrics{
		Info:   info,
		uptime: uptime,
	}
}
