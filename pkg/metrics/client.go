package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ClientMetrics records API call and realtime connection activity.
type ClientMetrics struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	connected  prometheus.Gauge
	reconnects prometheus.Counter
}

// NewClientMetrics registers the console metrics on the provided registerer.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	if reg == nil {
		return &ClientMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_requests_total",
		Help: "API calls by resource and outcome.",
	}, []string{"resource", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_request_duration_seconds",
		Help:    "API call duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})
	connected := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_connected",
		Help: "Whether the realtime channel is currently live.",
	})
	reconnects := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "realtime_reconnects_total",
		Help: "Reconnect attempts on the realtime channel.",
	})
	reg.MustRegister(requests, duration, connected, reconnects)
	return &ClientMetrics{
		requests:   requests,
		duration:   duration,
		connected:  connected,
		reconnects: reconnects,
	}
}

// ObserveRequest records one API call.
func (m *ClientMetrics) ObserveRequest(resource, outcome string, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(normalizeLabel(resource), normalizeLabel(outcome)).Inc()
	m.duration.WithLabelValues(normalizeLabel(resource)).Observe(elapsed.Seconds())
}

// SetConnected flags the realtime channel state.
func (m *ClientMetrics) SetConnected(connected bool) {
	if m == nil || m.connected == nil {
		return
	}
	if connected {
		m.connected.Set(1)
		return
	}
	m.connected.Set(0)
}

// IncReconnect counts one reconnect attempt.
func (m *ClientMetrics) IncReconnect() {
	if m == nil || m.reconnects == nil {
		return
	}
	m.reconnects.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
