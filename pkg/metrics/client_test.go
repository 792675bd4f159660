package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)

	m.ObserveRequest("users", "success", 10*time.Millisecond)
	m.ObserveRequest("users", "error", 5*time.Millisecond)
	m.ObserveRequest("", "", time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("users", "success")); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("users", "error")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("unknown", "unknown")); got != 1 {
		t.Fatalf("expected empty labels normalized, got %v", got)
	}
}

func TestNilSafeWithoutRegistry(t *testing.T) {
	var m *ClientMetrics
	m.ObserveRequest("users", "success", time.Millisecond)
	m.SetConnected(true)
	m.IncReconnect()

	m = NewClientMetrics(nil)
	m.ObserveRequest("users", "success", time.Millisecond)
	m.SetConnected(false)
	m.IncReconnect()
}

func TestConnectedGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)

	m.SetConnected(true)
	if got := testutil.ToFloat64(m.connected); got != 1 {
		t.Fatalf("expected gauge 1, got %v", got)
	}
	m.SetConnected(false)
	if got := testutil.ToFloat64(m.connected); got != 0 {
		t.Fatalf("expected gauge 0, got %v", got)
	}
}
