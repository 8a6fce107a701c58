package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPaymentMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPaymentMetrics(reg)

	m.IncCreated()
	m.IncCreated()
	m.IncConfirmed()
	m.IncFailed("provider")
	m.IncFailed("")

	if got := testutil.ToFloat64(m.intentsCreated); got != 2 {
		t.Fatalf("expected 2 created, got %v", got)
	}
	if got := testutil.ToFloat64(m.intentsConfirmed); got != 1 {
		t.Fatalf("expected 1 confirmed, got %v", got)
	}
	if got := testutil.ToFloat64(m.intentsFailed.WithLabelValues("provider")); got != 1 {
		t.Fatalf("expected 1 provider failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.intentsFailed.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected empty stage folded to unknown, got %v", got)
	}
}

func TestPaymentMetricsNilSafe(t *testing.T) {
	var m *PaymentMetrics
	m.IncCreated()
	m.IncConfirmed()
	m.IncFailed("x")

	empty := NewPaymentMetrics(nil)
	empty.IncCreated()
}
