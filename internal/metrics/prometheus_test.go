package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics_IsolatedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Bookings.WithLabelValues("ok").Inc()
	m.Bookings.WithLabelValues("ok").Inc()
	m.Bookings.WithLabelValues("seats_exhausted").Inc()

	if got := testutil.ToFloat64(m.Bookings.WithLabelValues("ok")); got != 2 {
		t.Fatalf("ok bookings got %v want 2", got)
	}
	if got := testutil.CollectAndCount(m.Bookings); got != 2 {
		t.Fatalf("label series got %d want 2", got)
	}
}

func TestResult(t *testing.T) {
	kind := func(error) string { return "boom" }
	if Result(nil, kind) != "ok" {
		t.Fatalf("nil error must be ok")
	}
	if Result(errors.New("x"), kind) != "boom" {
		t.Fatalf("error kind not used")
	}
}
