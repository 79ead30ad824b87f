package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shuttle"

// Metrics holds all prometheus metrics
type Metrics struct {
	Bookings        *prometheus.CounterVec
	Intents         *prometheus.CounterVec
	Logins          *prometheus.CounterVec
	AdminEdits      *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the service metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Bookings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Seat booking attempts by result",
		}, []string{"result"}),
		Intents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Travel intent submissions by result",
		}, []string{"result"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_logins_total",
			Help:      "Admin login attempts by result",
		}, []string{"result"}),
		AdminEdits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_edits_total",
			Help:      "Admin bus/route edits by operation and result",
		}, []string{"operation", "result"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Default is registered on the global prometheus registry served at /metrics.
var Default = NewMetrics(prometheus.DefaultRegisterer)

// Result labels a finished operation: "ok" or the error kind.
func Result(err error, kind func(error) string) string {
	if err == nil {
		return "ok"
	}
	return kind(err)
}
