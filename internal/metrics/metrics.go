package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Concourse
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Booking engine metrics
	BookingsCreatedTotal   prometheus.Counter
	BookingsCancelledTotal prometheus.Counter
	CheckInsTotal          prometheus.Counter
	PointsAwardedTotal     prometheus.Counter
	SweptFlightsTotal      prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concourse_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "concourse_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "concourse_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		BookingsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_bookings_created_total",
				Help: "Total bookings successfully created",
			},
		),
		BookingsCancelledTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_bookings_cancelled_total",
				Help: "Total bookings cancelled by their owner",
			},
		),
		CheckInsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_checkins_total",
				Help: "Total successful check-ins, including idempotent repeats",
			},
		),
		PointsAwardedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_points_awarded_total",
				Help: "Total loyalty points awarded across all operations",
			},
		),
		SweptFlightsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_swept_flights_total",
				Help: "Total departed flights removed by the periodic sweep",
			},
		),
	}
}
