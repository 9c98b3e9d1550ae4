package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors on a private registry so several
// instances can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	BookingsCreated prometheus.Counter
	BookingsUpdated prometheus.Counter
	BookingsDeleted prometheus.Counter
	BookingRejected *prometheus.CounterVec
	AdminLogins     *prometheus.CounterVec
	RateLimited     prometheus.Counter
	EventsReceived  *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sewa_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code",
		}, []string{"route", "method", "status"}),

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sewa_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		BookingsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "sewa_bookings_created_total",
			Help: "Bookings persisted",
		}),

		BookingsUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "sewa_bookings_updated_total",
			Help: "Bookings updated in place",
		}),

		BookingsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "sewa_bookings_deleted_total",
			Help: "Booking rows deleted",
		}),

		BookingRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sewa_booking_rejections_total",
			Help: "Booking mutations rejected by reason",
		}, []string{"reason"}),

		AdminLogins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sewa_admin_logins_total",
			Help: "Admin login attempts by result",
		}, []string{"result"}),

		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "sewa_rate_limited_total",
			Help: "Requests refused by the rate limiter",
		}),

		EventsReceived: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sewa_events_received_total",
			Help: "Booking lifecycle events consumed by the audit log",
		}, []string{"subject"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
