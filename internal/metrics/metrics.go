// Package metrics holds the Prometheus collectors for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is safe to use as a nil pointer; every recorder becomes a no-op.
type Metrics struct {
	registry *prometheus.Registry

	inFlight      prometheus.Gauge
	httpDuration  *prometheus.HistogramVec
	intake        prometheus.Counter
	quotesCreated prometheus.Counter
	resolutions   *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flowquote_http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowquote_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		intake: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowquote_intake_submissions_total",
			Help: "Service requests accepted through the public intake form.",
		}),
		quotesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowquote_quotes_created_total",
			Help: "Quotes created by businesses.",
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowquote_quote_resolutions_total",
			Help: "Quote approval attempts by outcome.",
		}, []string{"outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowquote_notifications_total",
			Help: "Notification events by kind and result.",
		}, []string{"kind", "result"}),
	}

	m.registry.MustRegister(
		m.inFlight,
		m.httpDuration,
		m.intake,
		m.quotesCreated,
		m.resolutions,
		m.notifications,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) IntakeSubmitted() {
	if m == nil {
		return
	}

	m.intake.Inc()
}

func (m *Metrics) QuoteCreated() {
	if m == nil {
		return
	}

	m.quotesCreated.Inc()
}

// QuoteResolved records an approval attempt; outcome is "approved",
// "rejected", "conflict", "not_found" or "error".
func (m *Metrics) QuoteResolved(outcome string) {
	if m == nil {
		return
	}

	m.resolutions.WithLabelValues(outcome).Inc()
}

// Notification records a dispatched event; result is "sent", "failed" or "dropped".
func (m *Metrics) Notification(kind, result string) {
	if m == nil {
		return
	}

	m.notifications.WithLabelValues(kind, result).Inc()
}

// Instrument measures request latency labelled by the chi route pattern so
// path parameters do not explode cardinality.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			next.ServeHTTP(w, r)
			return
		}

		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
