package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "medisync_http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medisync_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medisync_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	platformRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medisync_platform_request_duration_seconds",
			Help:    "Latency of calls to the hosted platform.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "status"},
	)

	activeResolvers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "medisync_active_identity_resolvers",
		Help: "Identity resolvers held by the session registry.",
	})

	resolversByState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "medisync_identity_resolvers",
			Help: "Identity resolvers held by the session registry, by state.",
		},
		[]string{"state"},
	)

	resolverTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medisync_identity_resolver_transitions_total",
			Help: "Identity resolver state transitions.",
		},
		[]string{"state"},
	)

	staleResolutions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "medisync_identity_stale_resolutions_total",
		Help: "Identity resolutions discarded because a newer session arrived.",
	})

	auditDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "medisync_audit_events_dropped_total",
		Help: "Audit events dropped because the dispatch buffer was full.",
	})
)

// Init registers every collector in the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight,
			httpRequestsTotal,
			httpRequestDuration,
			platformRequestDuration,
			activeResolvers,
			resolversByState,
			resolverTransitions,
			staleResolutions,
			auditDropped,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument records request count, latency and in-flight gauge labelled by
// the chi route pattern.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := strconv.Itoa(sw.code)
		httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
	})
}

func ObservePlatformRequest(service, method string, statusCode int, duration time.Duration) {
	platformRequestDuration.WithLabelValues(service, method, strconv.Itoa(statusCode)).Observe(duration.Seconds())
}

func SetActiveResolvers(count int) {
	activeResolvers.Set(float64(count))
}

// MoveResolverState moves one resolver between state gauges. An empty from
// or to counts a resolver entering or leaving the registry.
func MoveResolverState(from, to string) {
	if from != "" {
		resolversByState.WithLabelValues(from).Dec()
	}
	if to != "" {
		resolversByState.WithLabelValues(to).Inc()
	}
}

func IncResolverTransition(state string) {
	resolverTransitions.WithLabelValues(state).Inc()
}

func IncStaleResolution() {
	staleResolutions.Inc()
}

func IncAuditDropped() {
	auditDropped.Inc()
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
