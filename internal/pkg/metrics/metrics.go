package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the HRMS processes.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	leaveRequests   *prometheus.CounterVec
	jobRuns         *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hrms_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hrms_http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	leaveRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hrms_leave_requests_total",
		Help: "Leave request lifecycle events by outcome.",
	}, []string{"event"})
	jobRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hrms_job_runs_total",
		Help: "Background job runs by job and status.",
	}, []string{"job", "status"})
	jobDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hrms_job_duration_seconds",
		Help:    "Background job duration.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})

	registry.MustRegister(
		requests, duration, leaveRequests, jobRuns, jobDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		leaveRequests:   leaveRequests,
		jobRuns:         jobRuns,
		jobDuration:     jobDuration,
	}
}

// Handler serves /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records count and latency of every request under its chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// LeaveEvent counts submitted, approved and rejected requests.
func (m *Metrics) LeaveEvent(event string) {
	if m == nil {
		return
	}
	m.leaveRequests.WithLabelValues(event).Inc()
}

// TrackJob returns a func that records the run when called with the job's result.
func (m *Metrics) TrackJob(job string) func(error) error {
	start := time.Now()
	return func(err error) error {
		if m == nil {
			return err
		}
		status := "success"
		if err != nil {
			status = "failure"
		}
		m.jobRuns.WithLabelValues(job, status).Inc()
		m.jobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
