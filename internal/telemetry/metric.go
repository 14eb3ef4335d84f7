package telemetry

import (
	"net/http"

	"ems/config"
	"ems/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric holds the service collectors. Every collector is nil when metrics are
// disabled, so callers check before use.
type Metric struct {
	HttpRequestsTotal     *prometheus.CounterVec
	HttpRequestDuration   *prometheus.HistogramVec
	SubmissionsTotal      *prometheus.CounterVec
	SubmissionFlagsTotal  *prometheus.CounterVec
	RateLimitedTotal      prometheus.Counter
	MongoConnectionStatus prometheus.Gauge
	registry              *prometheus.Registry
}

func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)
	prefix := config.App.Name + "_"

	return &Metric{
		registry: registry,
		HttpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricHttpRequestsTotal),
				Help: "Total received HTTP requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + string(core.MetricHttpRequestDuration),
				Help:    "HTTP request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricSubmissionsTotal),
				Help: "Employee form submissions by outcome",
			},
			labelNames(core.MetricLabelOutcome),
		),
		SubmissionFlagsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricSubmissionFlagsTotal),
				Help: "Validation flags raised on stored submissions",
			},
			labelNames(core.MetricLabelFlag),
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricRateLimitTotal),
				Help: "Submissions blocked by the rate limiter",
			},
		),
		MongoConnectionStatus: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + string(core.MetricMongoConnectionStatus),
				Help: "1 when the MongoDB connection is open, 0 otherwise",
			},
		),
	}
}

// Handler serves the registry, or 404 when metrics are disabled.
func (m *Metric) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metric) ObserveSubmission(outcome core.SubmissionOutcome, flags []string) {
	if m == nil || m.SubmissionsTotal == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(string(outcome)).Inc()
	for _, flag := range flags {
		m.SubmissionFlagsTotal.WithLabelValues(flag).Inc()
	}
}

func (m *Metric) SetMongoState(state core.ConnectionState) {
	if m == nil || m.MongoConnectionStatus == nil {
		return
	}
	if state == core.ConnectionOpen {
		m.MongoConnectionStatus.Set(1)
		return
	}
	m.MongoConnectionStatus.Set(0)
}

func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
