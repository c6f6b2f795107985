package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "attendance"

// Metrics holds all application metrics on a private registry
type Metrics struct {
	registry *prometheus.Registry

	// Analysis metrics
	analysisRuns      *prometheus.CounterVec
	analysisDuration  prometheus.Histogram
	employeesAnalyzed *prometheus.CounterVec
	narrativeOutcomes *prometheus.CounterVec
	narrativeDuration prometheus.Histogram
	lastCohortAverage prometheus.Gauge
	lastCohortMeeting prometheus.Gauge
	lastCohortBelow   prometheus.Gauge

	// Ingestion metrics
	datasetsIngested *prometheus.CounterVec
	recordsIngested  prometheus.Counter
	ingestionErrors  prometheus.Counter

	// WebSocket metrics
	websocketConnections prometheus.Counter
	websocketActive      prometheus.Gauge
	websocketMessages    prometheus.Counter
	websocketErrors      prometheus.Counter

	// HTTP metrics
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New builds a Metrics set on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analysisRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_runs_total",
			Help:      "Analysis runs by outcome.",
		}, []string{"outcome"}),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of completed analysis runs.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		employeesAnalyzed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "employees_analyzed_total",
			Help:      "Employees analyzed by threshold status.",
		}, []string{"status"}),
		narrativeOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrative_requests_total",
			Help:      "Narrative generation calls by outcome.",
		}, []string{"outcome"}),
		narrativeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "narrative_duration_seconds",
			Help:      "Latency of narrative generation calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		lastCohortAverage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cohort_average_attendance_percent",
			Help:      "Average attendance rate of the last completed run.",
		}),
		lastCohortMeeting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cohort_meeting_threshold",
			Help:      "Employees meeting the threshold in the last completed run.",
		}),
		lastCohortBelow: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cohort_below_threshold",
			Help:      "Employees below the threshold in the last completed run.",
		}),
		datasetsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datasets_ingested_total",
			Help:      "Datasets stored by source.",
		}, []string{"source"}),
		recordsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_ingested_total",
			Help:      "Attendance records stored.",
		}),
		ingestionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingestion_errors_total",
			Help:      "Rejected datasets.",
		}),
		websocketConnections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_connections_total",
			Help:      "WebSocket connections accepted.",
		}),
		websocketActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_active_connections",
			Help:      "Currently open WebSocket connections.",
		}),
		websocketMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_messages_total",
			Help:      "Progress messages sent to clients.",
		}),
		websocketErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_errors_total",
			Help:      "WebSocket upgrade and write errors.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"endpoint", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.analysisRuns,
		m.analysisDuration,
		m.employeesAnalyzed,
		m.narrativeOutcomes,
		m.narrativeDuration,
		m.lastCohortAverage,
		m.lastCohortMeeting,
		m.lastCohortBelow,
		m.datasetsIngested,
		m.recordsIngested,
		m.ingestionErrors,
		m.websocketConnections,
		m.websocketActive,
		m.websocketMessages,
		m.websocketErrors,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// RecordAnalysisRun records a finished run; summary is nil on failure
func (m *Metrics) RecordAnalysisRun(duration time.Duration, summary *types.CohortSummary) {
	if summary == nil {
		m.analysisRuns.WithLabelValues("failed").Inc()
		return
	}
	m.analysisRuns.WithLabelValues("completed").Inc()
	m.analysisDuration.Observe(duration.Seconds())
	m.lastCohortAverage.Set(summary.AverageAttendanceRate)
	m.lastCohortMeeting.Set(float64(summary.MeetingThreshold))
	m.lastCohortBelow.Set(float64(summary.BelowThreshold))
}

// RecordAnalysisRejected counts a run refused because another is active
func (m *Metrics) RecordAnalysisRejected() {
	m.analysisRuns.WithLabelValues("rejected").Inc()
}

// RecordEmployeeAnalyzed counts one classified employee
func (m *Metrics) RecordEmployeeAnalyzed(status types.ThresholdStatus) {
	m.employeesAnalyzed.WithLabelValues(string(status)).Inc()
}

// RecordNarrative records one narrative call
func (m *Metrics) RecordNarrative(duration time.Duration, fallback bool) {
	outcome := "generated"
	if fallback {
		outcome = "fallback"
	}
	m.narrativeOutcomes.WithLabelValues(outcome).Inc()
	m.narrativeDuration.Observe(duration.Seconds())
}

// RecordDatasetIngested records a stored dataset
func (m *Metrics) RecordDatasetIngested(source string, records int) {
	m.datasetsIngested.WithLabelValues(source).Inc()
	m.recordsIngested.Add(float64(records))
}

// RecordIngestionError increments the rejected dataset counter
func (m *Metrics) RecordIngestionError() {
	m.ingestionErrors.Inc()
}

// RecordWebSocketConnect increments connection counters
func (m *Metrics) RecordWebSocketConnect() {
	m.websocketConnections.Inc()
	m.websocketActive.Inc()
}

// RecordWebSocketDisconnect decrements the active connection gauge
func (m *Metrics) RecordWebSocketDisconnect() {
	m.websocketActive.Dec()
}

// RecordWebSocketMessage increments message counter
func (m *Metrics) RecordWebSocketMessage() {
	m.websocketMessages.Inc()
}

// RecordWebSocketError increments WebSocket error counter
func (m *Metrics) RecordWebSocketError() {
	m.websocketErrors.Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(endpoint string, statusCode int, duration time.Duration) {
	m.httpRequests.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
