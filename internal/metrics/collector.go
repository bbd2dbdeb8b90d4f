package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector collects and exports Prometheus metrics for the analysis engine.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	analysisRunsTotal   prometheus.Counter
	analysisRunDuration prometheus.Histogram
	phaseDuration       *prometheus.HistogramVec
	detectorFindings    *prometheus.CounterVec
	accountsAnalyzed    prometheus.Gauge
	edgesAnalyzed       prometheus.Gauge
	suspiciousAccounts  prometheus.Gauge
	fraudRingsDetected  prometheus.Gauge
}

// NewCollector registers and returns a new Collector.
func NewCollector() *Collector {
	return &Collector{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graph_engine_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graph_engine_request_duration_seconds",
				Help:    "Request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		analysisRunsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "graph_engine_analysis_runs_total",
				Help: "Total number of batch analysis runs completed",
			},
		),
		analysisRunDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "graph_engine_analysis_run_duration_seconds",
				Help:    "Duration of a full analysis pipeline run",
				Buckets: prometheus.DefBuckets,
			},
		),
		phaseDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graph_engine_phase_duration_seconds",
				Help:    "Duration of each pipeline phase (build, detect, score, filter, assemble, emit)",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
		detectorFindings: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graph_engine_detector_findings_total",
				Help: "Accounts flagged, by detector pattern tag",
			},
			[]string{"pattern"},
		),
		accountsAnalyzed: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "graph_engine_accounts_analyzed",
				Help: "Account count in the most recent analysis run",
			},
		),
		edgesAnalyzed: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "graph_engine_edges_analyzed",
				Help: "Raw transaction (edge) count in the most recent analysis run",
			},
		),
		suspiciousAccounts: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "graph_engine_suspicious_accounts",
				Help: "Suspicious account count in the most recent analysis run",
			},
		),
		fraudRingsDetected: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "graph_engine_fraud_rings_detected",
				Help: "Fraud ring count in the most recent analysis run",
			},
		),
	}
}

// RecordRequest records one completed HTTP request.
func (c *Collector) RecordRequest(method, endpoint, status string, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, endpoint, status).Inc()
	c.requestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordAnalysisRun records one completed pipeline run's headline counters.
func (c *Collector) RecordAnalysisRun(duration time.Duration, accounts, edges, suspicious, rings int) {
	c.analysisRunsTotal.Inc()
	c.analysisRunDuration.Observe(duration.Seconds())
	c.accountsAnalyzed.Set(float64(accounts))
	c.edgesAnalyzed.Set(float64(edges))
	c.suspiciousAccounts.Set(float64(suspicious))
	c.fraudRingsDetected.Set(float64(rings))
}

// RecordPhaseDuration records one pipeline phase's wall-clock duration.
func (c *Collector) RecordPhaseDuration(phase string, duration time.Duration) {
	c.phaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordDetectorFinding increments the per-pattern finding counter.
func (c *Collector) RecordDetectorFinding(pattern string, count int) {
	c.detectorFindings.WithLabelValues(pattern).Add(float64(count))
}
