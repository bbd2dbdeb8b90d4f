// Package handlers exposes the analysis engine over HTTP: the batch
// analyze endpoint, health/readiness probes, and the supplemented
// pattern-statistics and per-ring evidence endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/google/uuid"

	"github.com/moneymule/graph-engine/internal/events"
	"github.com/moneymule/graph-engine/internal/metrics"
	"github.com/moneymule/graph-engine/internal/model"
	"github.com/moneymule/graph-engine/internal/pipeline"
	"github.com/moneymule/graph-engine/internal/report"
)

// EventPublisher is the narrow slice of *events.Producer that handlers
// depends on, so tests can substitute a fake instead of dialing Kafka.
type EventPublisher interface {
	PublishAnalysisCompleted(ctx context.Context, event events.AnalysisCompletedEvent) error
}

// Handlers wires the pipeline engine to HTTP routes.
type Handlers struct {
	engine   *pipeline.Engine
	producer EventPublisher
	metrics  *metrics.Collector
	logger   *slog.Logger

	// lastReport caches the most recent analysis result so the
	// patterns/stats and rings/{id} endpoints can serve without re-running
	// the pipeline; empty until the first /api/v1/analyze call.
	lastReport *report.Report
}

// New creates Handlers bound to the given engine and event producer.
func New(engine *pipeline.Engine, producer EventPublisher, metrics *metrics.Collector, logger *slog.Logger) *Handlers {
	return &Handlers{engine: engine, producer: producer, metrics: metrics, logger: logger}
}

// RegisterRoutes registers every HTTP route on router.
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/analyze", h.analyze).Methods("POST")
	router.HandleFunc("/api/v1/patterns/stats", h.patternStats).Methods("GET")
	router.HandleFunc("/api/v1/rings/{ring_id}", h.ringByID).Methods("GET")
	router.HandleFunc("/health", h.healthCheck).Methods("GET")
	router.HandleFunc("/ready", h.readinessCheck).Methods("GET")
}

// analyzeRequest is the input contract: a batch of already-validated
// transactions (§6's CSV-boundary contract, restated for the JSON wire).
type analyzeRequest struct {
	Transactions []model.Transaction `json:"transactions"`
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, stats := h.engine.Analyze(req.Transactions)
	h.lastReport = &result

	h.metrics.RecordRequest("POST", "/api/v1/analyze", "200", time.Since(start))
	h.metrics.RecordAnalysisRun(time.Since(start),
		result.Summary.TotalAccountsAnalyzed,
		stats.EdgeCount,
		result.Summary.SuspiciousAccountsFlagged,
		result.Summary.FraudRingsDetected)
	for phase, d := range stats.PhaseDurations {
		h.metrics.RecordPhaseDuration(phase, d)
	}
	for _, acc := range result.SuspiciousAccounts {
		for _, tag := range acc.DetectedPatterns {
			h.metrics.RecordDetectorFinding(string(tag), 1)
		}
	}

	event := events.AnalysisCompletedEvent{
		JobID:                     uuid.New().String(),
		TotalAccountsAnalyzed:     result.Summary.TotalAccountsAnalyzed,
		SuspiciousAccountsFlagged: result.Summary.SuspiciousAccountsFlagged,
		FraudRingsDetected:        result.Summary.FraudRingsDetected,
		ProcessingTimeSeconds:     result.Summary.ProcessingTimeSeconds,
		CompletedAt:               time.Now().UTC(),
	}
	if err := h.producer.PublishAnalysisCompleted(context.Background(), event); err != nil {
		h.logger.Warn("failed to publish analysis completed event", "error", err)
	}

	h.writeJSON(w, http.StatusOK, result)
}

// patternStatsResponse summarizes how often each pattern tag fired in the
// most recent analysis run, alongside the mean suspicion score across all
// flagged accounts.
type patternStatsResponse struct {
	Counts             map[model.PatternTag]int `json:"counts"`
	MeanSuspicionScore float64                  `json:"mean_suspicion_score"`
}

func (h *Handlers) patternStats(w http.ResponseWriter, r *http.Request) {
	if h.lastReport == nil {
		h.writeError(w, http.StatusNotFound, "no analysis has run yet")
		return
	}

	counts := make(map[model.PatternTag]int)
	var scoreSum float64
	for _, acc := range h.lastReport.SuspiciousAccounts {
		for _, tag := range acc.DetectedPatterns {
			counts[tag]++
		}
		scoreSum += acc.SuspicionScore
	}

	var mean float64
	if len(h.lastReport.SuspiciousAccounts) > 0 {
		mean = math.Round(scoreSum/float64(len(h.lastReport.SuspiciousAccounts))*10) / 10
	}

	h.writeJSON(w, http.StatusOK, patternStatsResponse{Counts: counts, MeanSuspicionScore: mean})
}

func (h *Handlers) ringByID(w http.ResponseWriter, r *http.Request) {
	if h.lastReport == nil {
		h.writeError(w, http.StatusNotFound, "no analysis has run yet")
		return
	}

	ringID := mux.Vars(r)["ring_id"]
	for _, ring := range h.lastReport.FraudRings {
		if ring.RingID == ringID {
			h.writeJSON(w, http.StatusOK, ring)
			return
		}
	}

	h.writeError(w, http.StatusNotFound, "ring not found")
}

func (h *Handlers) healthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "graph-engine",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) readinessCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"service": "graph-engine",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"error":     message,
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
