// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/enginelab/crosstable/internal/domain/report"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Rankings returns the top-N ranking entries. n <= 0 means all.
	Rankings(ctx context.Context, n int) ([]report.RankingEntry, error)

	// Engine returns the detail block for a canonical engine name.
	Engine(ctx context.Context, name string) (report.EngineDetail, error)

	// Consolidation returns the identity consolidation summary.
	Consolidation(ctx context.Context) (report.ConsolidationSummary, error)

	// Report returns the full latest analysis report.
	Report(ctx context.Context) (*report.Report, error)
}

// Server wires HTTP routes for the analysis API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	rankingsHandler      *RankingsHandler
	engineHandler        *EngineHandler
	consolidationHandler *ConsolidationHandler
	reportHandler        *ReportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		rankingsHandler:      NewRankingsHandler(deps, defaultMaxLimit),
		engineHandler:        NewEngineHandler(deps),
		consolidationHandler: NewConsolidationHandler(deps),
		reportHandler:        NewReportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/engines/", MetricsMiddleware(s.engineHandler.HandleGetEngine, "engines"))
	mux.HandleFunc("/consolidation", MetricsMiddleware(s.consolidationHandler.HandleGetConsolidation, "consolidation"))
	mux.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleGetReport, "report"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
