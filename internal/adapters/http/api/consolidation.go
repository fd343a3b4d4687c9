// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/enginelab/crosstable/internal/domain/report"
)

// ConsolidationDependencies defines the interface for consolidation queries.
type ConsolidationDependencies interface {
	Consolidation(ctx context.Context) (report.ConsolidationSummary, error)
}

// ConsolidationHandler serves the identity consolidation audit trail.
type ConsolidationHandler struct {
	deps ConsolidationDependencies
}

// NewConsolidationHandler creates a new consolidation handler.
func NewConsolidationHandler(deps ConsolidationDependencies) *ConsolidationHandler {
	return &ConsolidationHandler{deps: deps}
}

// HandleGetConsolidation handles GET /consolidation requests.
func (h *ConsolidationHandler) HandleGetConsolidation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	summary, err := h.deps.Consolidation(r.Context())
	if err != nil {
		if isNotReady(err) {
			writeError(w, http.StatusServiceUnavailable, "not_ready", ErrNotReady)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
