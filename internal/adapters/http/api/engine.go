// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/enginelab/crosstable/internal/domain/report"
)

// EngineDependencies defines the interface for per-engine detail queries.
type EngineDependencies interface {
	Engine(ctx context.Context, name string) (report.EngineDetail, error)
}

// EngineHandler handles per-engine detail requests.
type EngineHandler struct {
	deps EngineDependencies
}

// NewEngineHandler creates a new engine detail handler.
func NewEngineHandler(deps EngineDependencies) *EngineHandler {
	return &EngineHandler{deps: deps}
}

// HandleGetEngine handles GET /engines/{name} requests. The name segment is
// the canonical engine name, URL-escaped by the client if it carries a
// percent variant.
func (h *EngineHandler) HandleGetEngine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/engines/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%w: missing engine name", ErrBadRequest))
		return
	}

	detail, err := h.deps.Engine(r.Context(), name)
	if err != nil {
		switch {
		case isNotReady(err):
			writeError(w, http.StatusServiceUnavailable, "not_ready", ErrNotReady)
		case isNotFound(err):
			writeError(w, http.StatusNotFound, "not_found", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
