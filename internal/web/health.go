package web

import (
	"net/http"

	"github.com/koopa0/studybot/internal/knowledge"
	"github.com/koopa0/studybot/internal/log"
)

// healthHandler handles health check endpoints.
type healthHandler struct {
	store  knowledge.Store
	logger log.Logger
}

// newHealthHandler creates a new health handler.
// store is the vector store used for readiness checks.
func newHealthHandler(store knowledge.Store, logger log.Logger) *healthHandler {
	return &healthHandler{store: store, logger: logger}
}

// registerRoutes registers health routes on the given mux.
func (h *healthHandler) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.liveness)
	mux.HandleFunc("GET /ready", h.readiness)
}

// liveness is a liveness probe endpoint.
// Returns 200 OK if the process is alive.
func (h *healthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readiness is a readiness probe endpoint.
// Returns 200 OK once the vector store is reachable and populated.
func (h *healthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "vector store not configured", http.StatusServiceUnavailable)
		return
	}
	if h.store.Count(r.Context()) == 0 {
		h.logger.Warn("readiness check failed", "reason", "vector store empty")
		http.Error(w, "vector store not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
