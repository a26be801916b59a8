package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Anshumanformal/apirelay/internal/logger"
)

// downstreamPath is the route the trigger forwards to.
const downstreamPath = "/process-all"

// Response payloads are kept identical to the Node.js service this
// replaces so existing callers see no difference on the wire.
var (
	healthBody   = map[string]string{"message": "Node.js server is running"}
	greetingBody = map[string]string{"greeting": "Hello from Node.js"}
	errorBody    = map[string]string{"error": "Something went wrong"}

	// demoPayload is the fixed body the trigger sends downstream.
	demoPayload = map[string]string{"name": "John"}
)

// healthHandler handles GET / as a liveness check.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	// The root pattern is the mux catch-all, so reject everything
	// that is not exactly "/".
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, healthBody)
}

// startHandler handles GET /start by firing a POST downstream. The
// downstream outcome is logged by the client and otherwise ignored;
// the route answers 200 either way.
func (s *Server) startHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if s.api == nil {
		logger.Get().Error().Msg("API client not configured, cannot forward trigger")
		writeJSON(w, http.StatusInternalServerError, errorBody)
		return
	}

	s.api.Post(context.Background(), downstreamPath, demoPayload)

	writeJSON(w, http.StatusOK, greetingBody)
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Get().Error().Err(err).Msg("Failed to encode response body")
	}
}
