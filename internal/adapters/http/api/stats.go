package api

import "net/http"

// handleStats returns coarse service counters for quick inspection.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.GetStats())
}
