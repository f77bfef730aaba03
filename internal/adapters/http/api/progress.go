package api

import "net/http"

// handleProgress returns completion counts per mentor. Admin only.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Progress())
}
