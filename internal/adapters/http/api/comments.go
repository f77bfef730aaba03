package api

import "net/http"

// handleComments returns every team's mentor comments in leaderboard
// order. Admin only.
func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.deps.TeamComments())
}
