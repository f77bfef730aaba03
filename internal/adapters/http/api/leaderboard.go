package api

import "net/http"

// handleLeaderboard returns the ranked teams with per-reviewer weighted
// scores. Rankings only consider completed reviews. Admin only.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Leaderboard())
}
