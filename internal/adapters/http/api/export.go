package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/okian/mentorboard/internal/domain/export"
)

func writeCSV(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// handleExportRankings streams the current leaderboard as a dated CSV
// download. Admin only.
func (s *Server) handleExportRankings(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	writeCSV(w, export.Filename(export.RankingsPrefix, time.Now()), export.Rankings(s.deps.Leaderboard()))
}

// handleExportComments streams all mentor comments as a dated CSV
// download. Admin only.
func (s *Server) handleExportComments(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	writeCSV(w, export.Filename(export.CommentsPrefix, time.Now()), export.Comments(s.deps.TeamComments()))
}
