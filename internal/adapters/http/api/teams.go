package api

import (
	"net/http"

	"github.com/okian/mentorboard/internal/domain/model"
)

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Teams())
}

func (s *Server) handleListMentors(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Mentors())
}

// handleAddTeam registers a new team. Admin only.
func (s *Server) handleAddTeam(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var req addTeamRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap("add team", err))
		return
	}

	team, err := s.deps.AddTeam(r.Context(), model.Team{
		ID:              req.ID,
		Name:            req.Name,
		CandidateID:     req.CandidateID,
		ProposalDetails: req.ProposalDetails,
		ProposalLink:    req.ProposalLink,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}
