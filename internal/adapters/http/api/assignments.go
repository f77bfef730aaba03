package api

import (
	"net/http"
	"strconv"
)

// handleAssign pairs a mentor with a team, creating an empty review.
// Admin only. Duplicate pairs are rejected with 409.
func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var req assignRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap("assign", err))
		return
	}

	rv, err := s.deps.Assign(r.Context(), req.TeamID, req.MentorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

// handleUnassign removes an assignment and its review. Admin only.
func (s *Server) handleUnassign(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Kind("unassign", ErrBadRequest))
		return
	}

	if err := s.deps.Unassign(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
