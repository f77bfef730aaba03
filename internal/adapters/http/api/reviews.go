package api

import (
	"net/http"
	"strconv"
)

// handleListReviews returns the calling mentor's reviews with state and
// preview score. The mentor profile is lazily created on first call and
// the mentor's slice of the cache refreshed from the store.
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}

	mentor, err := s.deps.EnsureProfile(r.Context(), u)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.deps.RefreshMentor(r.Context(), mentor.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.ReviewsForMentor(mentor.ID))
}

// handleSaveReview persists scores and comment for a review owned by the
// caller. The write hits the store first; the cache only reflects it after
// the store confirms.
func (s *Server) handleSaveReview(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Kind("save review", ErrBadRequest))
		return
	}

	var req saveReviewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap("save review", err))
		return
	}

	status, err := s.deps.SaveReview(r.Context(), u.ID, id, toScores(req.Scores), req.IsCompleted, req.Comment)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleLoadDraft(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Kind("load draft", ErrBadRequest))
		return
	}

	d, found := s.deps.LoadDraft(id, u.ID)
	if !found {
		writeError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleStageDraft(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Kind("stage draft", ErrBadRequest))
		return
	}

	var req draftRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap("stage draft", err))
		return
	}

	s.deps.StageDraft(id, u.ID, toScores(req.Scores), req.Comment)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleDiscardDraft(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Kind("discard draft", ErrBadRequest))
		return
	}

	s.deps.DiscardDraft(id, u.ID)
	w.WriteHeader(http.StatusNoContent)
}
