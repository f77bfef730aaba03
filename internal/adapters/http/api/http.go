// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/mentorboard/internal/adapters/store"
	"github.com/okian/mentorboard/internal/domain/assign"
	"github.com/okian/mentorboard/internal/domain/draft"
	"github.com/okian/mentorboard/internal/domain/model"
	"github.com/okian/mentorboard/internal/domain/review"
	"github.com/okian/mentorboard/internal/identity"
)

// Dependencies required by HTTP handlers. The interface bundle keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	EnsureProfile(ctx context.Context, u identity.User) (model.Mentor, error)
	Refresh(ctx context.Context) error
	RefreshMentor(ctx context.Context, mentorID string) error

	Teams() []model.Team
	Mentors() []model.Mentor
	Leaderboard() []model.LeaderboardEntry
	Progress() []model.MentorProgress
	TeamComments() []model.TeamComments
	ReviewsForMentor(mentorID string) []review.Status

	AddTeam(ctx context.Context, t model.Team) (model.Team, error)
	Assign(ctx context.Context, teamID, mentorID string) (model.Review, error)
	Unassign(ctx context.Context, reviewID int64) error
	SaveReview(ctx context.Context, mentorID string, reviewID int64, scores []model.CriterionScore, completed bool, comment string) (review.Status, error)

	LoadDraft(reviewID int64, mentorID string) (draft.Draft, bool)
	StageDraft(reviewID int64, mentorID string, scores []model.CriterionScore, comment string)
	DiscardDraft(reviewID int64, mentorID string)

	GetStats() map[string]interface{}
}

// validate checks request DTO tags. One instance per process is the
// validator library's own recommendation.
var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // validator instances cache struct metadata

// Server wires HTTP routes for the business API.
type Server struct {
	deps Dependencies
}

// NewServer creates a new API server.
func NewServer(deps Dependencies) *Server {
	return &Server{deps: deps}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	handle := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	handle("GET /healthz", "healthz", s.handleHealth)
	handle("GET /stats", "stats", s.handleStats)

	handle("GET /leaderboard", "leaderboard", s.handleLeaderboard)
	handle("GET /progress", "progress", s.handleProgress)
	handle("GET /comments", "comments", s.handleComments)

	handle("GET /teams", "teams", s.handleListTeams)
	handle("POST /teams", "teams", s.handleAddTeam)
	handle("GET /mentors", "mentors", s.handleListMentors)

	handle("POST /assignments", "assignments", s.handleAssign)
	handle("DELETE /assignments/{id}", "assignments", s.handleUnassign)

	handle("GET /reviews", "reviews", s.handleListReviews)
	handle("PUT /reviews/{id}", "reviews", s.handleSaveReview)
	handle("GET /reviews/{id}/draft", "drafts", s.handleLoadDraft)
	handle("PUT /reviews/{id}/draft", "drafts", s.handleStageDraft)
	handle("DELETE /reviews/{id}/draft", "drafts", s.handleDiscardDraft)

	handle("GET /export/rankings.csv", "export", s.handleExportRankings)
	handle("GET /export/comments.csv", "export", s.handleExportComments)
}

// scoreDTO mirrors one criterion score on the wire.
type scoreDTO struct {
	CriterionID string `json:"criterionId" validate:"required"`
	Score       *int   `json:"score"       validate:"omitempty,min=1,max=5"`
}

func toScores(in []scoreDTO) []model.CriterionScore {
	out := make([]model.CriterionScore, len(in))
	for i, s := range in {
		out[i] = model.CriterionScore{CriterionID: s.CriterionID, Score: s.Score}
	}
	return out
}

type saveReviewRequest struct {
	Scores      []scoreDTO `json:"scores" validate:"required,dive"`
	IsCompleted bool       `json:"isCompleted"`
	Comment     string     `json:"comment"`
}

type draftRequest struct {
	Scores  []scoreDTO `json:"scores" validate:"dive"`
	Comment string     `json:"comment"`
}

type assignRequest struct {
	TeamID   string `json:"teamId"   validate:"required"`
	MentorID string `json:"mentorId" validate:"required"`
}

type addTeamRequest struct {
	ID              string `json:"id"   validate:"required"`
	Name            string `json:"name" validate:"required"`
	CandidateID     string `json:"candidate_id"`
	ProposalDetails string `json:"proposalDetails"`
	ProposalLink    string `json:"proposal_link"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return validate.Struct(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates core errors into the HTTP taxonomy: validation
// failures reject with 422 before any store call, ownership misses surface
// as 404, duplicates as 409, and store timeouts as 504 so the caller knows a
// retry is reasonable.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, review.ErrUnknownCriterion),
		errors.Is(err, review.ErrScoreOutOfRange),
		errors.Is(err, review.ErrIncompleteScores),
		errors.Is(err, review.ErrEmptyComment):
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err)
	case errors.Is(err, assign.ErrDuplicateAssignment):
		writeError(w, http.StatusConflict, "duplicate_assignment", err)
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "store_timeout", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
