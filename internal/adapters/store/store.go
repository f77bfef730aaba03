// Package store defines the persistent-store interface consumed by the core
// and errors shared by its implementations. Any backing store offering
// equivalent row operations over teams, mentors and reviews can implement it.
package store

import (
	"context"

	"github.com/okian/mentorboard/internal/domain/model"
)

// ReviewFilter restricts ListReviews. Zero-value fields are ignored.
type ReviewFilter struct {
	MentorID string
	TeamID   string
}

// ReviewPatch carries the mutable fields of a review update. The immutable
// identity fields (id, teamId, mentorId) are never patched.
type ReviewPatch struct {
	Scores      []model.CriterionScore
	IsCompleted bool
	Comment     string
}

// Store provides row access to teams, mentors and reviews. Implementations
// must return deep copies so callers can never mutate stored state through
// returned values.
type Store interface {
	GetTeam(ctx context.Context, id string) (model.Team, error)
	// ListTeams returns all teams, or only those matching ids when given.
	ListTeams(ctx context.Context, ids ...string) ([]model.Team, error)
	InsertTeam(ctx context.Context, t model.Team) (model.Team, error)

	GetMentor(ctx context.Context, id string) (model.Mentor, error)
	ListMentors(ctx context.Context) ([]model.Mentor, error)
	InsertMentor(ctx context.Context, m model.Mentor) (model.Mentor, error)

	ListReviews(ctx context.Context, f ReviewFilter) ([]model.Review, error)
	InsertReview(ctx context.Context, r model.Review) (model.Review, error)
	// UpdateReview applies patch to the review matching BOTH id and mentorID.
	// A mismatched owner updates zero rows and yields ErrNotFound; this
	// equality filter is the concurrency and ownership boundary.
	UpdateReview(ctx context.Context, id int64, mentorID string, patch ReviewPatch) (model.Review, error)
	// DeleteReview hard-deletes and returns the removed row.
	DeleteReview(ctx context.Context, id int64) (model.Review, error)
}
