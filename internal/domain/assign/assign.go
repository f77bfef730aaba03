// Package assign manages the mentor-team review relationship: it creates and
// hard-deletes reviews, enforcing uniqueness of the (team, mentor) pair
// before insertion since the store schema does not.
package assign

import (
	"context"
	"fmt"

	"github.com/okian/mentorboard/internal/adapters/store"
	"github.com/okian/mentorboard/internal/domain/model"
	"github.com/okian/mentorboard/internal/domain/rubric"
	"github.com/okian/mentorboard/pkg/logger"
	"github.com/okian/mentorboard/pkg/metrics"
)

// Manager creates and removes assignments. It assumes the caller has already
// confirmed destructive intent; no further confirmation happens here.
type Manager struct {
	rubric *rubric.Rubric
	store  store.Store
	log    logger.Logger
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates an assignment manager over the given rubric and store.
func New(rb *rubric.Rubric, st store.Store, opts ...Option) *Manager {
	m := &Manager{
		rubric: rb,
		store:  st,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logger.Named("assign")
	}
	return m
}

// Assign links mentorID to teamID by creating a review with one null score
// per rubric criterion. A second assignment of the same pair is a user
// error, reported as ErrDuplicateAssignment, never a silent no-op.
func (m *Manager) Assign(ctx context.Context, teamID, mentorID string) (model.Review, error) {
	existing, err := m.store.ListReviews(ctx, store.ReviewFilter{TeamID: teamID, MentorID: mentorID})
	if err != nil {
		return model.Review{}, fmt.Errorf("check assignment %s/%s: %w", teamID, mentorID, err)
	}
	if len(existing) > 0 {
		metrics.RecordDuplicateAssignment()
		return model.Review{}, fmt.Errorf("%w: team %s, mentor %s", ErrDuplicateAssignment, teamID, mentorID)
	}

	inserted, err := m.store.InsertReview(ctx, model.Review{
		TeamID:   teamID,
		MentorID: mentorID,
		Scores:   m.rubric.BlankScores(),
	})
	if err != nil {
		return model.Review{}, fmt.Errorf("create assignment %s/%s: %w", teamID, mentorID, err)
	}
	metrics.RecordAssignmentCreated()
	m.log.Info(ctx, "assignment created",
		logger.String("teamId", teamID),
		logger.String("mentorId", mentorID),
		logger.Int64("reviewId", inserted.ID))
	return inserted, nil
}

// Unassign hard-deletes the review, returning the removed row so callers can
// restore their in-memory copy when the delete turns out to have failed.
func (m *Manager) Unassign(ctx context.Context, reviewID int64) (model.Review, error) {
	deleted, err := m.store.DeleteReview(ctx, reviewID)
	if err != nil {
		return model.Review{}, fmt.Errorf("remove assignment %d: %w", reviewID, err)
	}
	metrics.RecordAssignmentRemoved()
	m.log.Info(ctx, "assignment removed", logger.Int64("reviewId", reviewID))
	return deleted, nil
}
