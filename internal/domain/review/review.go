// Package review implements the lifecycle and validation rules of a single
// review: state derivation, completion checks and the durable-first save
// protocol against the persistent store.
package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okian/mentorboard/internal/adapters/store"
	"github.com/okian/mentorboard/internal/domain/aggregate"
	"github.com/okian/mentorboard/internal/domain/model"
	"github.com/okian/mentorboard/internal/domain/rubric"
	"github.com/okian/mentorboard/pkg/logger"
	"github.com/okian/mentorboard/pkg/metrics"
)

// State is the derived lifecycle position of a review. There is no terminal
// state: a completed review can always be reopened for edits.
type State string

const (
	// StatePending: not completed, some or all scores null.
	StatePending State = "pending"
	// StatePendingReady: not completed, but all scores set and comment
	// present, so completion is allowed.
	StatePendingReady State = "pending_ready"
	// StateCompleted: completed and in sync with the store.
	StateCompleted State = "completed"
	// StateCompletedDirty: completed but local edits diverge from the last
	// saved value.
	StateCompletedDirty State = "completed_dirty"
)

// Status bundles a review with its derived state and score preview for the
// read surface.
type Status struct {
	Review  model.Review `json:"review"`
	State   State        `json:"state"`
	Preview float64      `json:"previewScore"`
}

// Drafts is the slice of the draft store the save protocol needs.
type Drafts interface {
	Clear(reviewID int64, mentorID string)
}

// Service applies the review state machine against a persistent store.
type Service struct {
	rubric *rubric.Rubric
	store  store.Store
	drafts Drafts
	log    logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDrafts wires the draft store cleared on successful saves.
func WithDrafts(d Drafts) Option {
	return func(s *Service) {
		s.drafts = d
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a review service over the given rubric and store.
func New(rb *rubric.Rubric, st store.Store, opts ...Option) *Service {
	s := &Service{
		rubric: rb,
		store:  st,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("review")
	}
	return s
}

// StateOf derives the lifecycle state of a review. dirty reports whether
// local edits diverge from the last saved value; only the editing session
// can know that, so server-side reads pass false.
func StateOf(rb *rubric.Rubric, r model.Review, dirty bool) State {
	if r.IsCompleted {
		if dirty {
			return StateCompletedDirty
		}
		return StateCompleted
	}
	if rb.Complete(r.Scores) && strings.TrimSpace(r.Comment) != "" {
		return StatePendingReady
	}
	return StatePending
}

// Status derives the read-surface view of a review.
func (s *Service) Status(r model.Review) Status {
	return Status{
		Review:  r,
		State:   StateOf(s.rubric, r, false),
		Preview: s.Preview(r.Scores),
	}
}

// Preview returns the weighted total shown to the mentor while editing,
// using the exact rounding of the aggregation engine so the form and the
// leaderboard can never disagree.
func (s *Service) Preview(scores []model.CriterionScore) float64 {
	return aggregate.WeightedScore(s.rubric, scores)
}

// Validate rejects bad submissions before any store call. Scores naming
// unknown criteria are a contract violation; a transition into completed
// additionally requires every score non-null and a non-blank comment.
func (s *Service) Validate(scores []model.CriterionScore, completed bool, comment string) error {
	for _, cs := range scores {
		if !s.rubric.Contains(cs.CriterionID) {
			return fmt.Errorf("%w: %s", ErrUnknownCriterion, cs.CriterionID)
		}
		if cs.Score != nil && (*cs.Score < rubric.MinScore || *cs.Score > rubric.MaxScore) {
			return fmt.Errorf("%w: %d", ErrScoreOutOfRange, *cs.Score)
		}
	}
	if !completed {
		return nil
	}
	if !s.rubric.Complete(s.rubric.Normalize(scores)) {
		return ErrIncompleteScores
	}
	if strings.TrimSpace(comment) == "" {
		return ErrEmptyComment
	}
	return nil
}

// Save runs the durable-first save protocol: validate, write to the store
// scoped by (reviewID, mentorID), and only then report the confirmed row.
// Zero rows updated means the caller does not own the review (or it was
// deleted concurrently) and surfaces as store.ErrNotFound. The draft is
// cleared only on confirmed success; a failed save leaves it untouched.
func (s *Service) Save(ctx context.Context, mentorID string, reviewID int64, scores []model.CriterionScore, completed bool, comment string) (model.Review, error) {
	if err := s.Validate(scores, completed, comment); err != nil {
		metrics.RecordReviewSaveFailure("validation")
		return model.Review{}, err
	}

	patch := store.ReviewPatch{
		Scores:      s.rubric.Normalize(scores),
		IsCompleted: completed,
		Comment:     comment,
	}
	updated, err := s.store.UpdateReview(ctx, reviewID, mentorID, patch)
	if err != nil {
		reason := "store"
		if errors.Is(err, store.ErrNotFound) {
			reason = "ownership"
		}
		metrics.RecordReviewSaveFailure(reason)
		s.log.Warn(ctx, "review save failed",
			logger.Int64("reviewId", reviewID),
			logger.String("mentorId", mentorID),
			logger.Error(err))
		return model.Review{}, fmt.Errorf("save review %d: %w", reviewID, err)
	}

	if s.drafts != nil {
		s.drafts.Clear(reviewID, mentorID)
	}
	metrics.RecordReviewSaved()
	s.log.Info(ctx, "review saved",
		logger.Int64("reviewId", reviewID),
		logger.Bool("completed", completed))
	return updated, nil
}
