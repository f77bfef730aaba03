// Package app provides the core business service wiring the assignment
// manager, review state machine, draft store and aggregation engine over a
// persistent store, and caching the team/mentor/review sets the derived
// views are recomputed from.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/mentorboard/internal/adapters/store"
	"github.com/okian/mentorboard/internal/domain/aggregate"
	"github.com/okian/mentorboard/internal/domain/assign"
	"github.com/okian/mentorboard/internal/domain/draft"
	"github.com/okian/mentorboard/internal/domain/model"
	"github.com/okian/mentorboard/internal/domain/review"
	"github.com/okian/mentorboard/internal/domain/rubric"
	"github.com/okian/mentorboard/internal/identity"
	"github.com/okian/mentorboard/pkg/logger"
	"github.com/okian/mentorboard/pkg/metrics"
)

// Default service configuration constants.
const defaultStoreTimeout = 15 * time.Second

// Service implements the API dependencies for the review system. Reads flow
// store -> cache -> aggregation; writes flow through the review service and
// assignment manager to the store, with the cache echoing only confirmed
// results (except the intentionally optimistic unassign).
type Service struct {
	mu sync.RWMutex

	// Core components
	store    store.Store
	rubric   *rubric.Rubric
	drafts   *draft.Store
	reviews  *review.Service
	assigner *assign.Manager
	provider identity.Provider

	// Configuration
	storeTimeout time.Duration

	// Cached state the derived views recompute from
	teams     []model.Team
	mentors   []model.Mentor
	reviewSet []model.Review

	// State
	started bool
	unsub   func()

	// Logging
	log logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeTimeout: defaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components and performs the initial load.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.log == nil {
		s.log = logger.Named("app")
	}
	if s.rubric == nil {
		s.rubric = rubric.Default()
	}
	if s.store == nil {
		s.store = store.NewMemStore()
	}
	s.store = store.Instrument(s.store, s.storeTimeout)
	if s.drafts == nil {
		s.drafts = draft.New(draft.WithLogger(s.log.Named("draft")))
	}
	s.reviews = review.New(s.rubric, s.store,
		review.WithDrafts(s.drafts),
		review.WithLogger(s.log.Named("review")),
	)
	s.assigner = assign.New(s.rubric, s.store,
		assign.WithLogger(s.log.Named("assign")),
	)
	if s.provider != nil {
		s.unsub = s.provider.OnAuthChange(s.onAuthChange)
	}
	s.started = true
	s.mu.Unlock()

	s.log.Info(ctx, "review service started",
		logger.Int("criteria", s.rubric.Len()),
		logger.Any("storeTimeout", s.storeTimeout),
	)

	if err := s.Refresh(ctx); err != nil {
		// A failed first load is reported, not fatal; reads recompute from
		// an empty cache until a refresh succeeds.
		s.log.Warn(ctx, "initial load failed", logger.Error(err))
	}
	return nil
}

// Stop tears the service down: unsubscribes from the identity provider and
// flushes the draft store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	if s.drafts != nil {
		s.drafts.Close()
	}
	s.started = false
	s.log.Info(context.Background(), "review service stopped")
}

// onAuthChange keeps the mentor roster in step with the identity provider:
// a fresh sign-in lazily creates the mentor row.
func (s *Service) onAuthChange(u identity.User, signedIn bool) {
	ctx := context.Background()
	if !signedIn {
		s.log.Info(ctx, "user signed out", logger.String("userId", u.ID))
		return
	}
	if _, err := s.EnsureProfile(ctx, u); err != nil {
		s.log.Warn(ctx, "could not ensure mentor profile",
			logger.String("userId", u.ID), logger.Error(err))
	}
}

// EnsureProfile lazily creates the mentor row for an authenticated user and
// folds it into the cached roster.
func (s *Service) EnsureProfile(ctx context.Context, u identity.User) (model.Mentor, error) {
	m, err := identity.EnsureMentor(ctx, s.store, u)
	if err != nil {
		return model.Mentor{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.mentors {
		if existing.ID == m.ID {
			s.mentors[i] = m
			return m, nil
		}
	}
	s.mentors = append(s.mentors, m)
	return m, nil
}

// Refresh performs the administrator bulk load: teams, reviews and mentors
// fetched concurrently and joined before the cache is swapped. Loaded
// reviews pass through the rubric's defensive repair.
func (s *Service) Refresh(ctx context.Context) error {
	var (
		teams   []model.Team
		mentors []model.Mentor
		reviews []model.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.store.ListTeams(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		mentors, err = s.store.ListMentors(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = s.store.ListReviews(gctx, store.ReviewFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	for i := range reviews {
		reviews[i].Scores = s.rubric.Normalize(reviews[i].Scores)
	}

	s.mu.Lock()
	s.teams = teams
	s.mentors = mentors
	s.reviewSet = reviews
	s.mu.Unlock()

	metrics.UpdateRoster(len(teams), len(mentors), len(reviews))
	return nil
}

// RefreshMentor loads one mentor's scope: their reviews first, then only the
// teams those reviews reference (the team set is derived from the review
// set, so the two fetches are sequential by necessity). The results merge
// into the cache without disturbing other mentors' entries.
func (s *Service) RefreshMentor(ctx context.Context, mentorID string) error {
	reviews, err := s.store.ListReviews(ctx, store.ReviewFilter{MentorID: mentorID})
	if err != nil {
		return fmt.Errorf("refresh mentor %s: %w", mentorID, err)
	}
	for i := range reviews {
		reviews[i].Scores = s.rubric.Normalize(reviews[i].Scores)
	}

	var teams []model.Team
	if len(reviews) > 0 {
		seen := make(map[string]bool, len(reviews))
		ids := make([]string, 0, len(reviews))
		for _, r := range reviews {
			if !seen[r.TeamID] {
				seen[r.TeamID] = true
				ids = append(ids, r.TeamID)
			}
		}
		teams, err = s.store.ListTeams(ctx, ids...)
		if err != nil {
			return fmt.Errorf("refresh mentor %s teams: %w", mentorID, err)
		}
	}

	s.mu.Lock()
	kept := s.reviewSet[:0:0]
	for _, r := range s.reviewSet {
		if r.MentorID != mentorID {
			kept = append(kept, r)
		}
	}
	s.reviewSet = append(kept, reviews...)
	for _, t := range teams {
		s.upsertTeamLocked(t)
	}
	s.mu.Unlock()
	return nil
}

// upsertTeamLocked must be called with s.mu held.
func (s *Service) upsertTeamLocked(t model.Team) {
	for i, existing := range s.teams {
		if existing.ID == t.ID {
			s.teams[i] = t
			return
		}
	}
	s.teams = append(s.teams, t)
}

// Teams returns a copy of the cached team set.
func (s *Service) Teams() []model.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Team, len(s.teams))
	copy(out, s.teams)
	return out
}

// Mentors returns a copy of the cached mentor roster.
func (s *Service) Mentors() []model.Mentor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Mentor, len(s.mentors))
	copy(out, s.mentors)
	return out
}

// Reviews returns a deep copy of the cached review set.
func (s *Service) Reviews() []model.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneReviews(s.reviewSet)
}

// ReviewsForMentor returns the acting mentor's reviews with derived state
// and score preview.
func (s *Service) ReviewsForMentor(mentorID string) []review.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []review.Status
	for _, r := range s.reviewSet {
		if r.MentorID == mentorID {
			out = append(out, s.reviews.Status(r.Clone()))
		}
	}
	return out
}

// Leaderboard recomputes the team ranking from the cached sets.
func (s *Service) Leaderboard() []model.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := time.Now()
	entries := aggregate.Leaderboard(s.rubric, s.teams, s.reviewSet, s.mentors)
	metrics.RecordAggregation("leaderboard", float64(time.Since(start).Milliseconds()))
	return entries
}

// Progress recomputes per-mentor completion counts from the cached sets.
func (s *Service) Progress() []model.MentorProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := time.Now()
	out := aggregate.Progress(s.mentors, s.reviewSet)
	metrics.RecordAggregation("progress", float64(time.Since(start).Milliseconds()))
	return out
}

// TeamComments recomputes the per-team comment roster, ordered like the
// leaderboard.
func (s *Service) TeamComments() []model.TeamComments {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := time.Now()
	entries := aggregate.Leaderboard(s.rubric, s.teams, s.reviewSet, s.mentors)
	out := aggregate.Comments(entries, s.reviewSet, s.mentors)
	metrics.RecordAggregation("comments", float64(time.Since(start).Milliseconds()))
	return out
}

// AddTeam inserts a team and folds it into the cache on confirmation.
func (s *Service) AddTeam(ctx context.Context, t model.Team) (model.Team, error) {
	inserted, err := s.store.InsertTeam(ctx, t)
	if err != nil {
		return model.Team{}, fmt.Errorf("add team %s: %w", t.ID, err)
	}
	s.mu.Lock()
	s.upsertTeamLocked(inserted)
	s.mu.Unlock()
	return inserted, nil
}

// Assign creates the mentor-team review relationship. The cache echoes the
// new review only after the store confirms the insert.
func (s *Service) Assign(ctx context.Context, teamID, mentorID string) (model.Review, error) {
	inserted, err := s.assigner.Assign(ctx, teamID, mentorID)
	if err != nil {
		return model.Review{}, err
	}
	s.mu.Lock()
	s.reviewSet = append(s.reviewSet, inserted.Clone())
	s.mu.Unlock()
	return inserted, nil
}

// Unassign hard-deletes a review. The cached copy is removed optimistically
// for responsiveness; if the store delete fails or matches no row the exact
// prior value is restored and the failure reported. Delete has no dirty
// intermediate state, which is why optimism is safe here and nowhere else.
func (s *Service) Unassign(ctx context.Context, reviewID int64) error {
	return run("unassign",
		func() []model.Review {
			s.mu.RLock()
			defer s.mu.RUnlock()
			return model.CloneReviews(s.reviewSet)
		},
		func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			kept := s.reviewSet[:0:0]
			for _, r := range s.reviewSet {
				if r.ID != reviewID {
					kept = append(kept, r)
				}
			}
			s.reviewSet = kept
		},
		func() error {
			_, err := s.assigner.Unassign(ctx, reviewID)
			return err
		},
		func(snapshot []model.Review) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.reviewSet = snapshot
		},
	)
}

// SaveReview runs the durable-first save protocol and echoes the confirmed
// row into the cache. A failure leaves the cache byte-for-byte untouched,
// and the review's draft intact.
func (s *Service) SaveReview(ctx context.Context, mentorID string, reviewID int64, scores []model.CriterionScore, completed bool, comment string) (review.Status, error) {
	updated, err := s.reviews.Save(ctx, mentorID, reviewID, scores, completed, comment)
	if err != nil {
		return review.Status{}, err
	}
	s.mu.Lock()
	for i, r := range s.reviewSet {
		if r.ID == updated.ID {
			s.reviewSet[i] = updated.Clone()
			break
		}
	}
	s.mu.Unlock()
	return s.reviews.Status(updated), nil
}

// PreviewScore exposes the form preview total for arbitrary score sets.
func (s *Service) PreviewScore(scores []model.CriterionScore) float64 {
	return s.reviews.Preview(scores)
}

// LoadDraft returns the staged edit state for (reviewID, mentorID), if any.
func (s *Service) LoadDraft(reviewID int64, mentorID string) (draft.Draft, bool) {
	return s.drafts.Load(reviewID, mentorID)
}

// StageDraft buffers unconfirmed edits for a review. Writes are debounced
// and never fail the caller.
func (s *Service) StageDraft(reviewID int64, mentorID string, scores []model.CriterionScore, comment string) {
	s.drafts.Save(reviewID, mentorID, scores, comment)
}

// DiscardDraft drops the staged edit state immediately.
func (s *Service) DiscardDraft(reviewID int64, mentorID string) {
	s.drafts.Clear(reviewID, mentorID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	completed := 0
	for _, r := range s.reviewSet {
		if r.IsCompleted {
			completed++
		}
	}
	return map[string]interface{}{
		"started":          s.started,
		"teams":            len(s.teams),
		"mentors":          len(s.mentors),
		"reviews":          len(s.reviewSet),
		"completedReviews": completed,
		"criteria":         s.rubric.Len(),
	}
}
