package store

import (
	"context"
	"time"

	"github.com/okian/mentorboard/internal/domain/model"
	"github.com/okian/mentorboard/pkg/metrics"
)

// Instrumented decorates a Store with a per-operation timeout and latency
// metrics. A hung backend surfaces as context.DeadlineExceeded, which callers
// treat exactly like any other store failure.
type Instrumented struct {
	inner   Store
	timeout time.Duration
}

// Instrument wraps inner. A timeout <= 0 disables the deadline.
func Instrument(inner Store, timeout time.Duration) *Instrumented {
	return &Instrumented{inner: inner, timeout: timeout}
}

func (s *Instrumented) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func record(op string, start time.Time, err error) {
	metrics.RecordStoreOp(op, float64(time.Since(start).Milliseconds()), err != nil)
}

func (s *Instrumented) GetTeam(ctx context.Context, id string) (model.Team, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	start := time.Now()
	t, err := s.inner.GetTeam(ctx, id)
	record("get_team", start, err)
	return t, err
}

func (s *Instrumented) ListTeams(ctx context.Context, ids ...string) ([]model.Team, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	start := time.Now()
	out, err := s.inner.ListTeams(ctx, ids...)
	record("list_teams", start, err)
	return out, err
}

func (s *Instrumented) InsertTeam(ctx context.Context, t model.Team) (model.Team, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	start := time.Now()
	out, err := s.inner.InsertTeam(ctx, t)
	record("insert_team", start, err)
	return out, err
}

func (s *Instrumented) GetMentor(ctx context.Context, id string) (model.Mentor, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	start := time.Now()
	m, err := s.inner.GetMentor(ctx, id)
	record("get_mentor", start, err)
	return m, err
}

func (s *Instrumented) ListMentors(ctx context.Context) ([]model.Mentor, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	start := time.Now()
	out, err := s.inner.ListMentors(ctx)
	record("list_mentors", start, err)
	return out, err
}

func (s *Instrumented) InsertMentor(ctx context.Context, m model.Mentor) (model.Mentor, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	start := time.Now()
	out, err := s.inner.InsertMentor(ctx, m)
	record("insert_mentor", start, err)
	return out, err
}

func (s *Instrumented) ListReviews(ctx context.Context, f ReviewFilter) ([]model.Review, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	start := time.Now()
	out, err := s.inner.ListReviews(ctx, f)
	record("list_reviews", start, err)
	return out, err
}

func (s *Instrumented) InsertReview(ctx context.Context, r model.Review) (model.Review, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	start := time.Now()
	out, err := s.inner.InsertReview(ctx, r)
	record("insert_review", start, err)
	return out, err
}

func (s *Instrumented) UpdateReview(ctx context.Context, id int64, mentorID string, patch ReviewPatch) (model.Review, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	start := time.Now()
	out, err := s.inner.UpdateReview(ctx, id, mentorID, patch)
	record("update_review", start, err)
	return out, err
}

func (s *Instrumented) DeleteReview(ctx context.Context, id int64) (model.Review, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	start := time.Now()
	out, err := s.inner.DeleteReview(ctx, id)
	record("delete_review", start, err)
	return out, err
}
