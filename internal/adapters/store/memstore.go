package store

import (
	"context"
	"sync"

	"github.com/okian/mentorboard/internal/domain/model"
)

// MemStore is a mutex-guarded in-memory Store. It preserves insertion order
// for deterministic listings and assigns review ids itself, mirroring a
// store-side serial column.
type MemStore struct {
	mu           sync.RWMutex
	teams        []model.Team
	mentors      []model.Mentor
	reviews      []model.Review
	nextReviewID int64
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{nextReviewID: 1}
}

func (s *MemStore) GetTeam(ctx context.Context, id string) (model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Team{}, ErrNotFound
}

func (s *MemStore) ListTeams(ctx context.Context, ids ...string) ([]model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(ids) == 0 {
		out := make([]model.Team, len(s.teams))
		copy(out, s.teams)
		return out, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.Team
	for _, t := range s.teams {
		if want[t.ID] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemStore) InsertTeam(ctx context.Context, t model.Team) (model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.teams {
		if existing.ID == t.ID {
			return model.Team{}, ErrConflict
		}
	}
	s.teams = append(s.teams, t)
	return t, nil
}

func (s *MemStore) GetMentor(ctx context.Context, id string) (model.Mentor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.mentors {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Mentor{}, ErrNotFound
}

func (s *MemStore) ListMentors(ctx context.Context) ([]model.Mentor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Mentor, len(s.mentors))
	copy(out, s.mentors)
	return out, nil
}

func (s *MemStore) InsertMentor(ctx context.Context, m model.Mentor) (model.Mentor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.mentors {
		if existing.ID == m.ID {
			return model.Mentor{}, ErrConflict
		}
	}
	s.mentors = append(s.mentors, m)
	return m, nil
}

func (s *MemStore) ListReviews(ctx context.Context, f ReviewFilter) ([]model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Review
	for _, r := range s.reviews {
		if f.MentorID != "" && r.MentorID != f.MentorID {
			continue
		}
		if f.TeamID != "" && r.TeamID != f.TeamID {
			continue
		}
		out = append(out, r.Clone())
	}
	return out, nil
}

func (s *MemStore) InsertReview(ctx context.Context, r model.Review) (model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := r.Clone()
	stored.ID = s.nextReviewID
	s.nextReviewID++
	s.reviews = append(s.reviews, stored)
	return stored.Clone(), nil
}

func (s *MemStore) UpdateReview(ctx context.Context, id int64, mentorID string, patch ReviewPatch) (model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reviews {
		if r.ID != id || r.MentorID != mentorID {
			continue
		}
		r.Scores = model.CloneScores(patch.Scores)
		r.IsCompleted = patch.IsCompleted
		r.Comment = patch.Comment
		s.reviews[i] = r
		return r.Clone(), nil
	}
	// Zero rows matched the (id, mentorID) filter: either the review is gone
	// or the caller does not own it.
	return model.Review{}, ErrNotFound
}

func (s *MemStore) DeleteReview(ctx context.Context, id int64) (model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reviews {
		if r.ID != id {
			continue
		}
		s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
		return r.Clone(), nil
	}
	return model.Review{}, ErrNotFound
}
