// Package draft keeps device-local, per-(review, mentor) staging state for
// in-progress edits. Drafts are a convenience, never a correctness
// requirement: every failure here is logged and swallowed.
package draft

import (
	"context"
	"encoding/gob"
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/okian/mentorboard/internal/domain/model"
	"github.com/okian/mentorboard/pkg/logger"
	"github.com/okian/mentorboard/pkg/metrics"
)

// Default draft configuration constants.
const (
	defaultTTL      = 24 * time.Hour
	defaultDebounce = time.Second
	cleanupDivisor  = 24 // cleanup sweep every TTL/24, i.e. hourly at default TTL
)

func init() {
	// The cache persists entries as gob-encoded interface values.
	gob.Register(Draft{})
}

// Draft is the unsaved local edit state for one review.
type Draft struct {
	Scores       []model.CriterionScore
	Comment      string
	LastModified time.Time
}

// Store holds drafts in an expiring cache with per-key debounced writes.
// One pending timer exists per (review, mentor) edit session.
type Store struct {
	mu       sync.Mutex
	cache    *gocache.Cache
	timers   map[string]*time.Timer
	ttl      time.Duration
	debounce time.Duration
	path     string
	log      logger.Logger
	closed   bool
}

// New creates a draft store. When a file path is configured, previously
// persisted drafts are loaded back; load failures are swallowed because a
// missing or corrupt draft file must never block startup.
func New(opts ...Option) *Store {
	s := &Store{
		ttl:      defaultTTL,
		debounce: defaultDebounce,
		timers:   make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("draft")
	}
	s.cache = gocache.New(s.ttl, s.ttl/cleanupDivisor)
	s.cache.OnEvicted(func(string, interface{}) {
		metrics.RecordDraftEvicted()
	})
	if s.path != "" {
		if err := s.cache.LoadFile(s.path); err != nil {
			s.log.Warn(context.Background(), "could not load draft file",
				logger.String("path", s.path), logger.Error(err))
		}
	}
	return s
}

func key(reviewID int64, mentorID string) string {
	return fmt.Sprintf("draft:%s:%d", mentorID, reviewID)
}

// Load returns the draft for (reviewID, mentorID), or ok=false when absent
// or expired. Expired entries are removed by the cache.
func (s *Store) Load(reviewID int64, mentorID string) (Draft, bool) {
	v, ok := s.cache.Get(key(reviewID, mentorID))
	metrics.RecordDraftLoad(ok)
	if !ok {
		return Draft{}, false
	}
	d, ok := v.(Draft)
	if !ok {
		// Unexpected shape from a stale draft file; drop it.
		s.cache.Delete(key(reviewID, mentorID))
		return Draft{}, false
	}
	return d, true
}

// Save schedules a debounced write of the draft content. A rapid edit burst
// collapses into a single write once the caller has been quiescent for the
// debounce window. Entirely empty content (no score set, blank comment)
// deletes the draft instead of persisting an empty one.
func (s *Store) Save(reviewID int64, mentorID string, scores []model.CriterionScore, comment string) {
	k := key(reviewID, mentorID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if t := s.timers[k]; t != nil {
		t.Stop()
		delete(s.timers, k)
	}

	if isEmpty(scores, comment) {
		s.cache.Delete(k)
		return
	}

	d := Draft{
		Scores:       model.CloneScores(scores),
		Comment:      comment,
		LastModified: time.Now(),
	}
	if s.debounce <= 0 {
		s.put(k, d)
		return
	}
	// The callback may already be blocked on s.mu when a later Save or Clear
	// stops the timer, so Stop alone cannot cancel it. It writes only while it
	// is still the current registration for the key; replacing or deleting the
	// registration invalidates it.
	var t *time.Timer
	t = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || s.timers[k] != t {
			return
		}
		delete(s.timers, k)
		s.put(k, d)
	})
	s.timers[k] = t
}

// put must be called with s.mu held.
func (s *Store) put(k string, d Draft) {
	s.cache.SetDefault(k, d)
	metrics.RecordDraftSave()
}

// Clear removes the draft immediately and cancels any pending write.
func (s *Store) Clear(reviewID int64, mentorID string) {
	k := key(reviewID, mentorID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.timers[k]; t != nil {
		t.Stop()
		delete(s.timers, k)
	}
	s.cache.Delete(k)
}

// Close cancels pending debounce timers so nothing writes after the editing
// context is gone, then persists the cache when a file path is configured.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for k, t := range s.timers {
		t.Stop()
		delete(s.timers, k)
	}
	if s.path == "" {
		return
	}
	if err := s.cache.SaveFile(s.path); err != nil {
		s.log.Warn(context.Background(), "could not persist draft file",
			logger.String("path", s.path), logger.Error(err))
	}
}

func isEmpty(scores []model.CriterionScore, comment string) bool {
	if strings.TrimSpace(comment) != "" {
		return false
	}
	for _, cs := range scores {
		if cs.Score != nil {
			return false
		}
	}
	return true
}
