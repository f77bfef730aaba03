package draft

import (
	"time"

	"github.com/okian/mentorboard/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithTTL sets the draft retention window. Drafts older than this are gone
// regardless of save state.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithDebounce sets the quiescence window before a save is persisted.
// Zero or negative makes saves immediate.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) {
		s.debounce = d
	}
}

// WithFile enables gob persistence of the cache at path, so drafts survive a
// process restart on the same device.
func WithFile(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}
