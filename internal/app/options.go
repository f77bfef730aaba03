package app

import (
	"time"

	"github.com/okian/mentorboard/internal/adapters/store"
	"github.com/okian/mentorboard/internal/domain/draft"
	"github.com/okian/mentorboard/internal/domain/rubric"
	"github.com/okian/mentorboard/internal/identity"
	"github.com/okian/mentorboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the persistent store backing the service.
func WithStore(st store.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithRubric sets the scoring rubric.
func WithRubric(rb *rubric.Rubric) Option {
	return func(s *Service) {
		if rb != nil {
			s.rubric = rb
		}
	}
}

// WithDrafts sets the draft store.
func WithDrafts(d *draft.Store) Option {
	return func(s *Service) {
		if d != nil {
			s.drafts = d
		}
	}
}

// WithIdentity sets the identity provider the service subscribes to.
func WithIdentity(p identity.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithStoreTimeout bounds every store operation.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}
