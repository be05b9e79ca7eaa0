package service

import (
	"time"

	"github.com/okian/expertlens/internal/adapters/repository"
	"github.com/okian/expertlens/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithProfileSource selects the profile source by name ("mock" or "remote").
func WithProfileSource(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.sourceName = name
		}
	}
}

// WithSessionTTL sets how long an upload session stays readable.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithSweepInterval sets how often expired sessions are evicted.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithMaxSessions caps the number of cached sessions.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithSessionIDLength sets the length of generated session ids.
func WithSessionIDLength(n int) Option {
	return func(s *Service) {
		if n >= minSessionIDLength && n <= maxSessionIDLength {
			s.sessionIDLength = n
		}
	}
}

// WithGenerationConcurrency bounds parallel profile generation.
func WithGenerationConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithHighTaskThreshold sets the task count at which an expert is high volume.
func WithHighTaskThreshold(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.highTaskThreshold = n
		}
	}
}

// WithStore injects the session store instead of the in-memory default.
// The service closes it on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
