package repository

import "time"

// Option applies a configuration option to the SessionStore.
type Option func(*SessionStore)

// WithTTL sets how long a session lives after its last Put.
func WithTTL(ttl time.Duration) Option {
	return func(s *SessionStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSweepInterval sets how often expired sessions are evicted.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *SessionStore) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithMaxSessions caps the number of live sessions. When full, the oldest
// session is evicted to make room.
func WithMaxSessions(n int) Option {
	return func(s *SessionStore) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *SessionStore) {
		if now != nil {
			s.now = now
		}
	}
}
