package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/expertlens/internal/domain/model"
	"github.com/okian/expertlens/pkg/metrics"
)

// Store defaults.
const (
	defaultTTL           = time.Hour
	defaultSweepInterval = time.Minute
	defaultMaxSessions   = 1024
)

// Eviction reasons reported to metrics.
const (
	evictExpired  = "expired"
	evictCapacity = "capacity"
)

type session struct {
	batch     []model.Profile
	storedAt  time.Time
	expiresAt time.Time
}

// SessionStore is an in-memory Store with per-session expiry.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session
	closed   bool

	ttl           time.Duration
	sweepInterval time.Duration
	maxSessions   int
	now           func() time.Time

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

var _ Store = (*SessionStore)(nil)

// NewSessionStore constructs a store and starts its janitor goroutine. The
// janitor exits when ctx is done or Close is called.
func NewSessionStore(ctx context.Context, opts ...Option) *SessionStore {
	s := &SessionStore{
		sessions:      make(map[string]session),
		ttl:           defaultTTL,
		sweepInterval: defaultSweepInterval,
		maxSessions:   defaultMaxSessions,
		now:           time.Now,
		stopChan:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	metrics.UpdateActiveSessions(0)
	s.startJanitor(ctx)
	return s
}

func (s *SessionStore) startJanitor(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Close stops the janitor and waits for it to exit. It is safe to call
// more than once.
func (s *SessionStore) Close() error {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.stopChan)
	})
	s.wg.Wait()
	return nil
}

// Put implements Store.Put.
func (s *SessionStore) Put(_ context.Context, key string, batch []model.Profile) error {
	if key == "" {
		return fmt.Errorf("put: %w", ErrInvalidKey)
	}
	start := time.Now()
	defer func() {
		metrics.RecordSessionStoreLatency("put", float64(time.Since(start).Microseconds())/1000)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("put %q: %w", key, ErrClosed)
	}

	now := s.now()
	if _, exists := s.sessions[key]; !exists && len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}
	s.sessions[key] = session{
		batch:     batch,
		storedAt:  now,
		expiresAt: now.Add(s.ttl),
	}
	metrics.UpdateActiveSessions(len(s.sessions))
	return nil
}

// Get implements Store.Get. Expired sessions are reported as not found
// even before the janitor removes them.
func (s *SessionStore) Get(_ context.Context, key string) ([]model.Profile, error) {
	start := time.Now()
	defer func() {
		metrics.RecordSessionStoreLatency("get", float64(time.Since(start).Microseconds())/1000)
	}()

	s.mu.RLock()
	sess, ok := s.sessions[key]
	s.mu.RUnlock()

	if !ok || !s.now().Before(sess.expiresAt) {
		return nil, fmt.Errorf("session %q: %w", key, ErrNotFound)
	}
	return sess.batch, nil
}

// Len implements Store.Len.
func (s *SessionStore) Len(_ context.Context) int {
	now := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sess := range s.sessions {
		if now.Before(sess.expiresAt) {
			n++
		}
	}
	return n
}

// Sweep removes expired sessions and returns how many were evicted.
func (s *SessionStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, key)
			evicted++
		}
	}
	metrics.RecordSessionsEvicted(evictExpired, evicted)
	metrics.UpdateActiveSessions(len(s.sessions))
	return evicted
}

// evictOldestLocked drops the session stored earliest. Callers hold mu.
func (s *SessionStore) evictOldestLocked() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, sess := range s.sessions {
		if !found || sess.storedAt.Before(oldest) || (sess.storedAt.Equal(oldest) && key < oldestKey) {
			oldestKey, oldest, found = key, sess.storedAt, true
		}
	}
	if found {
		delete(s.sessions, oldestKey)
		metrics.RecordSessionsEvicted(evictCapacity, 1)
	}
}
