// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/expertlens/internal/adapters/repository"
	"github.com/okian/expertlens/internal/domain/aggregate"
	"github.com/okian/expertlens/internal/domain/model"
	"github.com/okian/expertlens/internal/domain/profile"
	"github.com/okian/expertlens/internal/ingest"
	"github.com/okian/expertlens/pkg/logger"
	"github.com/okian/expertlens/pkg/metrics"
)

// Session id bounds. Ids are cut from a hex uuid.
const (
	minSessionIDLength = 4
	maxSessionIDLength = 32
)

const uploadExt = ".txt"

// UploadResult describes a stored upload session.
type UploadResult struct {
	SessionID   string
	TalentCount int
}

// ExpertsPage is one page of a session's profiles.
type ExpertsPage struct {
	Total int
	Data  []model.Profile
}

// Service implements the upload and dashboard use cases.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	generator *profile.Generator
	source    profile.Source

	// Configuration
	sourceName        string
	sessionTTL        time.Duration
	sweepInterval     time.Duration
	maxSessions       int
	sessionIDLength   int
	concurrency       int
	highTaskThreshold int

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sourceName:        profile.SourceMock,
		sessionTTL:        time.Hour,
		sweepInterval:     time.Minute,
		maxSessions:       1024,
		sessionIDLength:   8,
		concurrency:       runtime.NumCPU(),
		highTaskThreshold: aggregate.DefaultHighTaskThreshold,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the store, the generator and the profile source.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting expert dashboard service...")

	s.generator = profile.NewGenerator(
		profile.WithConcurrency(s.concurrency),
		profile.WithLogger(s.logger.Named("profile")),
	)
	source, err := profile.NewSource(s.sourceName, s.generator)
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	s.source = source

	if s.store == nil {
		s.store = repository.NewSessionStore(ctx,
			repository.WithTTL(s.sessionTTL),
			repository.WithSweepInterval(s.sweepInterval),
			repository.WithMaxSessions(s.maxSessions),
		)
	}

	s.stopCh = make(chan struct{})
	s.startSystemMetrics(ctx)

	s.started = true
	s.logger.Info(ctx, "expert dashboard service started",
		logger.String("source", s.source.Name()),
		logger.Duration("sessionTTL", s.sessionTTL),
		logger.Int("maxSessions", s.maxSessions),
		logger.Int("concurrency", s.concurrency),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping expert dashboard service...")

	close(s.stopCh)
	s.wg.Wait()

	if s.store != nil {
		_ = s.store.Close()
		s.store = nil
	}

	s.started = false
	s.logger.Info(context.Background(), "expert dashboard service stopped")
}

// startSystemMetrics refreshes runtime gauges until Stop. Callers hold mu.
func (s *Service) startSystemMetrics(ctx context.Context) {
	stop := s.stopCh
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(metrics.RefreshInterval())
		defer ticker.Stop()

		var lastGC uint32
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				var ms runtime.MemStats
				runtime.ReadMemStats(&ms)
				metrics.UpdateSystemMemoryUsage(ms.Alloc)
				metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
				if ms.NumGC != lastGC {
					metrics.RecordSystemGCPauseTime(float64(ms.PauseNs[(ms.NumGC+255)%256]) / 1e6)
					lastGC = ms.NumGC
				}
			}
		}
	}()
}

func (s *Service) components() (repository.Store, profile.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.store, s.source, nil
}

// Analyze decodes an identifier file and returns the profiles and their
// statistics without storing them.
func (s *Service) Analyze(ctx context.Context, raw []byte) ([]model.Profile, aggregate.Stats, error) {
	_, source, err := s.components()
	if err != nil {
		return nil, aggregate.Stats{}, err
	}

	text, err := ingest.Decode(raw)
	if err != nil {
		return nil, aggregate.Stats{}, err
	}
	ids := ingest.ParseIDs(text)
	metrics.RecordIDsIngested(len(ids))

	start := time.Now()
	profiles, err := source.Fetch(ctx, ids)
	if err != nil {
		metrics.RecordErrorByComponent("profile", source.Name())
		return nil, aggregate.Stats{}, fmt.Errorf("fetch profiles: %w", err)
	}
	metrics.RecordGenerationLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordProfilesGenerated(source.Name(), len(profiles))
	for i := range profiles {
		metrics.RecordQualityLabel(profiles[i].QualityLabel.String())
		metrics.RecordRiskLevel(profiles[i].TemplateRiskLevel.String())
	}

	return profiles, s.aggregate(profiles), nil
}

// Upload analyzes an uploaded file and stores the batch under a new session.
func (s *Service) Upload(ctx context.Context, filename string, raw []byte) (UploadResult, error) {
	if !strings.EqualFold(filepath.Ext(filename), uploadExt) {
		metrics.RecordUpload("rejected")
		return UploadResult{}, fmt.Errorf("%q: %w", filename, ErrUnsupportedFile)
	}
	store, _, err := s.components()
	if err != nil {
		return UploadResult{}, err
	}

	profiles, _, err := s.Analyze(ctx, raw)
	if err != nil {
		metrics.RecordUpload("failed")
		return UploadResult{}, err
	}

	sessionID := s.newSessionID()
	if err := store.Put(ctx, sessionID, profiles); err != nil {
		metrics.RecordUpload("failed")
		return UploadResult{}, fmt.Errorf("store session: %w", err)
	}
	metrics.RecordUpload("success")

	s.logger.Info(ctx, "upload processed",
		logger.String("sessionID", sessionID),
		logger.String("file", filename),
		logger.Int("talents", len(profiles)),
	)
	return UploadResult{SessionID: sessionID, TalentCount: len(profiles)}, nil
}

// Dashboard returns the statistics of a stored session.
func (s *Service) Dashboard(ctx context.Context, sessionID string) (aggregate.Stats, error) {
	profiles, err := s.session(ctx, sessionID)
	if err != nil {
		return aggregate.Stats{}, err
	}
	return s.aggregate(profiles), nil
}

// Experts returns a page of a stored session's profiles. Offsets past the
// end yield an empty page.
func (s *Service) Experts(ctx context.Context, sessionID string, limit, offset int) (ExpertsPage, error) {
	profiles, err := s.session(ctx, sessionID)
	if err != nil {
		return ExpertsPage{}, err
	}
	lo := min(max(offset, 0), len(profiles))
	hi := min(lo+max(limit, 0), len(profiles))
	return ExpertsPage{Total: len(profiles), Data: profiles[lo:hi]}, nil
}

func (s *Service) session(ctx context.Context, sessionID string) ([]model.Profile, error) {
	store, _, err := s.components()
	if err != nil {
		return nil, err
	}
	profiles, err := store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return profiles, nil
}

func (s *Service) aggregate(profiles []model.Profile) aggregate.Stats {
	start := time.Now()
	st := aggregate.Compute(profiles, aggregate.WithHighTaskThreshold(s.highTaskThreshold))
	metrics.RecordAggregationLatency(float64(time.Since(start).Microseconds()) / 1000)
	return st
}

func (s *Service) newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:s.sessionIDLength]
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"profileSource":     s.sourceName,
		"sessionTTL":        s.sessionTTL.String(),
		"maxSessions":       s.maxSessions,
		"concurrency":       s.concurrency,
		"highTaskThreshold": s.highTaskThreshold,
	}

	if s.started {
		active := s.store.Len(context.Background())
		stats["activeSessions"] = active
		metrics.UpdateActiveSessions(active)
	}

	return stats
}
