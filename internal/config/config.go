// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"runtime"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// ProfileSource selects where profiles come from: mock or remote.
	ProfileSource string `koanf:"profile_source"`

	// SessionTTL is how long an upload session stays readable.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// SessionSweepInterval is how often expired sessions are evicted.
	SessionSweepInterval time.Duration `koanf:"session_sweep_interval"`

	// MaxSessions caps the number of cached sessions.
	MaxSessions int `koanf:"max_sessions"`

	// SessionIDLength is the length of generated session ids (4-32).
	SessionIDLength int `koanf:"session_id_length"`

	// MaxUploadBytes bounds the size of POST /api/upload bodies.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// DefaultPageLimit and MaxPageLimit govern GET .../experts?limit.
	DefaultPageLimit int `koanf:"default_page_limit"`
	MaxPageLimit     int `koanf:"max_page_limit"`

	// GenerationConcurrency bounds parallel profile generation.
	GenerationConcurrency int `koanf:"generation_concurrency"`

	// HighTaskThreshold is the task count at which an expert is high volume.
	HighTaskThreshold int `koanf:"high_task_threshold"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":8000",
		ProfileSource:         "mock",
		SessionTTL:            time.Hour,
		SessionSweepInterval:  time.Minute,
		MaxSessions:           1024,
		SessionIDLength:       8,
		MaxUploadBytes:        10 << 20,
		DefaultPageLimit:      50,
		MaxPageLimit:          500,
		GenerationConcurrency: runtime.NumCPU(),
		HighTaskThreshold:     10,
	}
}
