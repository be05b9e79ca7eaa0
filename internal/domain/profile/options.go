package profile

import (
	"github.com/okian/expertlens/internal/domain/catalog"
	"github.com/okian/expertlens/internal/domain/scoring"
	"github.com/okian/expertlens/pkg/logger"
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithCatalog sets the reference data the generator draws from.
func WithCatalog(c *catalog.Catalog) Option {
	return func(g *Generator) {
		if c != nil {
			g.catalog = c
		}
	}
}

// WithScorer sets the scorer applied to synthesized tasks.
func WithScorer(s *scoring.Scorer) Option {
	return func(g *Generator) {
		if s != nil {
			g.scorer = s
		}
	}
}

// WithConcurrency bounds the number of profiles generated in parallel by
// GenerateBatch.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}
