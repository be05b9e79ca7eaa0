package profile

import (
	"context"
	"fmt"

	"github.com/okian/expertlens/internal/domain/model"
)

// Source names accepted by NewSource.
const (
	SourceMock   = "mock"
	SourceRemote = "remote"
)

// Source fetches profiles for a batch of identifiers.
type Source interface {
	Fetch(ctx context.Context, ids []string) ([]model.Profile, error)
	Name() string
}

// Mock serves deterministic synthetic profiles.
type Mock struct {
	gen *Generator
}

// NewMock wraps a generator as a Source.
func NewMock(g *Generator) *Mock {
	return &Mock{gen: g}
}

// Fetch generates the profiles.
func (m *Mock) Fetch(ctx context.Context, ids []string) ([]model.Profile, error) {
	return m.gen.GenerateBatch(ctx, ids)
}

// Name returns "mock".
func (m *Mock) Name() string { return SourceMock }

// Remote is the placeholder for a real talent data provider.
type Remote struct{}

// Fetch always fails with ErrUnimplemented.
func (Remote) Fetch(context.Context, []string) ([]model.Profile, error) {
	return nil, ErrUnimplemented
}

// Name returns "remote".
func (Remote) Name() string { return SourceRemote }

// NewSource returns the source registered under name.
func NewSource(name string, g *Generator) (Source, error) {
	switch name {
	case SourceMock, "":
		return NewMock(g), nil
	case SourceRemote:
		return Remote{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
}
