package profile

import "errors"

var (
	// ErrUnimplemented is returned by profile sources that have no backing
	// data provider yet.
	ErrUnimplemented = errors.New("profile source not implemented")
	// ErrUnknownSource is returned when a source name is not recognised.
	ErrUnknownSource = errors.New("unknown profile source")
)
