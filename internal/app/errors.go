package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrUnsupportedFile = errors.New("only .txt files are supported")
	ErrNotStarted      = errors.New("service not started")
)
