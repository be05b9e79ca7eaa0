package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrNotFound   = errors.New("session expired or unknown")
	ErrInvalidKey = errors.New("invalid session key")
	ErrClosed     = errors.New("session store closed")
)
