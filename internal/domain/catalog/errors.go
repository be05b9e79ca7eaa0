package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrDecode  = errors.New("decode catalog")
	ErrInvalid = errors.New("invalid catalog")
)
