package ingest

import "errors"

// ErrUnsupportedEncoding is returned when uploaded bytes are neither valid
// UTF-8 nor valid GBK.
var ErrUnsupportedEncoding = errors.New("unsupported text encoding: use UTF-8 or GBK")
