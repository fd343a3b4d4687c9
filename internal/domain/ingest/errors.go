package ingest

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidResult = errors.New("invalid game result")
)
