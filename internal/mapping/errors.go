package mapping

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotFound       = errors.New("mapping file not found")
	ErrLoad           = errors.New("mapping file load failed")
	ErrInvalidMapping = errors.New("invalid mapping structure")
)
