package repository

import "errors"

// Sentinel kinds for report store errors.
var (
	ErrNoReport     = errors.New("no report stored")
	ErrNotFound     = errors.New("engine not found")
	ErrInvalidLimit = errors.New("invalid ranking limit")
	ErrNilReport    = errors.New("nil report")
)
