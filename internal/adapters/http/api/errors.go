package api

import (
	"errors"
	"strings"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotReady   = errors.New("no analysis available yet")
)

// The handlers classify upstream errors by message rather than by sentinel
// identity so the package stays decoupled from the storage and service
// implementations behind the Dependencies interface.

func isNotFound(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "not found")
}

func isNotReady(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not run") || strings.Contains(msg, "no report")
}
