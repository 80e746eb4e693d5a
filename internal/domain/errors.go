package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned when no session exists for a key.
	ErrSessionNotFound = errors.New("session not found")

	// ErrFloorOutOfRange is returned when a floor index does not exist in
	// the current blueprint.
	ErrFloorOutOfRange = errors.New("floor index out of range")

	// ErrHistoryLimit is returned when a configured history cap prevents
	// recording another iteration.
	ErrHistoryLimit = errors.New("session history limit reached")
)

// ValidationError reports malformed or unsupported client input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
