package timeclock

import "errors"

// Timeclock domain errors
var (
	// ErrActionNotAllowed means the requested action's gate flag is off for
	// the current state of today's events. Nothing is recorded.
	ErrActionNotAllowed = errors.New("attendance action is not currently enabled")

	ErrEventNotFound = errors.New("attendance event not found")
)
