package timeclock

import (
	"context"
	"time"
)

// EventRepository defines data access for attendance events. Reads return
// events ordered by recorded instant, ties broken by identifier, so that
// "most recent event" and interval pairing are deterministic.
type EventRepository interface {
	// Create appends one immutable event and returns it with its assigned ID.
	Create(ctx context.Context, event Event) (Event, error)

	// GetByID retrieves a single event.
	GetByID(ctx context.Context, id string) (Event, error)

	// FindByUserInRange retrieves a user's events with recorded instant in
	// the half-open absolute interval [start, end).
	FindByUserInRange(ctx context.Context, userID string, start, end time.Time) ([]Event, error)

	// FindByUserOnDate retrieves a user's events for one local calendar day.
	FindByUserOnDate(ctx context.Context, userID string, localDate string) ([]Event, error)

	// UpdateByID overwrites the patched fields of an existing event. This is
	// the administrative correction path; it returns ErrEventNotFound when
	// the event does not exist.
	UpdateByID(ctx context.Context, id string, patch EventPatch) (Event, error)
}
