package timeclock

import (
	"time"
)

// Kind is the closed set of attendance actions a user can record.
type Kind string

const (
	KindCheckIn  Kind = "check_in"
	KindLunchOut Kind = "lunch_out"
	KindLunchIn  Kind = "lunch_in"
	KindCheckOut Kind = "check_out"
)

// Valid reports whether k is one of the four recordable kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindCheckIn, KindLunchOut, KindLunchIn, KindCheckOut:
		return true
	}
	return false
}

// Event is a single immutable attendance record. RecordedAt is assigned
// server-side at creation and is never client-supplied. Latitude and
// Longitude are both present or both absent; they are kept for audit and
// play no part in hour aggregation.
type Event struct {
	ID         string
	UserID     string
	RecordedAt time.Time
	Kind       Kind
	Latitude   *float64
	Longitude  *float64
	CreatedAt  time.Time
}

// EventPatch carries the fields an administrative correction may overwrite
// on an existing event. Nil fields are left untouched.
type EventPatch struct {
	RecordedAt *time.Time
	Kind       *Kind
	Latitude   *float64
	Longitude  *float64
}
