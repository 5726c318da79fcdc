package timeclock

import (
	"context"
)

// TimeclockService defines business logic for attendance operations.
type TimeclockService interface {
	// RecordEvent appends an attendance event for the authenticated user
	// after the status gate approves it. A disallowed action fails with
	// ErrActionNotAllowed and records nothing.
	RecordEvent(ctx context.Context, req RecordEventRequest) (EventResponse, error)

	// GetTodayStatus computes which attendance actions are currently
	// enabled for the authenticated user, derived fresh from today's events.
	GetTodayStatus(ctx context.Context) (TodayStatusResponse, error)

	// GetMyEvents retrieves the authenticated user's raw events for one
	// local calendar day, oldest first.
	GetMyEvents(ctx context.Context, localDate string) ([]EventResponse, error)

	// GetMonthlyReport reconstructs a user's daily work intervals for a
	// local calendar month and returns decimal hours per shift per day.
	GetMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)

	// UpdateEvent overwrites a single event's recorded time, kind, or
	// geolocation. Administrative correction only; bypasses the status gate.
	UpdateEvent(ctx context.Context, req UpdateEventRequest) (EventResponse, error)
}
