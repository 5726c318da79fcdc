package timeclock

import (
	"github.com/kintai-dev/kintai-backend-go/internal/pkg/validator"
)

// ========================================
// TIMECLOCK DTOs
// ========================================

type RecordEventRequest struct {
	Kind      Kind     `json:"kind"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *RecordEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: check_in, lunch_out, lunch_in, check_out",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EventResponse is a recorded event together with its organization-local
// representation.
type EventResponse struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	Kind       Kind     `json:"kind"`
	RecordedAt string   `json:"recorded_at"` // RFC3339, UTC
	LocalDate  string   `json:"local_date"`  // YYYY-MM-DD
	LocalTime  string   `json:"local_time"`  // HH:MM
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// TodayStatusResponse carries the four gate flags for the current local day.
type TodayStatusResponse struct {
	Date        string `json:"date"` // YYYY-MM-DD local
	CanCheckIn  bool   `json:"can_check_in"`
	CanCheckOut bool   `json:"can_check_out"`
	CanLunchOut bool   `json:"can_lunch_out"`
	CanLunchIn  bool   `json:"can_lunch_in"`
}

type MonthlyReportRequest struct {
	UserID string `json:"user_id"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EventDetail is one raw event as shown inside a daily report.
type EventDetail struct {
	ID        string   `json:"id"`
	Time      string   `json:"time"` // HH:MM local
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// DailyReport is the per-date output of the work-hours calculator: the
// grouped raw events plus decimal hours per shift.
type DailyReport struct {
	Date      string             `json:"date"`
	CheckIns  []EventDetail      `json:"check_ins"`
	LunchOuts []EventDetail      `json:"lunch_outs"`
	LunchIns  []EventDetail      `json:"lunch_ins"`
	CheckOuts []EventDetail      `json:"check_outs"`
	Hours     map[string]float64 `json:"hours"` // shift name -> decimal hours
}

// MonthlyReportResponse maps each local date with activity to its report.
type MonthlyReportResponse struct {
	UserID string                 `json:"user_id"`
	Year   int                    `json:"year"`
	Month  int                    `json:"month"`
	Days   map[string]DailyReport `json:"days"` // keyed by YYYY-MM-DD
}

// UpdateEventRequest is the administrative correction of a single event's
// recorded time, kind, or geolocation. It bypasses the status gate.
type UpdateEventRequest struct {
	ID         string   `json:"-"`
	RecordedAt *string  `json:"recorded_at,omitempty"` // RFC3339
	Kind       *Kind    `json:"kind,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *UpdateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.RecordedAt != nil {
		if _, valid := validator.IsValidDateTime(*r.RecordedAt); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "recorded_at",
				Message: "recorded_at must be an RFC3339 timestamp",
			})
		}
	}

	if r.Kind != nil && !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: check_in, lunch_out, lunch_in, check_out",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
