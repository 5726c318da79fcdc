// Package clock converts between stored absolute instants and the
// organization's local wall-clock day. All business rules (working hours,
// lunch windows, "today") are defined in JST while storage is UTC, so every
// local-day boundary in the engine must be computed here and nowhere else.
package clock

import (
	"fmt"
	"time"
)

// Location is the organization timezone: fixed UTC+9, no daylight saving.
var Location = time.FixedZone("JST", 9*60*60)

const dateLayout = "2006-01-02"

// ToLocal returns the instant expressed in organization-local time.
func ToLocal(instant time.Time) time.Time {
	return instant.In(Location)
}

// LocalDate returns the YYYY-MM-DD key of the local calendar day the
// instant falls on.
func LocalDate(instant time.Time) string {
	return instant.In(Location).Format(dateLayout)
}

// DayBounds returns the absolute half-open interval [00:00 local,
// 24:00 local) for the given YYYY-MM-DD local date.
func DayBounds(localDate string) (start, end time.Time, err error) {
	day, err := time.ParseInLocation(dateLayout, localDate, Location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid local date %q: %w", localDate, err)
	}
	return day, day.AddDate(0, 0, 1), nil
}

// MonthBounds returns the absolute half-open interval covering the local
// calendar month: [1st 00:00 local, 1st of next month 00:00 local).
func MonthBounds(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, Location)
	return start, start.AddDate(0, 1, 0)
}

// MinuteOfDay returns the instant's local minutes since midnight, seconds
// floored. 09:30:59 local is 570.
func MinuteOfDay(instant time.Time) int {
	local := instant.In(Location)
	return local.Hour()*60 + local.Minute()
}

// HHMM returns the instant's local time of day as HH:MM.
func HHMM(instant time.Time) string {
	return instant.In(Location).Format("15:04")
}
