package timeclock

// ShiftWindow is a named local-time range worked minutes are measured
// against for payroll categorization. Start and End are minutes since local
// midnight; End may exceed 1440 to express a shift running past midnight
// (27:00 means 03:00 the next day).
type ShiftWindow struct {
	Name  string
	Start int
	End   int
}

// BreakWindow is a local-time interval subtracted from worked time before
// shift-hour computation, in minutes since local midnight.
type BreakWindow struct {
	Start int
	End   int
}

// ShiftConfig is the immutable schedule policy injected into the work-hours
// calculator and the status gate. It is plain data so per-tenant schedules
// can be introduced without code change.
type ShiftConfig struct {
	// Shifts are the named windows hours are reported under, in report order.
	Shifts []ShiftWindow

	// LunchBreak is the fallback lunch window, applied only when the day has
	// no real lunch_out/lunch_in pair.
	LunchBreak BreakWindow

	// FixedBreaks are unpaid windows deducted regardless of lunch data.
	FixedBreaks []BreakWindow

	// LunchEarliestHour and LunchLatestHour bound the local hour (inclusive)
	// during which a lunch_out may be recorded.
	LunchEarliestHour int
	LunchLatestHour   int
}

// DayRollover returns the local minute of day (exclusive upper bound) before
// which an early-morning event may still belong to the previous day's
// attendance, derived from the latest shift end running past midnight. Zero
// when no shift crosses midnight.
func (c ShiftConfig) DayRollover() int {
	rollover := 0
	for _, s := range c.Shifts {
		if past := s.End - 24*60; past > rollover {
			rollover = past
		}
	}
	return rollover
}

// Canonical shift names.
const (
	ShiftMain = "main"
	ShiftOT1  = "ot1"
	ShiftOT2  = "ot2"
)

// DefaultShiftConfig returns the company-wide schedule: a 09:00-18:00 main
// shift, evening overtime 18:30-22:00, late overtime 22:30-27:00, and the
// standard unpaid breaks between them.
func DefaultShiftConfig() ShiftConfig {
	return ShiftConfig{
		Shifts: []ShiftWindow{
			{Name: ShiftMain, Start: 9 * 60, End: 18 * 60},
			{Name: ShiftOT1, Start: 18*60 + 30, End: 22 * 60},
			{Name: ShiftOT2, Start: 22*60 + 30, End: 27 * 60},
		},
		LunchBreak: BreakWindow{Start: 12 * 60, End: 13 * 60},
		FixedBreaks: []BreakWindow{
			{Start: 18 * 60, End: 18*60 + 30},
			{Start: 22 * 60, End: 22*60 + 30},
		},
		LunchEarliestHour: 11,
		LunchLatestHour:   13,
	}
}
