package timeclock

import (
	"math"

	"github.com/kintai-dev/kintai-backend-go/internal/domain/timeclock"
	"github.com/kintai-dev/kintai-backend-go/internal/pkg/clock"
)

// dayBucket groups one local day's events by kind, each list ordered by
// recorded instant.
type dayBucket struct {
	date      string
	checkIns  []timeclock.Event
	lunchOuts []timeclock.Event
	lunchIns  []timeclock.Event
	checkOuts []timeclock.Event
}

func (b *dayBucket) add(ev timeclock.Event) {
	switch ev.Kind {
	case timeclock.KindCheckIn:
		b.checkIns = append(b.checkIns, ev)
	case timeclock.KindLunchOut:
		b.lunchOuts = append(b.lunchOuts, ev)
	case timeclock.KindLunchIn:
		b.lunchIns = append(b.lunchIns, ev)
	case timeclock.KindCheckOut:
		b.checkOuts = append(b.checkOuts, ev)
	}
}

// openWork reports whether the bucket has a check-in still waiting for its
// check-out.
func (b *dayBucket) openWork() bool {
	return len(b.checkIns) > len(b.checkOuts)
}

// interval is a half-open [start, end) range in local minutes since
// midnight; values past 1440 represent next-day spillover.
type interval struct {
	start, end int
}

func (iv interval) length() int {
	if iv.end <= iv.start {
		return 0
	}
	return iv.end - iv.start
}

func intersect(a, b interval) interval {
	return interval{start: max(a.start, b.start), end: min(a.end, b.end)}
}

// Calculator turns one day's raw events into decimal hours per shift. The
// schedule policy is injected at construction and never mutated.
type Calculator struct {
	cfg timeclock.ShiftConfig
}

func NewCalculator(cfg timeclock.ShiftConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// pairIntervals pairs the i-th start event with the i-th end event; excess
// unmatched events on either side are dropped. An end earlier than its
// start is taken as a rollover past midnight and shifted by one day.
func pairIntervals(starts, ends []timeclock.Event) []interval {
	n := min(len(starts), len(ends))
	intervals := make([]interval, 0, n)
	for i := 0; i < n; i++ {
		iv := interval{
			start: clock.MinuteOfDay(starts[i].RecordedAt),
			end:   clock.MinuteOfDay(ends[i].RecordedAt),
		}
		if iv.end < iv.start {
			iv.end += 24 * 60
		}
		intervals = append(intervals, iv)
	}
	return intervals
}

// Report runs the work-hours algorithm for one day:
// pair check-in/check-out and lunch-out/lunch-in events into intervals,
// build the unpaid-break list, clip each work interval against the
// configured shift windows, subtract break overlaps, and round each
// shift's total to one decimal of hours.
func (c *Calculator) Report(b dayBucket) timeclock.DailyReport {
	work := pairIntervals(b.checkIns, b.checkOuts)
	lunch := pairIntervals(b.lunchOuts, b.lunchIns)

	// A recorded lunch only counts where it overlaps an actual work span;
	// lunches taken outside the recorded work intervals are clipped away.
	var breaks []interval
	for _, l := range lunch {
		for _, w := range work {
			if o := intersect(l, w); o.length() > 0 {
				breaks = append(breaks, o)
			}
		}
	}

	for _, fb := range c.cfg.FixedBreaks {
		breaks = append(breaks, interval{start: fb.Start, end: fb.End})
	}
	// The fallback lunch deduction applies only when the user recorded no
	// lunch pair at all that day.
	if len(lunch) == 0 {
		breaks = append(breaks, interval{start: c.cfg.LunchBreak.Start, end: c.cfg.LunchBreak.End})
	}

	totals := make(map[string]int, len(c.cfg.Shifts))
	for _, w := range work {
		for _, shift := range c.cfg.Shifts {
			window := interval{start: shift.Start, end: shift.End}
			if window.end < window.start {
				window.end += 24 * 60
			}

			clipped := intersect(w, window)
			minutes := clipped.length()
			if minutes == 0 {
				continue
			}
			for _, br := range breaks {
				minutes -= intersect(clipped, br).length()
			}
			if minutes > 0 {
				totals[shift.Name] += minutes
			}
		}
	}

	hours := make(map[string]float64, len(c.cfg.Shifts))
	for _, shift := range c.cfg.Shifts {
		hours[shift.Name] = math.Round(float64(totals[shift.Name])/60*10) / 10
	}

	return timeclock.DailyReport{
		Date:      b.date,
		CheckIns:  toDetails(b.checkIns),
		LunchOuts: toDetails(b.lunchOuts),
		LunchIns:  toDetails(b.lunchIns),
		CheckOuts: toDetails(b.checkOuts),
		Hours:     hours,
	}
}

func toDetails(events []timeclock.Event) []timeclock.EventDetail {
	details := make([]timeclock.EventDetail, 0, len(events))
	for _, ev := range events {
		details = append(details, timeclock.EventDetail{
			ID:        ev.ID,
			Time:      clock.HHMM(ev.RecordedAt),
			Latitude:  ev.Latitude,
			Longitude: ev.Longitude,
		})
	}
	return details
}
