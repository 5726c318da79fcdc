package timeclock

import (
	"github.com/kintai-dev/kintai-backend-go/internal/domain/timeclock"
)

// Gate holds the four flags saying which attendance action may be recorded
// right now. It is recomputed from the day's persisted events on every
// check; there is no stored "current status" field to drift out of sync.
type Gate struct {
	CheckIn  bool
	CheckOut bool
	LunchOut bool
	LunchIn  bool
}

// Allows reports whether the gate permits recording kind.
func (g Gate) Allows(kind timeclock.Kind) bool {
	switch kind {
	case timeclock.KindCheckIn:
		return g.CheckIn
	case timeclock.KindCheckOut:
		return g.CheckOut
	case timeclock.KindLunchOut:
		return g.LunchOut
	case timeclock.KindLunchIn:
		return g.LunchIn
	}
	return false
}

// DeriveGate folds over one local day's events, ordered by recorded
// instant, and computes the gate flags. localHour is the current local hour
// and only affects lunch_out, which is restricted to the configured lunch
// window.
//
// The enforced cycle per day is check_in, optionally lunch_out then
// lunch_in, check_out - repeatable, at most one lunch pair per day.
func DeriveGate(events []timeclock.Event, localHour int, cfg timeclock.ShiftConfig) Gate {
	var lastKind timeclock.Kind // zero value means no events yet today
	var hasLunchOut, hasLunchIn bool

	for _, ev := range events {
		lastKind = ev.Kind
		switch ev.Kind {
		case timeclock.KindLunchOut:
			hasLunchOut = true
		case timeclock.KindLunchIn:
			hasLunchIn = true
		}
	}

	return Gate{
		CheckIn:  lastKind == "" || lastKind == timeclock.KindCheckOut,
		CheckOut: lastKind == timeclock.KindCheckIn || lastKind == timeclock.KindLunchIn,
		LunchOut: lastKind == timeclock.KindCheckIn && !hasLunchOut &&
			localHour >= cfg.LunchEarliestHour && localHour <= cfg.LunchLatestHour,
		LunchIn: lastKind == timeclock.KindLunchOut && !hasLunchIn,
	}
}
