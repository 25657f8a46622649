// Package bookingwindow computes the earliest and latest instants a booking
// may currently be placed for, given a Config and the caller's "now".
//
// All functions are pure: they read no clock, hold no state and never mutate
// their inputs. Results stay in the location of the supplied now.
package bookingwindow

import (
	"fmt"
	"time"
)

// rollingMonthDays stands in for one month in the rolling window. It is a
// day-count approximation, not calendar arithmetic.
const rollingMonthDays = 30

const quarterHour = 15

type Window struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// Unlock describes the next month to open under the calendar-month policy:
// Month (its first day) becomes bookable at At.
type Unlock struct {
	Month time.Time `json:"month"`
	At    time.Time `json:"at"`
}

// Compute returns the booking window for cfg at now. It never fails;
// non-positive magnitudes are treated as 1.
func Compute(cfg Config, now time.Time) Window {
	return Window{
		Earliest: Earliest(cfg.Closest, now),
		Latest:   Latest(cfg.Furthest, now),
	}
}

// Earliest returns the first bookable instant, rounded up to the next quarter hour.
func Earliest(p ClosestPolicy, now time.Time) time.Time {
	var t time.Time
	switch p.Mode {
	case SameDay:
		t = now.Add(time.Duration(clamp(p.TimeIncrementMinutes)) * time.Minute)
	case Advance:
		t = now.AddDate(0, 0, clamp(p.AdvanceDays))
	default:
		panic(fmt.Sprintf("bookingwindow: unhandled closest mode %v", p.Mode))
	}
	return RoundUpToQuarterHour(t)
}

// Latest returns the last bookable instant (23:59:59.999 local on the last day).
func Latest(p FurthestPolicy, now time.Time) time.Time {
	n := clamp(p.Number)
	switch p.UnlockType {
	case RollingDays:
		switch p.Unit {
		case Days:
			return endOfDay(now.AddDate(0, 0, n))
		case Months:
			return endOfDay(now.AddDate(0, 0, n*rollingMonthDays))
		default:
			panic(fmt.Sprintf("bookingwindow: unhandled unit %v", p.Unit))
		}
	case RollingMonths:
		return endOfDay(now.AddDate(0, 0, n*rollingMonthDays))
	case CalendarMonths:
		return endOfDay(lastDayOfMonth(targetMonth(n, now)))
	default:
		panic(fmt.Sprintf("bookingwindow: unhandled unlock type %v", p.UnlockType))
	}
}

// NextUnlock reports the month that opens next under the calendar-month
// policy. ok is false for the rolling variants, which have no discrete unlock.
func NextUnlock(p FurthestPolicy, now time.Time) (u Unlock, ok bool) {
	if p.UnlockType != CalendarMonths {
		return Unlock{}, false
	}
	target := targetMonth(clamp(p.Number), now)
	return Unlock{
		Month: target.AddDate(0, 1, 0),
		At:    target,
	}, true
}

// RoundUpToQuarterHour moves t forward to the next minute that is a multiple
// of 15, dropping seconds. Instants already on such a minute are returned as is.
func RoundUpToQuarterHour(t time.Time) time.Time {
	rem := t.Minute() % quarterHour
	if rem == 0 {
		return t
	}
	sub := time.Duration(t.Second())*time.Second + time.Duration(t.Nanosecond())
	return t.Add(time.Duration(quarterHour-rem)*time.Minute - sub)
}

// targetMonth is midnight on the 1st of the month n months after now's month.
// Starting from the 1st keeps AddDate from spilling into the following month.
func targetMonth(n int, now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, n, 0)
}

func lastDayOfMonth(firstOfMonth time.Time) time.Time {
	return firstOfMonth.AddDate(0, 1, -1)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
