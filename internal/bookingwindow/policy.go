package bookingwindow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// UnlockType selects how the furthest bookable date advances.
type UnlockType int

const (
	RollingDays UnlockType = iota
	RollingMonths
	CalendarMonths
)

func (u UnlockType) String() string {
	switch u {
	case RollingDays:
		return "rolling-days"
	case RollingMonths:
		return "rolling-months"
	case CalendarMonths:
		return "calendar-months"
	}
	return fmt.Sprintf("UnlockType(%d)", int(u))
}

// Unit is only read when the unlock type is RollingDays.
type Unit int

const (
	Days Unit = iota
	Months
)

func (u Unit) String() string {
	switch u {
	case Days:
		return "days"
	case Months:
		return "months"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

type ClosestMode int

const (
	SameDay ClosestMode = iota
	Advance
)

func (m ClosestMode) String() string {
	switch m {
	case SameDay:
		return "same-day"
	case Advance:
		return "advance"
	}
	return fmt.Sprintf("ClosestMode(%d)", int(m))
}

type FurthestPolicy struct {
	UnlockType UnlockType `json:"unlock_type"`
	Number     int        `json:"number"`
	Unit       Unit       `json:"unit"`
}

type ClosestPolicy struct {
	Mode                 ClosestMode `json:"mode"`
	TimeIncrementMinutes int         `json:"time_increment_minutes"`
	AdvanceDays          int         `json:"advance_days"`
}

// Config holds both policies. Fields belonging to the inactive mode are kept
// so that switching back restores what was entered before.
type Config struct {
	Furthest FurthestPolicy `json:"furthest"`
	Closest  ClosestPolicy  `json:"closest"`
}

func DefaultConfig() Config {
	return Config{
		Furthest: FurthestPolicy{UnlockType: RollingDays, Number: 2, Unit: Months},
		Closest:  ClosestPolicy{Mode: SameDay, TimeIncrementMinutes: 15, AdvanceDays: 1},
	}
}

// MaxMagnitude bounds every number of days, months or minutes so that the
// computed window stays inside the range time.Time can encode as RFC 3339.
const MaxMagnitude = 9999

// Normalize returns a copy with every magnitude clamped to [1, MaxMagnitude].
// Selecting calendar months forces the unit to months.
func (c Config) Normalize() Config {
	c.Furthest.Number = clamp(c.Furthest.Number)
	c.Closest.TimeIncrementMinutes = clamp(c.Closest.TimeIncrementMinutes)
	c.Closest.AdvanceDays = clamp(c.Closest.AdvanceDays)
	if c.Furthest.UnlockType == CalendarMonths {
		c.Furthest.Unit = Months
	}
	return c
}

func clamp(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxMagnitude:
		return MaxMagnitude
	}
	return n
}

var ErrUnknownValue = errors.New("unknown value")

func ParseUnlockType(s string) (UnlockType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "rolling", "rolling-days":
		return RollingDays, nil
	case "rolling-months":
		return RollingMonths, nil
	case "monthly", "calendar", "calendar-months":
		return CalendarMonths, nil
	}
	return 0, fmt.Errorf("unlock type %q: %w", s, ErrUnknownValue)
}

func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "days", "day":
		return Days, nil
	case "months", "month":
		return Months, nil
	}
	return 0, fmt.Errorf("unit %q: %w", s, ErrUnknownValue)
}

func ParseClosestMode(s string) (ClosestMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "same-day", "sameday":
		return SameDay, nil
	case "advance":
		return Advance, nil
	}
	return 0, fmt.Errorf("closest mode %q: %w", s, ErrUnknownValue)
}

// ParseMagnitude reads a number the way a live form input does: the leading
// integer is used and anything unreadable (or zero) becomes 1. Values above
// MaxMagnitude are capped. Negative values pass through; the calculator
// clamps them.
func ParseMagnitude(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) && s[0] != '-' {
		return MaxMagnitude
	}
	if err != nil || n == 0 {
		return 1
	}
	return min(n, MaxMagnitude)
}

func (u UnlockType) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *UnlockType) UnmarshalText(b []byte) error {
	v, err := ParseUnlockType(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (u Unit) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *Unit) UnmarshalText(b []byte) error {
	v, err := ParseUnit(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (m ClosestMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *ClosestMode) UnmarshalText(b []byte) error {
	v, err := ParseClosestMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
