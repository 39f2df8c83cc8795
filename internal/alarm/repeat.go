package alarm

import (
	"strings"
	"time"
)

// WeeklyRepeat encodes the weekdays an alarm repeats on as a 7-bit mask.
// Bit i corresponds to time.Weekday(i), so bit 0 is Sunday and bit 6 is
// Saturday. The zero value means the alarm does not repeat.
type WeeklyRepeat uint8

// RepeatNone is a one-shot alarm: no weekday bits set.
const RepeatNone WeeklyRepeat = 0

// repeatMask covers the 7 significant bits.
const repeatMask WeeklyRepeat = 0x7F

// RepeatOn builds a repeat mask from the given weekdays.
func RepeatOn(days ...time.Weekday) WeeklyRepeat {
	var r WeeklyRepeat
	for _, d := range days {
		r = r.WithDayAdded(d)
	}
	return r
}

// HasDay reports whether the given weekday bit is set.
func (r WeeklyRepeat) HasDay(day time.Weekday) bool {
	return r&(1<<uint(day)) != 0
}

// WithDayAdded returns a copy of the mask with the given weekday set.
// Adding a day that is already set is a no-op.
func (r WeeklyRepeat) WithDayAdded(day time.Weekday) WeeklyRepeat {
	return (r | (1 << uint(day))) & repeatMask
}

// WithDayRemoved returns a copy of the mask with the given weekday cleared.
// Removing a day that is not set is a no-op.
func (r WeeklyRepeat) WithDayRemoved(day time.Weekday) WeeklyRepeat {
	return r &^ (1 << uint(day))
}

// IsRepeating reports whether at least one weekday bit is set.
func (r WeeklyRepeat) IsRepeating() bool {
	return r&repeatMask != 0
}

// Days returns the flagged weekdays in Sunday-first order.
func (r WeeklyRepeat) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if r.HasDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// String renders the mask for logging, e.g. "Mon,Wed,Fri" or "once".
func (r WeeklyRepeat) String() string {
	if !r.IsRepeating() {
		return "once"
	}
	var b strings.Builder
	for i, d := range r.Days() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(d.String()[:3])
	}
	return b.String()
}
