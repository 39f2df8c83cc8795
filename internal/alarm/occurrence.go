package alarm

import "time"

// NextOccurrence computes the next instant at or after now that the alarm
// must fire. The second return value is false when no future occurrence
// exists (a one-shot alarm whose instant has passed).
//
// For a repeating alarm the candidate days are swept in increasing offset
// from now's date. Offset 7 only matters when the sole flagged day is
// today and its time-of-day has already passed, in which case the alarm
// fires on the same weekday next week.
//
// The result is deterministic for a fixed (At, Repeat, now); the sweep
// builds each candidate with time.Date in now's location, so a DST
// transition inside the window shifts the absolute instant but keeps the
// wall-clock time-of-day, which is what an alarm clock must do.
func NextOccurrence(a *Alarm, now time.Time) (time.Time, bool) {
	at := a.At
	if !a.Repeat.IsRepeating() {
		if at.After(now) {
			return at, true
		}
		return time.Time{}, false
	}

	for offset := 0; offset <= 7; offset++ {
		day := now.AddDate(0, 0, offset)
		if !a.Repeat.HasDay(day.Weekday()) {
			continue
		}
		candidate := time.Date(day.Year(), day.Month(), day.Day(),
			at.Hour(), at.Minute(), at.Second(), 0, now.Location())
		if !candidate.Before(now) {
			return candidate, true
		}
	}

	// Unreachable: a repeating alarm always has an occurrence within 7 days.
	return time.Time{}, false
}
