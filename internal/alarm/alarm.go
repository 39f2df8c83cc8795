// Package alarm holds the alarm-clock domain model: the persisted alarm
// record, its weekly repeat mask, validation of user input, and the
// calculation of the next instant an alarm must fire.
package alarm

import (
	"time"
)

// RingtoneSilent is the sentinel ringtone reference for an alarm that
// rings without sound (visual alert only).
const RingtoneSilent = "silent"

// Alarm is a persisted alarm record. The store assigns ID on first insert;
// it is stable thereafter.
type Alarm struct {
	// ID is the unique identifier, empty until first persistence
	ID string `json:"id"`
	// Name is the user-visible label, may be empty
	Name string `json:"name"`
	// Enabled controls whether the alarm is armed at all
	Enabled bool `json:"enabled"`
	// At is the alarm's base date-time with second resolution.
	// For a one-shot alarm it is the exact fire instant; for a repeating
	// alarm only its time-of-day matters (the date is the seed date).
	At time.Time `json:"at"`
	// Repeat encodes the weekly repeat pattern
	Repeat WeeklyRepeat `json:"repeat"`
	// RingtoneURI references the sound resource, or RingtoneSilent
	RingtoneURI string `json:"ringtone_uri"`
	// CreatedAt is when the alarm was first created
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the alarm was last edited
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an enabled alarm with the given fields. The base time is
// truncated to seconds; stored alarms never carry sub-second precision.
// now stamps CreatedAt/UpdatedAt; callers pass their clock's current
// time so records stay deterministic under a fake clock.
func New(name string, at time.Time, repeat WeeklyRepeat, ringtoneURI string, now time.Time) *Alarm {
	if ringtoneURI == "" {
		ringtoneURI = RingtoneSilent
	}
	return &Alarm{
		Name:        name,
		Enabled:     true,
		At:          at.Truncate(time.Second),
		Repeat:      repeat,
		RingtoneURI: ringtoneURI,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Touch updates the edit timestamp.
func (a *Alarm) Touch(now time.Time) {
	a.UpdatedAt = now
}

// IsSilent reports whether the alarm rings without sound.
func (a *Alarm) IsSilent() bool {
	return a.RingtoneURI == RingtoneSilent
}
