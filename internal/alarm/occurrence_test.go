package alarm

import (
	"testing"
	"time"
)

// 2024-12-25 is a Wednesday.
var wednesday = time.Date(2024, 12, 25, 9, 0, 0, 0, time.UTC)

func TestNextOccurrence_OneShotFuture(t *testing.T) {
	at := wednesday.Add(2 * time.Hour)
	a := New("Wake up", at, RepeatNone, RingtoneSilent, wednesday)

	next, ok := NextOccurrence(a, wednesday)
	if !ok {
		t.Fatal("Expected an occurrence for a future one-shot")
	}
	if !next.Equal(at) {
		t.Errorf("Expected %v, got %v", at, next)
	}
}

func TestNextOccurrence_OneShotPast(t *testing.T) {
	a := New("Wake up", wednesday.Add(-time.Hour), RepeatNone, RingtoneSilent, wednesday)

	if _, ok := NextOccurrence(a, wednesday); ok {
		t.Error("Expected no occurrence for a past one-shot")
	}
}

func TestNextOccurrence_RepeatingTimePassedToday(t *testing.T) {
	// Alarm at 08:30 flagged Tue/Wed/Thu, evaluated Wednesday 09:00:
	// today's 08:30 has passed, so the next flagged day is Thursday.
	at := time.Date(2024, 12, 25, 8, 30, 0, 0, time.UTC)
	a := New("Wake up", at, RepeatOn(time.Tuesday, time.Wednesday, time.Thursday), RingtoneSilent, wednesday)

	next, ok := NextOccurrence(a, wednesday)
	if !ok {
		t.Fatal("Expected an occurrence for a repeating alarm")
	}
	expected := time.Date(2024, 12, 26, 8, 30, 0, 0, time.UTC)
	if !next.Equal(expected) {
		t.Errorf("Expected Thursday %v, got %v", expected, next)
	}
}

func TestNextOccurrence_RepeatingTimeAheadToday(t *testing.T) {
	at := time.Date(2024, 12, 25, 9, 30, 0, 0, time.UTC)
	a := New("Wake up", at, RepeatOn(time.Wednesday), RingtoneSilent, wednesday)

	next, ok := NextOccurrence(a, wednesday)
	if !ok {
		t.Fatal("Expected an occurrence")
	}
	if !next.Equal(at) {
		t.Errorf("Expected same-day %v, got %v", at, next)
	}
}

func TestNextOccurrence_OnlyTodayFlaggedTimePassed(t *testing.T) {
	// Only Wednesday flagged, 08:30 already passed: the alarm wraps to the
	// same weekday next week.
	at := time.Date(2024, 12, 25, 8, 30, 0, 0, time.UTC)
	a := New("Wake up", at, RepeatOn(time.Wednesday), RingtoneSilent, wednesday)

	next, ok := NextOccurrence(a, wednesday)
	if !ok {
		t.Fatal("Expected an occurrence")
	}
	expected := time.Date(2025, 1, 1, 8, 30, 0, 0, time.UTC)
	if !next.Equal(expected) {
		t.Errorf("Expected next Wednesday %v, got %v", expected, next)
	}
}

func TestNextOccurrence_SeedDateIgnoredWhenRepeating(t *testing.T) {
	// A repeating alarm seeded months in the past still fires at its
	// time-of-day on the next flagged day.
	at := time.Date(2024, 3, 4, 7, 0, 0, 0, time.UTC)
	a := New("Gym", at, RepeatOn(time.Friday), RingtoneSilent, wednesday)

	next, ok := NextOccurrence(a, wednesday)
	if !ok {
		t.Fatal("Expected an occurrence")
	}
	expected := time.Date(2024, 12, 27, 7, 0, 0, 0, time.UTC)
	if !next.Equal(expected) {
		t.Errorf("Expected Friday %v, got %v", expected, next)
	}
}

func TestNextOccurrence_ClearedMaskPastBecomesInert(t *testing.T) {
	// Editing a repeating alarm to clear every day while its base instant
	// is already in the past leaves an inert one-shot.
	a := New("Wake up", wednesday.Add(-48*time.Hour), RepeatOn(time.Monday), RingtoneSilent, wednesday)
	a.Repeat = a.Repeat.WithDayRemoved(time.Monday)

	if _, ok := NextOccurrence(a, wednesday); ok {
		t.Error("Expected no occurrence once the mask is cleared and At is past")
	}
}

func TestNextOccurrence_Deterministic(t *testing.T) {
	at := time.Date(2024, 12, 25, 8, 30, 0, 0, time.UTC)
	a := New("Wake up", at, RepeatOn(time.Tuesday, time.Thursday), RingtoneSilent, wednesday)

	first, ok1 := NextOccurrence(a, wednesday)
	second, ok2 := NextOccurrence(a, wednesday)
	if ok1 != ok2 || !first.Equal(second) {
		t.Errorf("Expected identical results, got %v/%v and %v/%v", first, ok1, second, ok2)
	}
}

func TestNextOccurrence_AllSevenOffsets(t *testing.T) {
	// Each single-day mask resolves within the coming week.
	at := time.Date(2024, 12, 25, 23, 0, 0, 0, time.UTC)
	for d := time.Sunday; d <= time.Saturday; d++ {
		a := New("Wake up", at, RepeatOn(d), RingtoneSilent, wednesday)

		next, ok := NextOccurrence(a, wednesday)
		if !ok {
			t.Fatalf("Day %v: expected an occurrence", d)
		}
		if next.Weekday() != d {
			t.Errorf("Day %v: occurrence fell on %v", d, next.Weekday())
		}
		if next.Before(wednesday) || next.After(wednesday.AddDate(0, 0, 7)) {
			t.Errorf("Day %v: occurrence %v outside the coming week", d, next)
		}
	}
}
