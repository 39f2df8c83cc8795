package alarm

import (
	"testing"
	"time"
)

func TestRepeatOn(t *testing.T) {
	r := RepeatOn(time.Monday, time.Friday)

	if !r.HasDay(time.Monday) {
		t.Error("Expected Monday to be set")
	}
	if !r.HasDay(time.Friday) {
		t.Error("Expected Friday to be set")
	}
	if r.HasDay(time.Sunday) {
		t.Error("Expected Sunday to be clear")
	}
}

func TestWithDayAdded_AllMasks(t *testing.T) {
	// Exhaustive over the 7-bit domain: adding always sets, and is idempotent.
	for mask := 0; mask < 128; mask++ {
		for d := time.Sunday; d <= time.Saturday; d++ {
			r := WeeklyRepeat(mask).WithDayAdded(d)
			if !r.HasDay(d) {
				t.Fatalf("mask %07b: expected day %v set after WithDayAdded", mask, d)
			}
			if r.WithDayAdded(d) != r {
				t.Fatalf("mask %07b: WithDayAdded(%v) not idempotent", mask, d)
			}
		}
	}
}

func TestWithDayRemoved_AllMasks(t *testing.T) {
	for mask := 0; mask < 128; mask++ {
		for d := time.Sunday; d <= time.Saturday; d++ {
			r := WeeklyRepeat(mask).WithDayRemoved(d)
			if r.HasDay(d) {
				t.Fatalf("mask %07b: expected day %v clear after WithDayRemoved", mask, d)
			}
			if r.WithDayRemoved(d) != r {
				t.Fatalf("mask %07b: WithDayRemoved(%v) not idempotent", mask, d)
			}
		}
	}
}

func TestWithDayAdded_DoesNotMutate(t *testing.T) {
	r := RepeatOn(time.Tuesday)
	_ = r.WithDayAdded(time.Thursday)

	if r.HasDay(time.Thursday) {
		t.Error("Expected original mask to be unchanged")
	}
}

func TestIsRepeating(t *testing.T) {
	if RepeatNone.IsRepeating() {
		t.Error("Expected zero mask to be non-repeating")
	}
	if !RepeatOn(time.Wednesday).IsRepeating() {
		t.Error("Expected nonzero mask to be repeating")
	}
}

func TestDays_Order(t *testing.T) {
	r := RepeatOn(time.Saturday, time.Sunday, time.Wednesday)
	days := r.Days()

	expected := []time.Weekday{time.Sunday, time.Wednesday, time.Saturday}
	if len(days) != len(expected) {
		t.Fatalf("Expected %d days, got %d", len(expected), len(days))
	}
	for i, d := range expected {
		if days[i] != d {
			t.Errorf("Day %d: expected %v, got %v", i, d, days[i])
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		r    WeeklyRepeat
		want string
	}{
		{"one-shot", RepeatNone, "once"},
		{"single day", RepeatOn(time.Monday), "Mon"},
		{"weekdays", RepeatOn(time.Monday, time.Wednesday, time.Friday), "Mon,Wed,Fri"},
		{"weekend", RepeatOn(time.Sunday, time.Saturday), "Sun,Sat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
