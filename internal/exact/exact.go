// Package exact defines the exact-alarm primitive: the facility that
// wakes the engine at a precise instant. The engine programs it through
// the Service interface; firings come back as Firing values carrying the
// registration key and payload.
package exact

import (
	"context"
	"errors"
	"time"
)

// Kind distinguishes the two occurrence registrations an alarm may hold.
type Kind string

const (
	// KindRegular is an alarm's normal next occurrence
	KindRegular Kind = "regular"
	// KindSnooze is a temporary re-fire registration after a snooze
	KindSnooze Kind = "snooze"
)

// Key uniquely identifies a registration as an (alarm, kind) pair.
// An enabled alarm holds at most one regular registration; a snooze
// registration may coexist with it.
type Key struct {
	AlarmID string
	Kind    Kind
}

func (k Key) String() string {
	return k.AlarmID + ":" + string(k.Kind)
}

// Firing is delivered when a registration comes due. OccurrenceID is
// minted per firing so overlapping regular and snooze fires for the same
// alarm stay distinguishable downstream.
type Firing struct {
	Key          Key
	At           time.Time
	Payload      []byte
	OccurrenceID string
}

// ErrDenied is the capability error: the platform refused an exact-alarm
// registration. Callers surface it to the user; the engine never
// downgrades to an inexact registration on its own.
var ErrDenied = errors.New("exact alarm registration denied")

// Service is the exact-alarm scheduling primitive.
type Service interface {
	// Register arms (or replaces) the registration for key at the given
	// instant. Returns ErrDenied when the capability is not granted.
	Register(ctx context.Context, key Key, at time.Time, payload []byte) error

	// Cancel disarms the registration for key. Canceling an unknown key
	// is a no-op.
	Cancel(ctx context.Context, key Key) error
}
