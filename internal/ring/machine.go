// Package ring governs what happens after an alarm fires: the ringing
// session, the user's snooze or dismiss, the transient confirmation
// display, and the scheduling side effects each transition emits.
package ring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmhodges/clock"

	"github.com/chimelabs/chime/internal/alarm"
	"github.com/chimelabs/chime/internal/exact"
	"github.com/chimelabs/chime/internal/logger"
	"github.com/chimelabs/chime/internal/metrics"
)

// State is the execution state of a ringing session.
type State string

const (
	StateIdle             State = "idle"
	StateRinging          State = "ringing"
	StateSnoozeConfirmed  State = "snooze_confirmed"
	StateDismissConfirmed State = "dismiss_confirmed"
)

var (
	// ErrUnknownSession is returned for an occurrence id with no session
	ErrUnknownSession = errors.New("unknown ringing session")
	// ErrNotRinging is returned when a user action arrives outside Ringing
	ErrNotRinging = errors.New("session is not ringing")
)

// Player presents an alarm sound. A handle is acquired when a session
// enters Ringing and released when ringing stops; sessions never share
// a handle.
type Player interface {
	Start(ringtoneURI string) error
	Stop()
}

// PlayerFactory produces a fresh player handle per ringing session.
type PlayerFactory func() Player

// Rearmer is the scheduling surface the state machine drives on its
// terminal transitions. Implemented by the alarm scheduler.
type Rearmer interface {
	ScheduleOne(ctx context.Context, a *alarm.Alarm) error
	ScheduleSnooze(ctx context.Context, alarmID string, fireAt time.Time) error
}

// session is one ringing episode, keyed by occurrence identity so a
// snooze fire and a regular fire for the same alarm ring independently.
type session struct {
	occurrenceID string
	alarm        *alarm.Alarm
	kind         exact.Kind
	state        State
	player       Player
	confirmedAt  time.Time
}

// Machine owns all live ringing sessions.
type Machine struct {
	mu       sync.Mutex
	sessions map[string]*session

	sched      Rearmer
	newPlayer  PlayerFactory
	clk        clock.Clock
	snoozeFor  time.Duration
	confirmFor time.Duration
	log        logger.Logger
}

// NewMachine creates the execution state machine.
func NewMachine(sched Rearmer, newPlayer PlayerFactory, clk clock.Clock, snoozeFor, confirmFor time.Duration) *Machine {
	return &Machine{
		sessions:   make(map[string]*session),
		sched:      sched,
		newPlayer:  newPlayer,
		clk:        clk,
		snoozeFor:  snoozeFor,
		confirmFor: confirmFor,
		log:        logger.Default().WithComponent(logger.ComponentRing),
	}
}

// Ring opens a session for a fired occurrence and starts presentation.
// A second firing with the same occurrence id is rejected; a firing for
// the same alarm under a different occurrence id opens its own session.
func (m *Machine) Ring(ctx context.Context, occurrenceID string, a *alarm.Alarm, kind exact.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reapLocked()

	if _, exists := m.sessions[occurrenceID]; exists {
		return fmt.Errorf("session %s already exists", occurrenceID)
	}

	s := &session{
		occurrenceID: occurrenceID,
		alarm:        a,
		kind:         kind,
		state:        StateRinging,
		player:       m.newPlayer(),
	}

	if !a.IsSilent() {
		if err := s.player.Start(a.RingtoneURI); err != nil {
			// Ring anyway: a broken ringtone must not mute the alert
			m.log.Error("Failed to start ringtone",
				"alarm_id", a.ID, "ringtone", a.RingtoneURI, "error", err)
		}
	}

	m.sessions[occurrenceID] = s
	metrics.Default().RecordFired(string(kind))
	m.log.Info("Alarm ringing",
		"alarm_id", a.ID,
		"session_id", occurrenceID,
		"kind", string(kind))
	return nil
}

// Snooze handles the snooze action on a ringing session: presentation
// stops, a snooze occurrence is armed at now plus the snooze duration,
// and the session shows its confirmation. The alarm record is untouched.
func (m *Machine) Snooze(ctx context.Context, occurrenceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.ringingLocked(occurrenceID)
	if err != nil {
		return err
	}

	// Arm the snooze before releasing the player: a failed registration
	// (capability denial) leaves the session ringing and retryable.
	fireAt := m.clk.Now().Add(m.snoozeFor)
	if err := m.sched.ScheduleSnooze(ctx, s.alarm.ID, fireAt); err != nil {
		return fmt.Errorf("failed to arm snooze: %w", err)
	}

	s.stopPlayback()
	s.state = StateSnoozeConfirmed
	s.confirmedAt = m.clk.Now()
	metrics.Default().RecordSnoozed()
	m.log.Info("Alarm snoozed",
		"alarm_id", s.alarm.ID,
		"session_id", occurrenceID,
		"fire_at", fireAt.Format(time.RFC3339))
	return nil
}

// Dismiss handles the dismiss action on a ringing session: presentation
// stops, a repeating alarm is re-armed for its next weekly occurrence,
// and a one-shot is left unregistered.
func (m *Machine) Dismiss(ctx context.Context, occurrenceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.ringingLocked(occurrenceID)
	if err != nil {
		return err
	}

	// Re-arm before releasing the player, same as Snooze: if the
	// registration fails the session keeps ringing and the user can retry.
	if s.alarm.Repeat.IsRepeating() {
		if err := m.sched.ScheduleOne(ctx, s.alarm); err != nil {
			return fmt.Errorf("failed to re-arm repeating alarm: %w", err)
		}
	}

	s.stopPlayback()
	s.state = StateDismissConfirmed
	s.confirmedAt = m.clk.Now()
	metrics.Default().RecordDismissed()
	m.log.Info("Alarm dismissed",
		"alarm_id", s.alarm.ID,
		"session_id", occurrenceID,
		"repeating", s.alarm.Repeat.IsRepeating())
	return nil
}

// Acknowledge closes a confirmation display explicitly, returning the
// session to Idle ahead of the display timeout. No scheduling side
// effect accompanies this transition.
func (m *Machine) Acknowledge(occurrenceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[occurrenceID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, occurrenceID)
	}
	if s.state != StateSnoozeConfirmed && s.state != StateDismissConfirmed {
		return fmt.Errorf("session %s is %s, not confirmed", occurrenceID, s.state)
	}

	delete(m.sessions, occurrenceID)
	return nil
}

// StateOf reports the session's current state. Sessions whose
// confirmation display has run out are reaped and report Idle.
func (m *Machine) StateOf(occurrenceID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reapLocked()

	s, ok := m.sessions[occurrenceID]
	if !ok {
		return StateIdle
	}
	return s.state
}

// ActiveSessions returns the number of live sessions.
func (m *Machine) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reapLocked()
	return len(m.sessions)
}

// stopPlayback releases the session's player handle. Safe to call more
// than once.
func (s *session) stopPlayback() {
	if s.player == nil {
		return
	}
	s.player.Stop()
	s.player = nil
}

func (m *Machine) ringingLocked(occurrenceID string) (*session, error) {
	s, ok := m.sessions[occurrenceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, occurrenceID)
	}
	if s.state != StateRinging {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotRinging, occurrenceID, s.state)
	}
	return s, nil
}

// reapLocked drops confirmation sessions whose display duration elapsed.
func (m *Machine) reapLocked() {
	now := m.clk.Now()
	for id, s := range m.sessions {
		if s.state != StateSnoozeConfirmed && s.state != StateDismissConfirmed {
			continue
		}
		if now.Sub(s.confirmedAt) >= m.confirmFor {
			delete(m.sessions, id)
		}
	}
}
