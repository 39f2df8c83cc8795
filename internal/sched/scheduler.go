// Package sched keeps the exact-alarm primitive's registrations
// consistent with the persisted alarm collection. It is the single
// authority for scheduling: boot, clock changes, and alarm CRUD all
// funnel through it.
package sched

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
	"github.com/chimelabs/chime/internal/payload"
)

// Store is the persistence collaborator the scheduler reads from.
type Store interface {
	All(ctx context.Context) ([]*alarm.Alarm, error)
	Get(ctx context.Context, id string) (*alarm.Alarm, error)
}

// Scheduler reconciles alarms against the exact-alarm primitive.
//
// All operations hold one mutex, so cancel-then-register sequences for a
// key can never interleave: a registration for an alarm always reflects
// the newest computed occurrence. Overlapping refresh calls serialize
// rather than abort; the later call reconciles whatever the earlier one
// left behind.
type Scheduler struct {
	mu    sync.Mutex
	store Store
	exact exact.Service
	clk   clock.Clock
	codec *payload.Codec
	log   logger.Logger
}

// New creates a scheduler over the given store and exact-alarm service.
// The codec decides the wire format of registration payloads; a nil
// codec defaults to JSON.
func New(store Store, svc exact.Service, clk clock.Clock, codec *payload.Codec) *Scheduler {
	if codec == nil {
		codec = payload.NewJSONCodec()
	}
	return &Scheduler{
		store: store,
		exact: svc,
		clk:   clk,
		codec: codec,
		log:   logger.Default().WithComponent(logger.ComponentScheduler),
	}
}

// RefreshAll reconciles every persisted alarm. A store read failure
// aborts the pass before anything is canceled: stale-but-present
// registrations beat none. Capability errors from individual alarms are
// collected and returned together; the pass still visits every alarm.
func (s *Scheduler) RefreshAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarms, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("refresh aborted, failed to read alarms: %w", err)
	}

	var errs []error
	for _, a := range alarms {
		if err := s.reconcileLocked(ctx, a); err != nil {
			errs = append(errs, fmt.Errorf("alarm %s: %w", a.ID, err))
		}
	}

	metrics.Default().RecordRefreshCycle()
	s.log.Info("Refreshed alarm registrations", "alarms", len(alarms), "errors", len(errs))

	return errors.Join(errs...)
}

// ScheduleOne reconciles a single alarm after a CRUD operation. A
// pending snooze registration for the alarm is left untouched.
func (s *Scheduler) ScheduleOne(ctx context.Context, a *alarm.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconcileLocked(ctx, a)
}

// CancelOne removes every registration for the alarm, regular and
// snooze. Used when an alarm is deleted.
func (s *Scheduler) CancelOne(ctx context.Context, alarmID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.exact.Cancel(ctx, exact.Key{AlarmID: alarmID, Kind: exact.KindRegular}); err != nil {
		return fmt.Errorf("failed to cancel regular registration: %w", err)
	}
	if err := s.exact.Cancel(ctx, exact.Key{AlarmID: alarmID, Kind: exact.KindSnooze}); err != nil {
		return fmt.Errorf("failed to cancel snooze registration: %w", err)
	}

	s.log.Info("Canceled registrations", "alarm_id", alarmID)
	return nil
}

// ScheduleSnooze arms a one-shot snooze registration for the alarm. The
// alarm's persisted record and its regular registration are untouched;
// both occurrences may be live at once. A previous pending snooze for
// the same alarm is replaced.
func (s *Scheduler) ScheduleSnooze(ctx context.Context, alarmID string, fireAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := exact.Key{AlarmID: alarmID, Kind: exact.KindSnooze}
	if err := s.exact.Cancel(ctx, key); err != nil {
		return fmt.Errorf("failed to cancel previous snooze: %w", err)
	}

	data, err := s.codec.EncodeFired(alarmID, string(exact.KindSnooze), s.clk.Now())
	if err != nil {
		return fmt.Errorf("failed to encode snooze payload: %w", err)
	}

	if err := s.exact.Register(ctx, key, fireAt, data); err != nil {
		return fmt.Errorf("failed to register snooze: %w", err)
	}

	s.log.Info("Scheduled snooze", "alarm_id", alarmID, "fire_at", fireAt.Format(time.RFC3339))
	return nil
}

// reconcileLocked cancels the alarm's regular registration and, when the
// alarm is enabled and has a future occurrence, registers the new one.
// The cancel always precedes the register so a stale instant can never
// outlive a newer computation. Disabled alarms are skipped without
// computing an occurrence.
func (s *Scheduler) reconcileLocked(ctx context.Context, a *alarm.Alarm) error {
	key := exact.Key{AlarmID: a.ID, Kind: exact.KindRegular}

	if err := s.exact.Cancel(ctx, key); err != nil {
		return fmt.Errorf("failed to cancel registration: %w", err)
	}

	if !a.Enabled {
		metrics.Default().RecordSkipped()
		s.log.Debug("Skipped disabled alarm", "alarm_id", a.ID)
		return nil
	}

	next, ok := alarm.NextOccurrence(a, s.clk.Now())
	if !ok {
		// Past one-shot: inert until the user edits it
		metrics.Default().RecordSkipped()
		s.log.Debug("No future occurrence", "alarm_id", a.ID)
		return nil
	}

	data, err := s.codec.EncodeFired(a.ID, string(exact.KindRegular), s.clk.Now())
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	if err := s.exact.Register(ctx, key, next, data); err != nil {
		return fmt.Errorf("failed to register occurrence: %w", err)
	}

	s.log.Info("Scheduled alarm",
		"alarm_id", a.ID,
		"next", next.Format(time.RFC3339),
		"repeat", a.Repeat.String())
	return nil
}
