// Package engine is the daemon's dispatch loop. It consumes firings
// from the exact-alarm service, re-reads the alarm record at fire time,
// and hands live occurrences to the execution state machine. It also
// reacts to system clock changes by re-registering everything.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/chimelabs/chime/internal/alarm"
	"github.com/chimelabs/chime/internal/exact"
	"github.com/chimelabs/chime/internal/logger"
	"github.com/chimelabs/chime/internal/metrics"
	"github.com/chimelabs/chime/internal/payload"
	"github.com/chimelabs/chime/internal/store"
)

// AlarmReader is the subset of the store the dispatcher needs.
type AlarmReader interface {
	Get(ctx context.Context, id string) (*alarm.Alarm, error)
}

// Refresher re-registers every enabled alarm, used on clock changes.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// Ringer opens a ringing session for a fired occurrence.
type Ringer interface {
	Ring(ctx context.Context, occurrenceID string, a *alarm.Alarm, kind exact.Kind) error
}

// Engine wires firings to ringing sessions.
type Engine struct {
	firings      <-chan exact.Firing
	clockChanged <-chan struct{}
	store        AlarmReader
	sched        Refresher
	machine      Ringer
	codec        *payload.Codec
	log          logger.Logger
}

// New creates the dispatcher. firings is the exact service's delivery
// channel; clockChanged receives a token whenever the wall clock may
// have jumped.
func New(firings <-chan exact.Firing, clockChanged <-chan struct{}, st AlarmReader, sched Refresher, machine Ringer) *Engine {
	return &Engine{
		firings:      firings,
		clockChanged: clockChanged,
		store:        st,
		sched:        sched,
		machine:      machine,
		codec:        payload.NewJSONCodec(),
		log:          logger.Default().WithComponent(logger.ComponentEngine),
	}
}

// Run dispatches until ctx is canceled.
func (e *Engine) Run(ctx context.Context) {
	e.log.Info("Engine dispatch loop started")
	for {
		select {
		case <-ctx.Done():
			e.log.Info("Engine dispatch loop stopped")
			return
		case f := <-e.firings:
			e.handleFiring(ctx, f)
		case <-e.clockChanged:
			e.handleClockChange(ctx)
		}
	}
}

// handleFiring re-reads the record before ringing: the registration may
// be stale if the alarm was deleted or disabled after it was armed.
func (e *Engine) handleFiring(ctx context.Context, f exact.Firing) {
	a, err := e.store.Get(ctx, f.Key.AlarmID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			e.log.Warn("Dropping firing for deleted alarm",
				"alarm_id", f.Key.AlarmID, "kind", string(f.Key.Kind))
			metrics.Default().RecordSkipped()
			return
		}
		e.log.Error("Failed to load alarm for firing",
			"alarm_id", f.Key.AlarmID, "error", err)
		return
	}

	if !a.Enabled && f.Key.Kind == exact.KindRegular {
		e.log.Warn("Dropping firing for disabled alarm", "alarm_id", a.ID)
		metrics.Default().RecordSkipped()
		return
	}

	if fired, err := e.codec.DecodeFired(f.Payload); err != nil {
		e.log.Warn("Undecodable firing payload, ringing anyway",
			"alarm_id", a.ID, "error", err)
	} else {
		e.log.Debug("Firing payload decoded",
			"alarm_id", fired.AlarmID,
			"kind", fired.Kind,
			"registered_at", fired.RegisteredAt.Format(time.RFC3339))
	}

	if err := e.machine.Ring(ctx, f.OccurrenceID, a, f.Key.Kind); err != nil {
		e.log.Error("Failed to open ringing session",
			"alarm_id", a.ID, "session_id", f.OccurrenceID, "error", err)
	}
}

// handleClockChange re-registers every enabled alarm against the new
// wall clock. Occurrence times are recomputed from scratch; nothing is
// adjusted in place.
func (e *Engine) handleClockChange(ctx context.Context) {
	e.log.Info("System clock changed, re-registering all alarms")
	if err := e.sched.RefreshAll(ctx); err != nil {
		e.log.Error("Refresh after clock change failed", "error", err)
	}
}
