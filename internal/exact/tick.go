package exact

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmhodges/clock"

	"github.com/chimelabs/chime/internal/logger"
)

// TickService is an in-process implementation of the exact-alarm
// primitive. Registrations are held in memory and checked against the
// clock on every tick; due ones are delivered on the Fired channel and
// removed. State is deliberately not persisted: after a restart the
// scheduler rebuilds every registration from the alarm store.
type TickService struct {
	clk      clock.Clock
	interval time.Duration
	log      logger.Logger

	mu      sync.Mutex
	pending map[Key]*registration
	denied  bool

	fired chan Firing
}

type registration struct {
	at      time.Time
	payload []byte
}

// NewTickService creates a tick service checking registrations at the
// given interval.
func NewTickService(clk clock.Clock, interval time.Duration) *TickService {
	return &TickService{
		clk:      clk,
		interval: interval,
		log:      logger.Default().WithComponent(logger.ComponentExact),
		pending:  make(map[Key]*registration),
		fired:    make(chan Firing, 16),
	}
}

// Fired returns the channel firings are delivered on.
func (s *TickService) Fired() <-chan Firing {
	return s.fired
}

// SetDenied toggles the capability. While denied, Register fails with
// ErrDenied; existing registrations keep firing.
func (s *TickService) SetDenied(denied bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.denied = denied
}

// Register implements Service. An existing registration for the same key
// is replaced.
func (s *TickService) Register(ctx context.Context, key Key, at time.Time, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.denied {
		return ErrDenied
	}

	s.pending[key] = &registration{at: at, payload: payload}
	s.log.Debug("Registered exact alarm", "key", key.String(), "at", at.Format(time.RFC3339))
	return nil
}

// Cancel implements Service.
func (s *TickService) Cancel(ctx context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[key]; ok {
		delete(s.pending, key)
		s.log.Debug("Canceled exact alarm", "key", key.String())
	}
	return nil
}

// Count returns the number of live registrations.
func (s *TickService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// RegisteredAt returns the instant the key is armed for, if any.
func (s *TickService) RegisteredAt(key Key) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.pending[key]
	if !ok {
		return time.Time{}, false
	}
	return r.at, true
}

// Run drives the tick loop until the context is canceled.
func (s *TickService) Run(ctx context.Context) {
	s.log.Info("Exact alarm service started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Exact alarm service stopping")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick delivers every registration that has come due.
func (s *TickService) tick(ctx context.Context) {
	now := s.clk.Now()

	s.mu.Lock()
	var due []Firing
	for key, r := range s.pending {
		if r.at.After(now) {
			continue
		}
		due = append(due, Firing{
			Key:          key,
			At:           r.at,
			Payload:      r.payload,
			OccurrenceID: uuid.New().String(),
		})
		delete(s.pending, key)
	}
	s.mu.Unlock()

	for _, f := range due {
		select {
		case s.fired <- f:
			s.log.Info("Exact alarm fired",
				"key", f.Key.String(),
				"occurrence_id", f.OccurrenceID,
				"at", f.At.Format(time.RFC3339))
		case <-ctx.Done():
			return
		}
	}
}
