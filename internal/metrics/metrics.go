// Package metrics tracks in-memory counters for the scheduling engine.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector is the global metrics collector instance
var (
	globalCollector *Collector
	once            sync.Once
)

// Collector tracks engine-wide counters in memory
type Collector struct {
	// Counters (atomic for thread-safety)
	totalFired     atomic.Int64
	totalSnoozed   atomic.Int64
	totalDismissed atomic.Int64
	totalSkipped   atomic.Int64
	refreshCycles  atomic.Int64

	mu          sync.RWMutex
	firedByKind map[string]int64
	startTime   time.Time
}

// Metrics represents a snapshot of current engine metrics
type Metrics struct {
	TotalFired     int64            `json:"total_fired"`
	TotalSnoozed   int64            `json:"total_snoozed"`
	TotalDismissed int64            `json:"total_dismissed"`
	TotalSkipped   int64            `json:"total_skipped"`
	RefreshCycles  int64            `json:"refresh_cycles"`
	FiredByKind    map[string]int64 `json:"fired_by_kind"`
	Uptime         time.Duration    `json:"uptime"`
}

// Default returns the global metrics collector instance
func Default() *Collector {
	once.Do(func() {
		globalCollector = NewCollector()
	})
	return globalCollector
}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	return &Collector{
		firedByKind: make(map[string]int64),
		startTime:   time.Now(),
	}
}

// RecordFired counts a fired occurrence by kind ("regular" or "snooze")
func (c *Collector) RecordFired(kind string) {
	c.totalFired.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.firedByKind[kind]++
}

// RecordSnoozed counts a snooze action
func (c *Collector) RecordSnoozed() {
	c.totalSnoozed.Add(1)
}

// RecordDismissed counts a dismiss action
func (c *Collector) RecordDismissed() {
	c.totalDismissed.Add(1)
}

// RecordSkipped counts an alarm passed over during a refresh
// (disabled, or a one-shot with no future occurrence)
func (c *Collector) RecordSkipped() {
	c.totalSkipped.Add(1)
}

// RecordRefreshCycle counts a completed RefreshAll pass
func (c *Collector) RecordRefreshCycle() {
	c.refreshCycles.Add(1)
}

// GetMetrics returns a snapshot of current metrics
func (c *Collector) GetMetrics() Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	firedByKind := make(map[string]int64, len(c.firedByKind))
	for k, v := range c.firedByKind {
		firedByKind[k] = v
	}

	return Metrics{
		TotalFired:     c.totalFired.Load(),
		TotalSnoozed:   c.totalSnoozed.Load(),
		TotalDismissed: c.totalDismissed.Load(),
		TotalSkipped:   c.totalSkipped.Load(),
		RefreshCycles:  c.refreshCycles.Load(),
		FiredByKind:    firedByKind,
		Uptime:         time.Since(c.startTime),
	}
}

// Reset clears all metrics (useful for testing)
func (c *Collector) Reset() {
	c.totalFired.Store(0)
	c.totalSnoozed.Store(0)
	c.totalDismissed.Store(0)
	c.totalSkipped.Store(0)
	c.refreshCycles.Store(0)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.firedByKind = make(map[string]int64)
	c.startTime = time.Now()
}

// GetMetrics returns metrics from the global collector
func GetMetrics() Metrics {
	return Default().GetMetrics()
}

// ResetMetrics resets the global collector
func ResetMetrics() {
	Default().Reset()
}
