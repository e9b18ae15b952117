// internal/monitoring/collector.go - Validation attempt/success bookkeeping
package monitoring

import (
	"log/slog"
	"sync"
	"time"

	"windexer-jito/internal/types"
)

// Snapshot is a consistent view of the collector's counters.
type Snapshot struct {
	Attempts     uint64
	Successes    uint64
	TrackedSlots int
}

type Collector struct {
	// attemptTimes maps slot to the time of its most recent attempt
	attemptTimes map[uint64]time.Time
	attempts     uint64
	successes    uint64

	mutex  sync.RWMutex
	logger *slog.Logger
	now    func() time.Time
}

func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{
		attemptTimes: make(map[uint64]time.Time),
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock replaces the time source used for attempt timestamps.
func (c *Collector) WithClock(now func() time.Time) *Collector {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = now
	return c
}

// RecordAttempt counts an attempt and stamps its slot, replacing any earlier
// stamp for the same slot.
func (c *Collector) RecordAttempt(data types.IndexData) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.attempts++
	c.attemptTimes[data.Slot] = c.now()
}

// RecordSuccess counts a successful validation. The slot is only logged:
// attempt stamps are last-attempt-wins, so they cannot be joined to a
// particular success when the same slot is validated concurrently.
func (c *Collector) RecordSuccess(slot uint64, result types.ValidationResult) {
	c.mutex.Lock()
	c.successes++
	successes := c.successes
	c.mutex.Unlock()

	c.logger.Debug("Recorded successful validation",
		"slot", slot,
		"consensus_percentage", result.ConsensusPercentage,
		"successes", successes)
}

func (c *Collector) Attempts() uint64 {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.attempts
}

func (c *Collector) Successes() uint64 {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.successes
}

// AttemptTime returns when slot was last attempted.
func (c *Collector) AttemptTime(slot uint64) (time.Time, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	ts, ok := c.attemptTimes[slot]
	return ts, ok
}

func (c *Collector) Snapshot() Snapshot {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return Snapshot{
		Attempts:     c.attempts,
		Successes:    c.successes,
		TrackedSlots: len(c.attemptTimes),
	}
}
