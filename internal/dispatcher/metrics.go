package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/wedit/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	// Per-event metrics
	events map[string]*EventMetrics

	// Global counters
	totalDispatches uint64
	totalHandled    uint64
	totalErrors     uint64
	totalPanics     uint64

	// Timing
	totalDuration time.Duration
}

// EventMetrics holds metrics for one event name.
type EventMetrics struct {
	Name          string
	DispatchCount uint64
	HandledCount  uint64
	NoOpCount     uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		events: make(map[string]*EventMetrics),
	}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(name string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	em := m.events[name]
	if em == nil {
		em = &EventMetrics{Name: name}
		m.events[name] = em
	}

	em.DispatchCount++
	em.TotalDuration += duration
	em.LastStatus = status
	em.LastDispatch = time.Now()
	if duration > em.MaxDuration {
		em.MaxDuration = duration
	}

	switch status {
	case handler.StatusOK:
		m.totalHandled++
		em.HandledCount++
	case handler.StatusNoOp:
		em.NoOpCount++
	case handler.StatusError:
		m.totalErrors++
		em.ErrorCount++
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalHandled returns the number of dispatches that suppressed the host default.
func (m *Metrics) TotalHandled() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalHandled
}

// TotalErrors returns the total number of errors.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// EventStats returns metrics for one event name, or nil if it was never seen.
func (m *Metrics) EventStats(name string) *EventMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	em := m.events[name]
	if em == nil {
		return nil
	}

	// Return a copy
	copy := *em
	return &copy
}

// TopEvents returns the top n most dispatched events.
func (m *Metrics) TopEvents(n int) []*EventMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]*EventMetrics, 0, len(m.events))
	for _, em := range m.events {
		copy := *em
		events = append(events, &copy)
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].DispatchCount != events[j].DispatchCount {
			return events[i].DispatchCount > events[j].DispatchCount
		}
		return events[i].Name < events[j].Name
	})

	if n > len(events) {
		n = len(events)
	}
	return events[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = make(map[string]*EventMetrics)
	m.totalDispatches = 0
	m.totalHandled = 0
	m.totalErrors = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time copy of the global counters.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalHandled    uint64
	TotalErrors     uint64
	TotalPanics     uint64
	AverageDuration time.Duration
	EventCount      int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalDispatches: m.totalDispatches,
		TotalHandled:    m.totalHandled,
		TotalErrors:     m.totalErrors,
		TotalPanics:     m.totalPanics,
		EventCount:      len(m.events),
		Timestamp:       time.Now(),
	}

	if m.totalDispatches > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}

	return snapshot
}

// HandledRate returns the share of dispatches that were handled, as a percentage.
func (em *EventMetrics) HandledRate() float64 {
	if em.DispatchCount == 0 {
		return 0
	}
	return float64(em.HandledCount) / float64(em.DispatchCount) * 100
}
