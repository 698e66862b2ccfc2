package tick

import "sync"

// Metrics tracks counters of a Scheduler for observability.
type Metrics struct {
	mu sync.Mutex

	ran      uint64
	panics   uint64
	maxQueue int
}

// Stats is a snapshot of Metrics.
type Stats struct {
	// Ran is the amount of actions run.
	Ran uint64
	// Panics is the amount of actions that panicked.
	Panics uint64
	// MaxQueue is the largest amount of actions queued at once.
	MaxQueue int
}

// NewMetrics creates empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) addRun(n int) {
	if m == nil || n == 0 {
		return
	}
	m.mu.Lock()
	m.ran += uint64(n)
	m.mu.Unlock()
}

func (m *Metrics) incPanics() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.panics++
	m.mu.Unlock()
}

func (m *Metrics) observeQueue(n int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.maxQueue = max(m.maxQueue, n)
	m.mu.Unlock()
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{Ran: m.ran, Panics: m.panics, MaxQueue: m.maxQueue}
}
