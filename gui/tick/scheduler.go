// Package tick implements deferred actions for GUI hosts. Actions queued with RunNextTick run on the
// next Step of the Scheduler, after the event currently being handled.
package tick

import (
	"context"
	"log/slog"
	"sync"

	"github.com/df-mc/invgui/gui"
	"github.com/df-mc/invgui/gui/internal/guard"
)

// Config contains options for creating a Scheduler.
type Config struct {
	// Log is the Logger panics of actions are logged to. If nil, slog.Default() is used.
	Log *slog.Logger
	// Metrics, if not nil, records the work done by the Scheduler.
	Metrics *Metrics
}

// Scheduler runs deferred actions in the order they were queued. Actions may be queued from any
// goroutine, but are only run by the goroutine calling Step.
type Scheduler struct {
	log     *slog.Logger
	metrics *Metrics

	mu      sync.Mutex
	queue   []func()
	current int64
}

// Compile time check to make sure Scheduler implements gui.Scheduler.
var _ gui.Scheduler = (*Scheduler)(nil)

// New creates a Scheduler using the fields of conf.
func (conf Config) New() *Scheduler {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Metrics == nil {
		conf.Metrics = NewMetrics()
	}
	return &Scheduler{log: conf.Log.With("subsystem", "gui.tick"), metrics: conf.Metrics}
}

// RunNextTick queues fn to run on the next Step. A nil fn is ignored.
func (s *Scheduler) RunNextTick(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	n := len(s.queue)
	s.mu.Unlock()
	s.metrics.observeQueue(n)
}

// Step runs the actions queued before it was called. Actions queued while stepping run on the next
// Step. If ctx is cancelled, actions not yet run stay queued. Step returns the amount of actions run.
func (s *Scheduler) Step(ctx context.Context) int {
	s.mu.Lock()
	batch := s.queue
	s.queue = nil
	s.current++
	tick := s.current
	s.mu.Unlock()

	ran := 0
	for i, fn := range batch {
		if ctx.Err() != nil {
			s.requeue(batch[i:])
			break
		}
		if !guard.Run(s.log, "Deferred action panicked.", fn, "tick", tick) {
			s.metrics.incPanics()
		}
		ran++
	}
	s.metrics.addRun(ran)
	return ran
}

// requeue puts actions back in front of the queue.
func (s *Scheduler) requeue(fns []func()) {
	s.mu.Lock()
	s.queue = append(fns[:len(fns):len(fns)], s.queue...)
	s.mu.Unlock()
}

// Tick returns the amount of steps taken.
func (s *Scheduler) Tick() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Pending returns the amount of queued actions.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Metrics returns the Metrics of the Scheduler.
func (s *Scheduler) Metrics() *Metrics {
	return s.metrics
}
