// Package host implements a gui.Host that runs in-process. Viewers are driven by calling the methods of
// Host directly, which makes it suited for tests and terminal front-ends.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/df-mc/invgui/gui"
	"github.com/df-mc/invgui/gui/inventory"
	"github.com/df-mc/invgui/gui/item"
	"github.com/df-mc/invgui/gui/listener"
	"github.com/df-mc/invgui/gui/tick"
	"github.com/google/uuid"
)

// ErrNoSurface is returned when a viewer without an open surface interacts with one.
var ErrNoSurface = errors.New("viewer has no open surface")

// Config contains options for creating a Host.
type Config struct {
	// Log is the Logger to use for logging information. If nil, Log is set to slog.Default().
	Log *slog.Logger
	// Scheduler runs the actions deferred to the next tick. If nil, a new Scheduler is created.
	Scheduler *tick.Scheduler
	// Hub dispatches events to subscribed handlers. If nil, a new Hub is created.
	Hub *listener.Hub
}

// Host is an in-process gui.Host. It tracks the surface each viewer has open and dispatches the
// interactions of viewers to the handlers subscribed to its Hub.
type Host struct {
	log   *slog.Logger
	sched *tick.Scheduler
	hub   *listener.Hub

	mu   sync.Mutex
	open map[uuid.UUID]gui.Surface

	updates atomic.Uint64
}

// Compile time check to make sure Host implements gui.Host.
var _ gui.Host = (*Host)(nil)

// New creates a Host using the fields of conf.
func (conf Config) New() *Host {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Scheduler == nil {
		conf.Scheduler = tick.Config{Log: conf.Log}.New()
	}
	if conf.Hub == nil {
		conf.Hub = listener.New(conf.Log)
	}
	return &Host{
		log:   conf.Log,
		sched: conf.Scheduler,
		hub:   conf.Hub,
		open:  make(map[uuid.UUID]gui.Surface),
	}
}

// Logger returns the Logger of the Host.
func (h *Host) Logger() *slog.Logger {
	return h.log
}

// Scheduler returns the Scheduler of the Host.
func (h *Host) Scheduler() *tick.Scheduler {
	return h.sched
}

// Hub returns the Hub of the Host.
func (h *Host) Hub() *listener.Hub {
	return h.hub
}

// NewSurface creates an in-memory inventory with size slots.
func (h *Host) NewSurface(size int, title string) gui.Surface {
	return inventory.New(size, title, func(int, item.Stack, item.Stack) {
		h.updates.Add(1)
	})
}

// Updates returns the amount of slot changes across all surfaces created by the Host. It may be used
// to detect that a view needs redrawing.
func (h *Host) Updates() uint64 {
	return h.updates.Load()
}

// OpenSurface presents s to the viewer. A different surface the viewer had open is closed first, which
// is dispatched as a close event.
func (h *Host) OpenSurface(viewer uuid.UUID, s gui.Surface) error {
	if s == nil {
		return fmt.Errorf("open surface: surface must not be nil")
	}
	h.mu.Lock()
	prev, ok := h.open[viewer]
	h.open[viewer] = s
	h.mu.Unlock()

	if ok && prev != s {
		h.hub.Close(viewer, prev)
	}
	return nil
}

// CloseSurface closes s for the viewer if the viewer has it open, which is dispatched as a close event.
func (h *Host) CloseSurface(viewer uuid.UUID, s gui.Surface) error {
	h.mu.Lock()
	cur, ok := h.open[viewer]
	if !ok || cur != s {
		h.mu.Unlock()
		return nil
	}
	delete(h.open, viewer)
	h.mu.Unlock()

	h.hub.Close(viewer, s)
	return nil
}

// Viewing returns the surface the viewer has open.
func (h *Host) Viewing(viewer uuid.UUID) (gui.Surface, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.open[viewer]
	return s, ok
}

// Subscribe subscribes handler to the events of the Host.
func (h *Host) Subscribe(handler gui.Handler) func() {
	return h.hub.Subscribe(handler)
}

// Subscribed checks if handler is subscribed to the events of the Host.
func (h *Host) Subscribed(handler gui.Handler) bool {
	return h.hub.Subscribed(handler)
}

// UnsubscribeAll removes all subscriptions of handler.
func (h *Host) UnsubscribeAll(handler gui.Handler) bool {
	return h.hub.UnsubscribeAll(handler)
}

// RunNextTick runs fn on the next call to Step.
func (h *Host) RunNextTick(fn func()) {
	h.sched.RunNextTick(fn)
}

// Step runs the actions deferred to the next tick and returns the amount run.
func (h *Host) Step(ctx context.Context) int {
	return h.sched.Step(ctx)
}

// Click makes the viewer click a slot of the surface it has open. It reports if the click was
// cancelled by a handler.
func (h *Host) Click(viewer uuid.UUID, slot int, click gui.ClickType) (cancelled bool, err error) {
	s, ok := h.Viewing(viewer)
	if !ok {
		return false, fmt.Errorf("click slot %d: %w", slot, ErrNoSurface)
	}
	if slot < 0 || slot >= s.Size() {
		return false, fmt.Errorf("click slot %d of surface with %d slots: %w", slot, s.Size(), inventory.ErrSlotOutOfRange)
	}
	return h.hub.Click(viewer, s, slot, click), nil
}

// CloseBy makes the viewer close the surface it has open.
func (h *Host) CloseBy(viewer uuid.UUID) error {
	s, ok := h.Viewing(viewer)
	if !ok {
		return ErrNoSurface
	}
	return h.CloseSurface(viewer, s)
}

// Pickup makes the entity pick up an item. It reports if the pickup was cancelled by a handler.
func (h *Host) Pickup(entity uuid.UUID, it item.Stack) (cancelled bool) {
	return h.hub.ItemPickup(entity, it)
}

// Chat makes the viewer send a chat message. It reports if the message was cancelled by a handler.
func (h *Host) Chat(viewer uuid.UUID, message string) (cancelled bool) {
	return h.hub.Chat(viewer, message)
}
