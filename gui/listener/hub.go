// Package listener implements the event subscriptions of a GUI host. Handlers subscribed to a Hub
// receive the click, close, item pickup and chat events the host dispatches through it.
package listener

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/df-mc/invgui/gui"
	"github.com/df-mc/invgui/gui/internal/guard"
	"github.com/df-mc/invgui/gui/item"
	"github.com/google/uuid"
)

type registration struct {
	handler gui.Handler
	id      uint64
}

type registrations struct {
	regs []registration
	next uint64
}

func (l *registrations) add(h gui.Handler) uint64 {
	id := l.next
	l.next++
	l.regs = append(l.regs, registration{handler: h, id: id})
	return id
}

func (l *registrations) remove(keep func(reg registration) bool) int {
	if len(l.regs) == 0 {
		return 0
	}
	n := len(l.regs)
	regs := l.regs[:0]
	for _, reg := range l.regs {
		if keep(reg) {
			regs = append(regs, reg)
		}
	}
	clear(l.regs[len(regs):])
	l.regs = regs
	return n - len(regs)
}

func (l *registrations) snapshot() []registration {
	if len(l.regs) == 0 {
		return nil
	}
	out := make([]registration, len(l.regs))
	copy(out, l.regs)
	return out
}

// Hub manages the subscriptions of gui.Handlers and dispatches events to them. Dispatching works on a
// snapshot of the subscriptions, so handlers may subscribe and unsubscribe while an event is handled. A
// Hub is safe for concurrent use. Handlers must be comparable, such as pointers.
type Hub struct {
	mu    sync.Mutex
	log   *slog.Logger
	regs  registrations
	chain atomic.Value // []registration
}

// Compile time check to make sure Hub implements gui.Events.
var _ gui.Events = (*Hub)(nil)

// New returns an empty Hub. Panics in handlers are logged to log. If log is nil, slog.Default() is used.
func New(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	hub := &Hub{log: log.With("subsystem", "gui.listener")}
	hub.chain.Store([]registration{})
	return hub
}

// Subscribe subscribes h to all events of the hub. The function returned removes the subscription. It
// may be called more than once.
func (hub *Hub) Subscribe(h gui.Handler) func() {
	if h == nil {
		return func() {}
	}
	hub.mu.Lock()
	id := hub.regs.add(h)
	hub.chain.Store(hub.regs.snapshot())
	hub.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			hub.mu.Lock()
			hub.regs.remove(func(reg registration) bool { return reg.id != id })
			hub.chain.Store(hub.regs.snapshot())
			hub.mu.Unlock()
		})
	}
}

// Subscribed checks if h has any subscription.
func (hub *Hub) Subscribed(h gui.Handler) bool {
	for _, reg := range hub.load() {
		if reg.handler == h {
			return true
		}
	}
	return false
}

// UnsubscribeAll removes every subscription of h and reports if any was removed.
func (hub *Hub) UnsubscribeAll(h gui.Handler) bool {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	n := hub.regs.remove(func(reg registration) bool { return reg.handler != h })
	hub.chain.Store(hub.regs.snapshot())
	return n > 0
}

// Len returns the amount of subscriptions.
func (hub *Hub) Len() int {
	return len(hub.load())
}

func (hub *Hub) load() []registration {
	if v := hub.chain.Load(); v != nil {
		return v.([]registration)
	}
	return nil
}

// callCtx calls fn for every subscribed handler until ctx is cancelled.
func (hub *Hub) callCtx(ctx *gui.Context, fn func(h gui.Handler)) {
	for _, reg := range hub.load() {
		handler := reg.handler
		guard.Run(hub.log, "Event handler panicked.", func() { fn(handler) }, "viewer", ctx.Viewer())
		if ctx.Cancelled() {
			return
		}
	}
}

// Click dispatches a click of the viewer on a slot of s. It reports if a handler cancelled the click.
func (hub *Hub) Click(viewer uuid.UUID, s gui.Surface, slot int, click gui.ClickType) (cancelled bool) {
	ctx := gui.NewContext(viewer)
	hub.callCtx(ctx, func(h gui.Handler) { h.HandleClick(ctx, s, slot, click) })
	return ctx.Cancelled()
}

// Close dispatches s being closed for the viewer. Every handler is called.
func (hub *Hub) Close(viewer uuid.UUID, s gui.Surface) {
	for _, reg := range hub.load() {
		handler := reg.handler
		guard.Run(hub.log, "Event handler panicked.", func() { handler.HandleClose(viewer, s) }, "viewer", viewer)
	}
}

// ItemPickup dispatches the entity passed picking up an item. It reports if a handler cancelled the
// pickup.
func (hub *Hub) ItemPickup(entity uuid.UUID, it item.Stack) (cancelled bool) {
	ctx := gui.NewContext(entity)
	hub.callCtx(ctx, func(h gui.Handler) { h.HandleItemPickup(ctx, it) })
	return ctx.Cancelled()
}

// Chat dispatches a chat message of the viewer. It reports if a handler cancelled the message.
func (hub *Hub) Chat(viewer uuid.UUID, message string) (cancelled bool) {
	ctx := gui.NewContext(viewer)
	hub.callCtx(ctx, func(h gui.Handler) { h.HandleChat(ctx, message) })
	return ctx.Cancelled()
}
