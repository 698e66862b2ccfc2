package gui

import (
	"log/slog"

	"github.com/df-mc/invgui/gui/item"
	"github.com/google/uuid"
)

// Surface is the grid of slots a GUI renders into and presents to its viewer. The inventory package
// provides an in-memory implementation.
type Surface interface {
	// Size returns the amount of slots of the surface.
	Size() int
	// Title returns the title shown above the surface.
	Title() string
	// SetItem sets the stack displayed in a slot. An error is returned if the slot is out of range.
	SetItem(slot int, it item.Stack) error
	// Item returns the stack displayed in a slot. An error is returned if the slot is out of range.
	Item(slot int) (item.Stack, error)
	// Clear empties all slots of the surface.
	Clear()
}

// Surfaces creates surfaces and presents them to viewers.
type Surfaces interface {
	// NewSurface creates a surface with size slots and an optional title.
	NewSurface(size int, title string) Surface
	// OpenSurface presents s to the viewer passed. Any other surface the viewer has open is closed first.
	OpenSurface(viewer uuid.UUID, s Surface) error
	// CloseSurface closes s for the viewer passed if the viewer has it open.
	CloseSurface(viewer uuid.UUID, s Surface) error
}

// Events manages subscriptions of Handlers to the click, close, item pickup and chat events of the host.
type Events interface {
	// Subscribe subscribes h to all events. The function returned removes this subscription.
	Subscribe(h Handler) (unsubscribe func())
	// Subscribed checks if h currently has any subscription.
	Subscribed(h Handler) bool
	// UnsubscribeAll removes every subscription of h and reports if any was present.
	UnsubscribeAll(h Handler) bool
}

// Scheduler defers work until the host finishes processing the current event.
type Scheduler interface {
	// RunNextTick runs fn on the next tick of the host, after the current event has been handled.
	RunNextTick(fn func())
}

// Host is everything a GUI consumes from the server it runs on.
type Host interface {
	Surfaces
	Events
	Scheduler
	// Logger returns the logger used for diagnostics.
	Logger() *slog.Logger
}
