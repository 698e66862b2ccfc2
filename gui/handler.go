package gui

import (
	"github.com/df-mc/invgui/gui/item"
	"github.com/google/uuid"
)

// Context is passed to handlers of events that may be cancelled. Cancelling an event stops the default
// behaviour of the host, such as moving the clicked item or picking up an item entity.
type Context struct {
	viewer uuid.UUID
	cancel bool
}

// NewContext returns a Context for an event caused by the viewer passed.
func NewContext(viewer uuid.UUID) *Context {
	return &Context{viewer: viewer}
}

// Viewer returns the UUID of the player that caused the event.
func (ctx *Context) Viewer() uuid.UUID {
	return ctx.viewer
}

// Cancel cancels the event.
func (ctx *Context) Cancel() {
	ctx.cancel = true
}

// Cancelled checks if the event was cancelled.
func (ctx *Context) Cancelled() bool {
	return ctx.cancel
}

// Handler handles the events a host dispatches to subscribed GUIs. Every method is called for every
// subscribed handler, so implementations must check that the event concerns them.
type Handler interface {
	// HandleClick handles a viewer clicking a slot of a surface.
	HandleClick(ctx *Context, s Surface, slot int, click ClickType)
	// HandleClose handles a surface being closed for a viewer.
	HandleClose(viewer uuid.UUID, s Surface)
	// HandleItemPickup handles an entity, identified by ctx.Viewer(), picking up an item.
	HandleItemPickup(ctx *Context, it item.Stack)
	// HandleChat handles a viewer sending a chat message.
	HandleChat(ctx *Context, message string)
}

// NopHandler implements the Handler interface but does not execute any code when an event is called.
// It may be embedded to only implement part of Handler.
type NopHandler struct{}

// Compile time check to make sure NopHandler implements Handler.
var _ Handler = NopHandler{}

func (NopHandler) HandleClick(*Context, Surface, int, ClickType) {}
func (NopHandler) HandleClose(uuid.UUID, Surface)                {}
func (NopHandler) HandleItemPickup(*Context, item.Stack)         {}
func (NopHandler) HandleChat(*Context, string)                   {}

// ClickType is the way a slot was clicked.
type ClickType uint8

const (
	ClickLeft ClickType = iota
	ClickRight
	ClickShiftLeft
	ClickShiftRight
	ClickMiddle
	ClickNumberKey
	ClickDrop
	ClickDouble
)

// String implements fmt.Stringer.
func (c ClickType) String() string {
	switch c {
	case ClickLeft:
		return "left"
	case ClickRight:
		return "right"
	case ClickShiftLeft:
		return "shift_left"
	case ClickShiftRight:
		return "shift_right"
	case ClickMiddle:
		return "middle"
	case ClickNumberKey:
		return "number_key"
	case ClickDrop:
		return "drop"
	case ClickDouble:
		return "double"
	}
	return "unknown"
}

// ClickEvent is passed to the function of a Button when it is clicked.
type ClickEvent struct {
	// Viewer is the player that clicked the button.
	Viewer uuid.UUID
	// Slot is the slot that was clicked.
	Slot int
	// Click is the way the slot was clicked.
	Click ClickType
	// Button is the button that was clicked.
	Button *Button
}

// ChatEvent is passed to a TextInput when the viewer sends the message it waited for.
type ChatEvent struct {
	// Viewer is the player that sent the message.
	Viewer uuid.UUID
	// Message is the chat message sent.
	Message string
}

// TextInput is a function called with the next chat message of a viewer.
type TextInput func(e *ChatEvent)
