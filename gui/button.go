package gui

import "github.com/df-mc/invgui/gui/item"

// Button is a clickable slot of a GUI. It pairs an icon with a function called when the viewer clicks
// the slot the button is placed in.
type Button struct {
	slot    int
	icon    item.Stack
	onClick func(e *ClickEvent)
}

// NewButton creates a Button with the slot, icon and click function passed. onClick may be nil for a
// button that does nothing when clicked.
func NewButton(slot int, icon item.Stack, onClick func(e *ClickEvent)) *Button {
	return &Button{slot: slot, icon: icon, onClick: onClick}
}

// Slot returns the slot of the button.
func (b *Button) Slot() int {
	return b.slot
}

// SetSlot changes the slot of the button.
func (b *Button) SetSlot(slot int) {
	b.slot = slot
}

// Icon returns the stack displayed for the button.
func (b *Button) Icon() item.Stack {
	return b.icon
}

// Click calls the click function of the button with the event passed. Click does not recover panics
// raised by the function.
func (b *Button) Click(e *ClickEvent) {
	if b.onClick != nil {
		b.onClick(e)
	}
}
