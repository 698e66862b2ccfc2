package gui

import (
	"errors"
	"maps"

	"github.com/df-mc/invgui/gui/item"
)

// Page is a set of buttons and items that may be rendered into a GUI.
type Page interface {
	// Generate (re)computes the buttons and items of the page.
	Generate()
	// Buttons returns the buttons of the page by slot.
	Buttons() map[int]*Button
	// Items returns the static items of the page by slot.
	Items() map[int]item.Stack
}

// BasePage is a Page holding buttons and items that are added explicitly. It may be embedded by other
// Page implementations.
type BasePage struct {
	buttons map[int]*Button
	items   map[int]item.Stack
	gen     func(p *BasePage)
}

// NewPage returns a BasePage that calls generate each time Generate is called. generate may be nil.
func NewPage(generate func(p *BasePage)) *BasePage {
	return &BasePage{gen: generate}
}

// Generate calls the generate function of the page, if any.
func (p *BasePage) Generate() {
	if p.gen != nil {
		p.gen(p)
	}
}

// AddButton places b in the slot passed, replacing any button already there. The slot of b is updated.
func (p *BasePage) AddButton(slot int, b *Button) {
	if p.buttons == nil {
		p.buttons = make(map[int]*Button)
	}
	b.SetSlot(slot)
	p.buttons[slot] = b
}

// AddItem places a static item in the slot passed, replacing any item already there.
func (p *BasePage) AddItem(slot int, it item.Stack) {
	if p.items == nil {
		p.items = make(map[int]item.Stack)
	}
	p.items[slot] = it
}

// RemoveButton removes the button in the slot passed.
func (p *BasePage) RemoveButton(slot int) {
	delete(p.buttons, slot)
}

// RemoveItem removes the item in the slot passed.
func (p *BasePage) RemoveItem(slot int) {
	delete(p.items, slot)
}

// ClearButtons removes all buttons of the page.
func (p *BasePage) ClearButtons() {
	clear(p.buttons)
}

// ClearItems removes all items of the page.
func (p *BasePage) ClearItems() {
	clear(p.items)
}

// Buttons returns a copy of the buttons of the page.
func (p *BasePage) Buttons() map[int]*Button {
	return maps.Clone(p.buttons)
}

// Items returns a copy of the items of the page.
func (p *BasePage) Items() map[int]item.Stack {
	return maps.Clone(p.items)
}

// PageRenderer returns a RenderFunc that generates p and copies its items and buttons into the GUI
// rendering it.
func PageRenderer[K comparable](p Page) RenderFunc[K] {
	return func(g *GUI[K]) error {
		p.Generate()
		var errs []error
		for slot, it := range p.Items() {
			errs = append(errs, g.AddItem(slot, it))
		}
		for slot, b := range p.Buttons() {
			errs = append(errs, g.AddButton(slot, b))
		}
		return errors.Join(errs...)
	}
}
