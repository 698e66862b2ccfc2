package gui

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/brentp/intintmap"
	"github.com/df-mc/invgui/format"
	"github.com/df-mc/invgui/gui/internal/guard"
	"github.com/df-mc/invgui/gui/item"
	"github.com/google/uuid"
	"github.com/sandertv/gophertunnel/minecraft/text"
)

// Compile time check to make sure GUI implements Handler and Instance.
var (
	_ Handler  = (*GUI[int])(nil)
	_ Instance = (*GUI[int])(nil)
)

// RenderFunc renders a page of a GUI by adding buttons, items and paginated entries to it.
type RenderFunc[K comparable] func(g *GUI[K]) error

// State is the lifecycle state of a GUI.
type State uint8

const (
	// StateUnopened is the state of a GUI that was never opened.
	StateUnopened State = iota
	// StateOpen is the state of a GUI presented to its viewer.
	StateOpen
	// StateClosed is the state of a GUI that was closed but not destroyed. It may be opened again.
	StateClosed
	// StateDestroyed is the final state of a GUI.
	StateDestroyed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateDestroyed:
		return "destroyed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// GUI is a menu shown to a single viewer. It holds a set of pages identified by keys of type K, of
// which one is rendered into its surface at a time. A GUI is not safe for concurrent use: all of its
// methods, including its event handlers, must be called from the goroutine that runs the host.
type GUI[K comparable] struct {
	reg    *Registry
	h      Host
	log    *slog.Logger
	viewer uuid.UUID

	surface Surface
	size    Size

	keys       []K
	pages      map[K]RenderFunc[K]
	current    K
	hasCurrent bool
	history    []K

	// static holds the contents added outside of rendering, rendered those added by the render
	// function of the current page. rendered is rebuilt on every render.
	static, rendered contents
	clickable        map[int]*Button

	filler   Filler
	settings Settings
	state    State

	rendering bool
	input     TextInput

	defaultPrev, defaultNext item.Stack
	pagination               pagination
}

// contents holds the buttons and items of a page by slot.
type contents struct {
	buttons map[int]*Button
	items   map[int]item.Stack
}

func newContents() contents {
	return contents{buttons: make(map[int]*Button), items: make(map[int]item.Stack)}
}

func (c contents) clear() {
	clear(c.buttons)
	clear(c.items)
}

// pagination holds the state of the native pagination of a GUI.
type pagination struct {
	enabled            bool
	w                  window
	prevSlot, nextSlot int
	prevIcon, nextIcon item.Stack
	page               int

	// entries are added outside of rendering and kept until the page changes. generated are added
	// by the render function and rebuilt on every render.
	entries, generated []Entry
	// shown holds the entries as they were at the last render.
	shown []Entry
	// visible maps the slots of the window to the index of the entry shown in them. Clicks on the
	// window are resolved through it, so buttons of entries are never part of the clickable map.
	visible *intintmap.Map
}

func (p *pagination) all() []Entry {
	return slices.Concat(p.entries, p.generated)
}

func (p *pagination) maxPages() int {
	return p.w.pages(len(p.entries) + len(p.generated))
}

// New creates a GUI for the viewer passed with the page keys passed and registers it in reg, destroying
// any GUI previously registered for the viewer. The GUI is not opened: a page must be selected using
// ChangePage before calling Open. New panics if reg or h is nil.
func New[K comparable](reg *Registry, h Host, viewer uuid.UUID, keys []K, conf Config) (*GUI[K], error) {
	if reg == nil {
		panic("gui.New: registry must not be nil")
	}
	if h == nil {
		panic("gui.New: host must not be nil")
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("new gui: empty key domain: %w", ErrUnknownPage)
	}
	conf = conf.withDefaults(h)
	if !conf.Size.Valid() {
		return nil, fmt.Errorf("new gui: %v: %w", conf.Size, ErrInvalidSize)
	}
	g := &GUI[K]{
		reg:         reg,
		h:           h,
		log:         conf.Log.With("subsystem", "gui", "viewer", viewer),
		viewer:      viewer,
		size:        conf.Size,
		keys:        slices.Clone(keys),
		pages:       make(map[K]RenderFunc[K], len(keys)),
		static:      newContents(),
		rendered:    newContents(),
		clickable:   make(map[int]*Button),
		filler:      *conf.Filler,
		settings:    *conf.Settings,
		defaultPrev: conf.PreviousIcon,
		defaultNext: conf.NextIcon,
	}
	g.surface = h.NewSurface(conf.Size.Slots(), conf.Title)
	reg.Swap(g)
	return g, nil
}

// Viewer returns the UUID of the viewer of the GUI.
func (g *GUI[K]) Viewer() uuid.UUID {
	return g.viewer
}

// Surface returns the surface the GUI renders into.
func (g *GUI[K]) Surface() Surface {
	return g.surface
}

// Size returns the size of the surface of the GUI.
func (g *GUI[K]) Size() Size {
	return g.size
}

// State returns the lifecycle state of the GUI.
func (g *GUI[K]) State() State {
	return g.state
}

// Destroyed checks if the GUI was destroyed.
func (g *GUI[K]) Destroyed() bool {
	return g.state == StateDestroyed
}

// Settings returns the current settings of the GUI.
func (g *GUI[K]) Settings() Settings {
	return g.settings
}

// SetSettings changes the settings of the GUI.
func (g *GUI[K]) SetSettings(s Settings) {
	g.settings = s
}

// Filler returns the filler of the GUI.
func (g *GUI[K]) Filler() Filler {
	return g.filler
}

// SetFiller changes the filler of the GUI. It is used from the next render or fill onwards.
func (g *GUI[K]) SetFiller(f Filler) {
	g.filler = f
}

// RegisterPage registers the render function of the page with the key passed, replacing any function
// registered for it before.
func (g *GUI[K]) RegisterPage(key K, fn RenderFunc[K]) error {
	if !slices.Contains(g.keys, key) {
		return fmt.Errorf("register page %v: %w", key, ErrUnknownPage)
	}
	if fn == nil {
		return fmt.Errorf("register page %v: render function must not be nil", key)
	}
	g.pages[key] = fn
	return nil
}

// Current returns the key of the current page. ok is false if no page was selected yet.
func (g *GUI[K]) Current() (key K, ok bool) {
	return g.current, g.hasCurrent
}

// History returns the keys of the previously selected pages, the most recent last.
func (g *GUI[K]) History() []K {
	return slices.Clone(g.history)
}

// ChangePage makes the page with the key passed the current page and renders it. The previous page is
// remembered so that ChangePageToPrevious may return to it. Buttons, items and paginated entries of
// the previous page are cleared and pagination is disabled until the new page enables it again.
// If rendering the new page fails, the previous page stays current and is rendered again.
func (g *GUI[K]) ChangePage(key K) error {
	if _, ok := g.pages[key]; !ok {
		return fmt.Errorf("change page %v: %w", key, ErrUnknownPage)
	}
	if g.Destroyed() {
		return ErrDestroyed
	}
	prev, hadPrev, n := g.current, g.hasCurrent, len(g.history)
	if g.hasCurrent {
		g.history = append(g.history, g.current)
	}
	g.switchTo(key)
	if err := g.Render(); err != nil {
		g.history = g.history[:n]
		g.restore(prev, hadPrev)
		return err
	}
	return nil
}

// restore makes prev the current page again after a page failed to render.
func (g *GUI[K]) restore(prev K, ok bool) {
	if !ok {
		var zero K
		g.switchTo(zero)
		g.hasCurrent = false
		g.FillAll()
		g.clickable = nil
		return
	}
	g.switchTo(prev)
	if err := g.Render(); err != nil {
		g.log.Error("Failed to render previous page.", "page", prev, "err", err)
	}
}

// ChangePageToPrevious returns to the page that was current before the last ChangePage and renders it.
// Nothing happens if there is no previous page.
func (g *GUI[K]) ChangePageToPrevious() error {
	if len(g.history) == 0 {
		return nil
	}
	key := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.switchTo(key)
	return g.Render()
}

func (g *GUI[K]) switchTo(key K) {
	g.current, g.hasCurrent = key, true
	g.static.clear()
	g.rendered.clear()
	g.pagination.enabled = false
	g.pagination.visible, g.pagination.shown = nil, nil
	g.pagination.page = 1
	g.pagination.entries = g.pagination.entries[:0]
	g.pagination.generated = g.pagination.generated[:0]
}

// Render draws the current page into the surface of the GUI. The surface is filled with the filler,
// after which the render function of the page is called. Items are drawn first, then buttons, so that
// a button wins over an item in the same slot. The pagination window and its navigation buttons are
// drawn last.
func (g *GUI[K]) Render() error {
	if g.Destroyed() {
		return ErrDestroyed
	}
	if !g.hasCurrent {
		return ErrNoPage
	}
	g.FillAll()
	g.rendered.clear()
	g.pagination.generated = g.pagination.generated[:0]

	g.rendering = true
	err := g.pages[g.current](g)
	g.rendering = false
	if err != nil {
		return fmt.Errorf("render page %v: %w", g.current, err)
	}

	items, buttons := g.Items(), g.Buttons()
	clickable := make(map[int]*Button, len(buttons))
	for slot, it := range items {
		g.setSlot(slot, it)
	}
	for slot, b := range buttons {
		g.setSlot(slot, b.Icon())
		clickable[slot] = b
	}
	if g.pagination.enabled {
		g.renderPagination(clickable)
	}
	g.clickable = clickable
	return nil
}

func (g *GUI[K]) renderPagination(clickable map[int]*Button) {
	p := &g.pagination
	entries := p.all()
	p.shown = entries
	maxPages := p.w.pages(len(entries))
	p.page = clampPage(p.page, maxPages)

	p.visible = intintmap.New(p.w.size(), 0.6)
	from, to := p.w.visible(p.page, len(entries))
	for slot := p.w.start; slot <= p.w.end; slot++ {
		i := from + slot - p.w.start
		delete(clickable, slot)
		if i >= to {
			g.setSlot(slot, g.filler.Stack())
			continue
		}
		g.setSlot(slot, entries[i].Item())
		p.visible.Put(int64(slot), int64(i))
	}

	lore := text.Colourf("<grey>Page %v of %v</grey>", format.Number(int64(p.page)), format.Number(int64(maxPages)))
	prev := NewButton(p.prevSlot, p.prevIcon.WithLore(lore), func(*ClickEvent) {
		if err := g.PreviousPaginationPage(); err != nil {
			g.log.Error("Failed to move to previous pagination page.", "err", err)
		}
	})
	next := NewButton(p.nextSlot, p.nextIcon.WithLore(lore), func(*ClickEvent) {
		if err := g.NextPaginationPage(); err != nil {
			g.log.Error("Failed to move to next pagination page.", "err", err)
		}
	})
	for _, b := range []*Button{prev, next} {
		g.setSlot(b.Slot(), b.Icon())
		clickable[b.Slot()] = b
	}
}

// setSlot writes to the surface. Slots are validated when added, so failures are only logged.
func (g *GUI[K]) setSlot(slot int, it item.Stack) {
	if err := g.surface.SetItem(slot, it); err != nil {
		g.log.Error("Failed to set surface slot.", "slot", slot, "err", err)
	}
}

func (g *GUI[K]) checkSlot(slot int) error {
	if slot < 0 || slot >= g.size.Slots() {
		return fmt.Errorf("slot %d of gui with %d slots: %w", slot, g.size.Slots(), ErrSlotOutOfRange)
	}
	return nil
}

// AddButton places b in the slot passed, replacing any button already there. Buttons added by a render
// function are rebuilt on every render, while others are kept until the page changes and drawn on the
// next render.
func (g *GUI[K]) AddButton(slot int, b *Button) error {
	if err := g.checkSlot(slot); err != nil {
		return fmt.Errorf("add button: %w", err)
	}
	b.SetSlot(slot)
	g.target().buttons[slot] = b
	return nil
}

// AddItem places a static item in the slot passed, replacing any item already there. The item is drawn
// on the next render.
func (g *GUI[K]) AddItem(slot int, it item.Stack) error {
	if err := g.checkSlot(slot); err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	g.target().items[slot] = it
	return nil
}

// target returns the contents that buttons and items are currently added to.
func (g *GUI[K]) target() *contents {
	if g.rendering {
		return &g.rendered
	}
	return &g.static
}

// Buttons returns the buttons of the current page by slot. Buttons added by the render function
// replace others in the same slot.
func (g *GUI[K]) Buttons() map[int]*Button {
	m := maps.Clone(g.static.buttons)
	maps.Copy(m, g.rendered.buttons)
	return m
}

// Items returns the static items of the current page by slot.
func (g *GUI[K]) Items() map[int]item.Stack {
	m := maps.Clone(g.static.items)
	maps.Copy(m, g.rendered.items)
	return m
}

// AddPaginatedButton appends a button to the paginated entries of the GUI. Entries added by a render
// function are rebuilt on every render, while others are kept until the page changes.
func (g *GUI[K]) AddPaginatedButton(b *Button) {
	g.addEntry(ButtonEntry(b))
}

// AddPaginatedItem appends a static item to the paginated entries of the GUI.
func (g *GUI[K]) AddPaginatedItem(it item.Stack) {
	g.addEntry(ItemEntry(it))
}

func (g *GUI[K]) addEntry(e Entry) {
	if g.rendering {
		g.pagination.generated = append(g.pagination.generated, e)
		return
	}
	g.pagination.entries = append(g.pagination.entries, e)
}

// PaginatedEntries returns the paginated entries of the GUI.
func (g *GUI[K]) PaginatedEntries() []Entry {
	return g.pagination.all()
}

// PaginatedEntry returns the paginated entry shown in the slot passed after the last render.
func (g *GUI[K]) PaginatedEntry(slot int) (Entry, bool) {
	p := &g.pagination
	if !p.enabled || p.visible == nil {
		return Entry{}, false
	}
	i, ok := p.visible.Get(int64(slot))
	if !ok || int(i) >= len(p.shown) {
		return Entry{}, false
	}
	return p.shown[i], true
}

// EnablePagination shows the paginated entries of the GUI through the slots start through end, both
// inclusive, with buttons to move between pages in prevSlot and nextSlot. The icons of the buttons are
// those of the Config the GUI was created with.
// Pagination belongs to the current page: ChangePage disables it, so pages should enable it from
// their render function.
func (g *GUI[K]) EnablePagination(start, end, prevSlot, nextSlot int) error {
	return g.EnablePaginationWithIcons(start, end, prevSlot, nextSlot, g.defaultPrev, g.defaultNext)
}

// EnablePaginationWithIcons works like EnablePagination, using the icons passed for the navigation
// buttons.
func (g *GUI[K]) EnablePaginationWithIcons(start, end, prevSlot, nextSlot int, prevIcon, nextIcon item.Stack) error {
	for _, slot := range []int{start, end, prevSlot, nextSlot} {
		if err := g.checkSlot(slot); err != nil {
			return fmt.Errorf("enable pagination: %w", err)
		}
	}
	w := window{start: start, end: end}
	switch {
	case end < start:
		return fmt.Errorf("enable pagination: window %d..%d: %w", start, end, ErrInvalidWindow)
	case w.contains(prevSlot) || w.contains(nextSlot):
		return fmt.Errorf("enable pagination: navigation slots %d and %d overlap window %d..%d: %w", prevSlot, nextSlot, start, end, ErrInvalidWindow)
	case prevSlot == nextSlot:
		return fmt.Errorf("enable pagination: navigation slots share slot %d: %w", prevSlot, ErrInvalidWindow)
	}
	p := &g.pagination
	if !p.enabled || p.w != w {
		p.page = 1
	}
	p.enabled, p.w = true, w
	p.prevSlot, p.nextSlot = prevSlot, nextSlot
	p.prevIcon, p.nextIcon = prevIcon, nextIcon
	return nil
}

// DisablePagination stops showing paginated entries. The entries are kept.
func (g *GUI[K]) DisablePagination() {
	g.pagination.enabled = false
	g.pagination.visible = nil
}

// PaginationEnabled checks if pagination is enabled.
func (g *GUI[K]) PaginationEnabled() bool {
	return g.pagination.enabled
}

// NextPaginationPage moves to the next pagination page and renders the GUI. Nothing changes on the last
// page.
func (g *GUI[K]) NextPaginationPage() error {
	return g.movePagination(1)
}

// PreviousPaginationPage moves to the previous pagination page and renders the GUI. Nothing changes on
// the first page.
func (g *GUI[K]) PreviousPaginationPage() error {
	return g.movePagination(-1)
}

func (g *GUI[K]) movePagination(delta int) error {
	if !g.pagination.enabled {
		return nil
	}
	g.pagination.page = clampPage(g.pagination.page+delta, g.pagination.maxPages())
	return g.Render()
}

// PaginationPage returns the current 1-based pagination page.
func (g *GUI[K]) PaginationPage() int {
	return max(g.pagination.page, 1)
}

// MaxPaginationPages returns the amount of pages needed to show all paginated entries. It is 1 if
// pagination is disabled.
func (g *GUI[K]) MaxPaginationPages() int {
	if !g.pagination.enabled {
		return 1
	}
	return g.pagination.maxPages()
}

// Fill places the filler in the slots start through end, both inclusive, overwriting anything drawn
// in them. An error is returned and nothing is filled if either slot is outside the surface or if end
// is lower than start.
func (g *GUI[K]) Fill(start, end int) error {
	for _, slot := range []int{start, end} {
		if err := g.checkSlot(slot); err != nil {
			return fmt.Errorf("fill: %w", err)
		}
	}
	if end < start {
		return fmt.Errorf("fill slots %d through %d: %w", start, end, ErrInvalidWindow)
	}
	filler := g.filler.Stack()
	for slot := start; slot <= end; slot++ {
		g.setSlot(slot, filler)
	}
	return nil
}

// FillAll places the filler in every slot of the surface.
func (g *GUI[K]) FillAll() {
	filler := g.filler.Stack()
	for slot := range g.size.Slots() {
		g.setSlot(slot, filler)
	}
}

// Open presents the surface of the GUI to its viewer and subscribes the GUI to the events of the host.
// A page must have been selected using ChangePage first.
func (g *GUI[K]) Open() error {
	if g.Destroyed() {
		return ErrDestroyed
	}
	if !g.hasCurrent {
		return ErrNoPage
	}
	g.subscribe()
	if err := g.h.OpenSurface(g.viewer, g.surface); err != nil {
		return fmt.Errorf("open gui: %w", err)
	}
	g.state = StateOpen
	return nil
}

// subscribe subscribes the GUI to the events of the host, replacing an existing subscription.
func (g *GUI[K]) subscribe() {
	if g.h.Subscribed(g) {
		g.h.UnsubscribeAll(g)
	}
	g.h.Subscribe(g)
}

// Close closes the surface of the GUI. If destroy is true, the GUI is destroyed. Otherwise, the GUI
// stays registered and may be opened again.
func (g *GUI[K]) Close(destroy bool) error {
	if destroy {
		g.Destroy()
		return nil
	}
	if g.Destroyed() {
		return ErrDestroyed
	}
	g.h.UnsubscribeAll(g)
	g.state = StateClosed
	if err := g.h.CloseSurface(g.viewer, g.surface); err != nil {
		return fmt.Errorf("close gui: %w", err)
	}
	return nil
}

// Destroy closes the GUI if open, removes it from its registry and unsubscribes it from all events.
// Destroy reports if any event subscription was removed. Destroying a GUI more than once has no effect.
func (g *GUI[K]) Destroy() bool {
	if g.Destroyed() {
		return false
	}
	wasOpen := g.state == StateOpen
	g.state = StateDestroyed
	g.input = nil
	g.reg.Remove(g)
	removed := g.h.UnsubscribeAll(g)
	if wasOpen {
		if err := g.h.CloseSurface(g.viewer, g.surface); err != nil {
			g.log.Error("Failed to close destroyed gui.", "err", err)
		}
	}
	return removed
}

// AwaitTextInput closes the surface of the GUI and calls fn with the next chat message of the viewer,
// which is not sent to other players. The GUI is rendered and opened again on the next tick after fn
// returns.
func (g *GUI[K]) AwaitTextInput(fn TextInput) error {
	if g.Destroyed() {
		return ErrDestroyed
	}
	if fn == nil {
		return fmt.Errorf("await text input: input function must not be nil")
	}
	g.input = fn
	if !g.h.Subscribed(g) {
		g.h.Subscribe(g)
	}
	wasOpen := g.state == StateOpen
	g.state = StateClosed
	if wasOpen {
		if err := g.h.CloseSurface(g.viewer, g.surface); err != nil {
			return fmt.Errorf("await text input: %w", err)
		}
	}
	return nil
}

// AwaitingTextInput checks if the GUI is waiting for a chat message of its viewer.
func (g *GUI[K]) AwaitingTextInput() bool {
	return g.input != nil
}

// HandleClick cancels any click of the viewer on the surface of the GUI and calls the button in the
// clicked slot. Double clicks are ignored.
func (g *GUI[K]) HandleClick(ctx *Context, s Surface, slot int, click ClickType) {
	if ctx.Viewer() != g.viewer || s != g.surface {
		return
	}
	ctx.Cancel()
	if click == ClickDouble {
		return
	}
	b, ok := g.clickable[slot]
	if !ok {
		entry, shown := g.PaginatedEntry(slot)
		if !shown {
			return
		}
		if b, ok = entry.Button(); !ok {
			return
		}
	}
	e := &ClickEvent{Viewer: g.viewer, Slot: slot, Click: click, Button: b}
	guard.Run(g.log, "Button click handler panicked.", func() { b.Click(e) }, "slot", slot, "click", click)
}

// HandleItemPickup cancels items being picked up by the viewer while the GUI is open, unless the
// settings of the GUI allow it.
func (g *GUI[K]) HandleItemPickup(ctx *Context, _ item.Stack) {
	if ctx.Viewer() == g.viewer && g.state == StateOpen && !g.settings.AllowItemPickup {
		ctx.Cancel()
	}
}

// HandleClose reacts to the viewer closing the surface of the GUI according to its settings.
func (g *GUI[K]) HandleClose(viewer uuid.UUID, s Surface) {
	if viewer != g.viewer || s != g.surface || g.state != StateOpen {
		return
	}
	g.state = StateClosed
	if g.input != nil {
		return
	}
	if g.settings.DestroyOnClose {
		g.Destroy()
		return
	}
	if !g.settings.AllowQuickClose {
		g.h.RunNextTick(func() {
			if g.state != StateClosed {
				return
			}
			if err := g.Open(); err != nil {
				g.log.Error("Failed to reopen gui.", "err", err)
			}
		})
	}
}

// HandleChat passes the chat message of the viewer to the text input the GUI is waiting for, if any.
// The message is cancelled and the GUI is opened again on the next tick.
func (g *GUI[K]) HandleChat(ctx *Context, message string) {
	if ctx.Viewer() != g.viewer || g.input == nil {
		return
	}
	ctx.Cancel()
	fn := g.input
	g.input = nil
	guard.Run(g.log, "Text input handler panicked.", func() {
		fn(&ChatEvent{Viewer: g.viewer, Message: message})
	})
	g.h.RunNextTick(func() {
		if g.Destroyed() || g.input != nil {
			return
		}
		if err := g.Render(); err != nil {
			g.log.Error("Failed to render gui after text input.", "err", err)
			return
		}
		if err := g.Open(); err != nil {
			g.log.Error("Failed to reopen gui after text input.", "err", err)
		}
	})
}
