package gui

import (
	"fmt"

	"github.com/df-mc/invgui/gui/item"
)

// Entry is a single element of a paginated list. It holds either a Button or a static item.
type Entry struct {
	button *Button
	it     item.Stack
}

// ButtonEntry returns an Entry holding b.
func ButtonEntry(b *Button) Entry {
	return Entry{button: b}
}

// ItemEntry returns an Entry holding the static item passed.
func ItemEntry(it item.Stack) Entry {
	return Entry{it: it}
}

// Button returns the button of the entry, if it holds one.
func (e Entry) Button() (*Button, bool) {
	return e.button, e.button != nil
}

// Item returns the stack displayed for the entry: the icon of its button or its static item.
func (e Entry) Item() item.Stack {
	if e.button != nil {
		return e.button.Icon()
	}
	return e.it
}

// window is an inclusive range of slots through which a list of entries is shown one page at a time.
type window struct {
	start, end int
}

// size returns the amount of slots of the window.
func (w window) size() int {
	return w.end - w.start + 1
}

// contains checks if slot lies in the window.
func (w window) contains(slot int) bool {
	return slot >= w.start && slot <= w.end
}

// pages returns the amount of pages needed to show n entries. At least one page always exists.
func (w window) pages(n int) int {
	size := w.size()
	return max(1, (n+size-1)/size)
}

// visible returns the range [from, to) of entry indices shown on the 1-based page passed.
func (w window) visible(page, n int) (from, to int) {
	from = min((page-1)*w.size(), n)
	return from, min(from+w.size(), n)
}

// clampPage clamps page to [1, pages].
func clampPage(page, pages int) int {
	return min(max(page, 1), pages)
}

// PaginatedPage is a Page that shows a list of entries through a window of slots, one page at a time.
type PaginatedPage struct {
	BasePage

	w        window
	filler   *item.Stack
	entries  []Entry
	page     int
	maxPages int
}

// NewPaginatedPage returns a PaginatedPage showing its entries in the slots start through end, both
// inclusive. filler, if not nil, is placed in window slots without an entry. initialize, if not nil, is
// called immediately to add the entries of the page.
func NewPaginatedPage(start, end int, filler *item.Stack, initialize func(p *PaginatedPage)) (*PaginatedPage, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("new paginated page: window %d..%d: %w", start, end, ErrInvalidWindow)
	}
	p := &PaginatedPage{w: window{start: start, end: end}, filler: filler, page: 1, maxPages: 1}
	if initialize != nil {
		initialize(p)
	}
	return p, nil
}

// AddPaginatedButton appends a button to the entries of the page.
func (p *PaginatedPage) AddPaginatedButton(b *Button) {
	p.addEntry(ButtonEntry(b))
}

// AddPaginatedItem appends a static item to the entries of the page.
func (p *PaginatedPage) AddPaginatedItem(it item.Stack) {
	p.addEntry(ItemEntry(it))
}

func (p *PaginatedPage) addEntry(e Entry) {
	p.entries = append(p.entries, e)
	p.maxPages = p.w.pages(len(p.entries))
}

// ClearEntries removes all entries of the page and resets it to the first page.
func (p *PaginatedPage) ClearEntries() {
	p.entries = p.entries[:0]
	p.page, p.maxPages = 1, 1
}

// Generate places the entries of the current page in the window of the page. Window slots from a
// previous call are cleared first.
func (p *PaginatedPage) Generate() {
	for slot := p.w.start; slot <= p.w.end; slot++ {
		p.RemoveButton(slot)
		p.RemoveItem(slot)
		if p.filler != nil {
			p.AddItem(slot, *p.filler)
		}
	}
	from, to := p.w.visible(p.page, len(p.entries))
	for i, e := range p.entries[from:to] {
		slot := p.w.start + i
		if b, ok := e.Button(); ok {
			p.RemoveItem(slot)
			p.AddButton(slot, b)
			continue
		}
		p.AddItem(slot, e.Item())
	}
	p.BasePage.Generate()
}

// NextPage moves to the next page, unless the page is already the last one.
func (p *PaginatedPage) NextPage() {
	p.page = clampPage(p.page+1, p.maxPages)
}

// PreviousPage moves to the previous page, unless the page is already the first one.
func (p *PaginatedPage) PreviousPage() {
	p.page = clampPage(p.page-1, p.maxPages)
}

// Page returns the current 1-based page.
func (p *PaginatedPage) Page() int {
	return p.page
}

// MaxPages returns the amount of pages needed to show all entries.
func (p *PaginatedPage) MaxPages() int {
	return p.maxPages
}

// WindowSize returns the amount of slots in the window of the page.
func (p *PaginatedPage) WindowSize() int {
	return p.w.size()
}

// Entries returns a copy of the entries of the page.
func (p *PaginatedPage) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}
