package inventory

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/df-mc/invgui/gui/item"
)

// ErrSlotOutOfRange is returned by any methods on inventory when a slot is passed which is not within the
// range of valid values for the inventory.
var ErrSlotOutOfRange = errors.New("slot is out of range")

// Inventory is a fixed size grid of item stacks that may be presented to viewers as a GUI surface. It is
// safe for concurrent use.
type Inventory struct {
	mu     sync.RWMutex
	title  string
	slots  []item.Stack
	hashes []uint64

	f func(slot int, before, after item.Stack)
}

// New creates a new inventory with the size and title passed. The function f is called for every slot
// whose displayed stack changes. f may be nil. New panics if size is not positive.
func New(size int, title string, f func(slot int, before, after item.Stack)) *Inventory {
	if size <= 0 {
		panic("inventory: size must be at least 1")
	}
	if f == nil {
		f = func(int, item.Stack, item.Stack) {}
	}
	return &Inventory{
		title:  title,
		slots:  make([]item.Stack, size),
		hashes: make([]uint64, size),
		f:      f,
	}
}

// Size returns the amount of slots in the inventory.
func (inv *Inventory) Size() int {
	return len(inv.slots)
}

// Title returns the title shown above the inventory.
func (inv *Inventory) Title() string {
	return inv.title
}

// Item returns the stack in the slot passed. An error is returned if the slot is out of range.
func (inv *Inventory) Item(slot int) (item.Stack, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	if !inv.validSlot(slot) {
		return item.Stack{}, fmt.Errorf("%w: %d (size %d)", ErrSlotOutOfRange, slot, len(inv.slots))
	}
	return inv.slots[slot], nil
}

// SetItem sets the stack in the slot passed. Setting a stack that displays the same as the current one
// does not notify the change function. An error is returned if the slot is out of range.
func (inv *Inventory) SetItem(slot int, it item.Stack) error {
	inv.mu.Lock()
	if !inv.validSlot(slot) {
		inv.mu.Unlock()
		return fmt.Errorf("%w: %d (size %d)", ErrSlotOutOfRange, slot, len(inv.slots))
	}
	h := it.Hash()
	before := inv.slots[slot]
	inv.slots[slot] = it
	changed := inv.hashes[slot] != h || !before.Equal(it)
	inv.hashes[slot] = h
	inv.mu.Unlock()

	if changed {
		inv.f(slot, before, it)
	}
	return nil
}

// Slots returns a copy of all stacks in the inventory, including empty ones.
func (inv *Inventory) Slots() []item.Stack {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return slices.Clone(inv.slots)
}

// Clear empties every slot in the inventory.
func (inv *Inventory) Clear() {
	for slot := range inv.Size() {
		_ = inv.SetItem(slot, item.Stack{})
	}
}

// Checksum returns a digest of everything displayed in the inventory. Two inventories of the same size
// showing the same stacks in the same slots have equal checksums.
func (inv *Inventory) Checksum() uint64 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	d := xxhash.New()
	buf := make([]byte, 0, 16)
	for slot, h := range inv.hashes {
		buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(slot))
		buf = binary.LittleEndian.AppendUint64(buf, h)
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}

// String implements fmt.Stringer.
func (inv *Inventory) String() string {
	return fmt.Sprintf("Inventory{title: %q, size: %d}", inv.title, inv.Size())
}

func (inv *Inventory) validSlot(slot int) bool {
	return slot >= 0 && slot < len(inv.slots)
}
