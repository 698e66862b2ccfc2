package item

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sandertv/gophertunnel/minecraft/text"
	"github.com/segmentio/fasthash/fnv1a"
)

// Stack represents a stack of items displayed in a GUI slot. A Stack is a value: methods that modify it
// return a changed copy and leave the original untouched. The zero Stack is an empty slot.
type Stack struct {
	material string
	count    int

	customName  string
	lore        []string
	hideTooltip bool
}

// NewStack returns a Stack of count items of the material passed. Counts below 0 are treated as 0.
func NewStack(material string, count int) Stack {
	if count < 0 {
		count = 0
	}
	return Stack{material: strings.TrimSpace(material), count: count}
}

// Material returns the material identifier of the stack, such as "arrow".
func (s Stack) Material() string {
	return s.material
}

// Count returns the amount of items in the stack.
func (s Stack) Count() int {
	return s.count
}

// Empty checks if the stack holds no items.
func (s Stack) Empty() bool {
	return s.material == "" || s.count == 0
}

// WithCount returns a copy of the stack with the count changed.
func (s Stack) WithCount(count int) Stack {
	if count < 0 {
		count = 0
	}
	s.count = count
	return s
}

// WithCustomName returns a copy of the stack with a custom name. The format string may hold colour tags
// such as <red> which are converted using text.Colourf.
func (s Stack) WithCustomName(format string, a ...any) Stack {
	s.customName = text.Colourf(format, a...)
	return s
}

// CustomName returns the custom name set using WithCustomName, or an empty string.
func (s Stack) CustomName() string {
	return s.customName
}

// WithLore returns a copy of the stack with its lore replaced by the lines passed. Each line may hold
// colour tags.
func (s Stack) WithLore(lines ...string) Stack {
	s.lore = make([]string, len(lines))
	for i, line := range lines {
		s.lore[i] = text.Colourf("%s", line)
	}
	return s
}

// Lore returns the lore lines of the stack.
func (s Stack) Lore() []string {
	return slices.Clone(s.lore)
}

// WithTooltipHidden returns a copy of the stack that shows no tooltip when hovered.
func (s Stack) WithTooltipHidden() Stack {
	s.hideTooltip = true
	return s
}

// TooltipHidden reports if the tooltip of the stack is hidden.
func (s Stack) TooltipHidden() bool {
	return s.hideTooltip
}

// Equal checks if two stacks display the same.
func (s Stack) Equal(o Stack) bool {
	if s.Empty() && o.Empty() {
		return true
	}
	return s.material == o.material &&
		s.count == o.count &&
		s.customName == o.customName &&
		s.hideTooltip == o.hideTooltip &&
		slices.Equal(s.lore, o.lore)
}

// Hash returns a 64-bit hash of everything that affects how the stack is displayed. Stacks that are Equal
// have the same hash.
func (s Stack) Hash() uint64 {
	if s.Empty() {
		return 0
	}
	h := fnv1a.HashString64(s.material)
	h = fnv1a.AddUint64(h, uint64(s.count))
	h = fnv1a.AddString64(h, s.customName)
	for _, line := range s.lore {
		h = fnv1a.AddString64(h, line)
	}
	if s.hideTooltip {
		h = fnv1a.AddUint64(h, 1)
	}
	return h
}

// String implements fmt.Stringer.
func (s Stack) String() string {
	if s.Empty() {
		return "Stack<air>"
	}
	if s.customName != "" {
		return fmt.Sprintf("Stack<%dx %s %q>", s.count, s.material, s.customName)
	}
	return fmt.Sprintf("Stack<%dx %s>", s.count, s.material)
}
