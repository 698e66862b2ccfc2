package gui

import (
	"fmt"
	"strings"
)

// Size is the amount of slots of a GUI surface. Surfaces are made up of rows of nine slots.
type Size int

const (
	SizeTiny       Size = 9
	SizeExtraSmall Size = 18
	SizeSmall      Size = 27
	SizeMedium     Size = 36
	SizeLarge      Size = 45
	SizeExtraLarge Size = 54
)

var sizeNames = map[Size]string{
	SizeTiny:       "tiny",
	SizeExtraSmall: "extra_small",
	SizeSmall:      "small",
	SizeMedium:     "medium",
	SizeLarge:      "large",
	SizeExtraLarge: "extra_large",
}

// Slots returns the amount of slots of the size.
func (s Size) Slots() int {
	return int(s)
}

// Rows returns the amount of rows of nine slots of the size.
func (s Size) Rows() int {
	return int(s) / 9
}

// Valid checks if s is one of the predefined sizes.
func (s Size) Valid() bool {
	_, ok := sizeNames[s]
	return ok
}

// String implements fmt.Stringer.
func (s Size) String() string {
	if name, ok := sizeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Size(%d)", int(s))
}

// ParseSize parses a size from its name, such as "small" or "EXTRA_LARGE". Spaces and dashes are
// accepted in place of underscores.
func ParseSize(name string) (Size, bool) {
	key := normaliseName(name)
	for s, n := range sizeNames {
		if n == key {
			return s, true
		}
	}
	return 0, false
}

func normaliseName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}
