package gui

import "errors"

var (
	// ErrNoPage is returned when a GUI is rendered or opened before a page was selected.
	ErrNoPage = errors.New("gui has no current page")
	// ErrUnknownPage is returned when a key outside the key domain, or one without a registered page,
	// is used.
	ErrUnknownPage = errors.New("unknown page")
	// ErrSlotOutOfRange is returned when a slot lies outside the surface of a GUI.
	ErrSlotOutOfRange = errors.New("slot out of range")
	// ErrDestroyed is returned when a destroyed GUI is rendered or opened.
	ErrDestroyed = errors.New("gui is destroyed")
	// ErrInvalidWindow is returned when a pagination window or its navigation slots are invalid.
	ErrInvalidWindow = errors.New("invalid pagination window")
	// ErrInvalidSize is returned when a GUI is created with a size that is not one of the predefined
	// sizes.
	ErrInvalidSize = errors.New("invalid gui size")
)
