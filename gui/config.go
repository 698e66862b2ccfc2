package gui

import (
	"log/slog"

	"github.com/df-mc/invgui/gui/item"
)

// Settings controls how a GUI reacts to its viewer.
type Settings struct {
	// AllowItemPickup specifies if the viewer may pick up items while the GUI is open.
	AllowItemPickup bool
	// AllowQuickClose specifies if the viewer may close the GUI. If false, a GUI that is closed by its
	// viewer is opened again on the next tick, unless DestroyOnClose is set.
	AllowQuickClose bool
	// DestroyOnClose specifies if the GUI is destroyed when its viewer closes it. This also applies
	// when AllowQuickClose is true.
	DestroyOnClose bool
}

// DefaultSettings returns the Settings used when none are configured. All settings are enabled.
func DefaultSettings() Settings {
	return Settings{AllowItemPickup: true, AllowQuickClose: true, DestroyOnClose: true}
}

// Config contains options for creating a GUI.
type Config struct {
	// Log is the Logger used for diagnostics, such as panics in button callbacks. If nil, the logger of
	// the Host is used.
	Log *slog.Logger
	// Size is the size of the surface of the GUI. If zero, SizeSmall is used.
	Size Size
	// Title is the title shown above the surface. It may be empty.
	Title string
	// Filler is placed in every slot without an item or button. If nil, FillerBlack is used.
	Filler *Filler
	// Settings controls the reaction of the GUI to its viewer. If nil, DefaultSettings is used.
	Settings *Settings
	// PreviousIcon and NextIcon are the icons of the pagination navigation buttons used by
	// GUI.EnablePagination. Empty icons are replaced with a named arrow.
	PreviousIcon, NextIcon item.Stack
}

// DefaultPreviousIcon returns the icon used for the button that moves to the previous pagination page.
func DefaultPreviousIcon() item.Stack {
	return item.NewStack("arrow", 1).WithCustomName("<yellow>Previous page</yellow>")
}

// DefaultNextIcon returns the icon used for the button that moves to the next pagination page.
func DefaultNextIcon() item.Stack {
	return item.NewStack("arrow", 1).WithCustomName("<yellow>Next page</yellow>")
}

// withDefaults returns conf with the zero fields set to their defaults.
func (conf Config) withDefaults(h Host) Config {
	if conf.Log == nil {
		conf.Log = h.Logger()
	}
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Size == 0 {
		conf.Size = SizeSmall
	}
	if conf.Filler == nil {
		f := FillerBlack
		conf.Filler = &f
	}
	if conf.Settings == nil {
		s := DefaultSettings()
		conf.Settings = &s
	}
	if conf.PreviousIcon.Empty() {
		conf.PreviousIcon = DefaultPreviousIcon()
	}
	if conf.NextIcon.Empty() {
		conf.NextIcon = DefaultNextIcon()
	}
	return conf
}
