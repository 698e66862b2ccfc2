package gui

import (
	"strings"

	"github.com/df-mc/invgui/gui/item"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filler is the background tile placed in every slot of a GUI that holds no item or button. Fillers are
// stained-glass panes that show no tooltip.
type Filler struct {
	name string
}

var (
	FillerBlack     = Filler{name: "black"}
	FillerGray      = Filler{name: "gray"}
	FillerLightGray = Filler{name: "light_gray"}
	FillerWhite     = Filler{name: "white"}
	FillerRed       = Filler{name: "red"}
	FillerBrown     = Filler{name: "brown"}
	FillerGreen     = Filler{name: "green"}
	FillerLime      = Filler{name: "lime"}
	FillerBlue      = Filler{name: "blue"}
	FillerLightBlue = Filler{name: "light_blue"}
	FillerCyan      = Filler{name: "cyan"}
	FillerYellow    = Filler{name: "yellow"}
	FillerOrange    = Filler{name: "orange"}
	FillerPurple    = Filler{name: "purple"}
	FillerPink      = Filler{name: "pink"}
	FillerMagenta   = Filler{name: "magenta"}
)

// Fillers returns all predefined fillers.
func Fillers() []Filler {
	return []Filler{
		FillerBlack, FillerGray, FillerLightGray, FillerWhite,
		FillerRed, FillerBrown, FillerGreen, FillerLime,
		FillerBlue, FillerLightBlue, FillerCyan, FillerYellow,
		FillerOrange, FillerPurple, FillerPink, FillerMagenta,
	}
}

// ParseFiller parses a filler from its colour name, such as "light_gray" or "LIGHT GRAY".
func ParseFiller(name string) (Filler, bool) {
	key := normaliseName(name)
	for _, f := range Fillers() {
		if f.name == key {
			return f, true
		}
	}
	return Filler{}, false
}

// Name returns the colour name of the filler, such as "light_gray".
func (f Filler) Name() string {
	if f.name == "" {
		return FillerBlack.name
	}
	return f.name
}

// DisplayName returns the colour name of the filler in title case, such as "Light Gray".
func (f Filler) DisplayName() string {
	return cases.Title(language.English).String(strings.ReplaceAll(f.Name(), "_", " "))
}

// Material returns the material of the pane used by the filler.
func (f Filler) Material() string {
	return f.Name() + "_stained_glass_pane"
}

// Stack returns the item stack placed in filled slots.
func (f Filler) Stack() item.Stack {
	return item.NewStack(f.Material(), 1).WithTooltipHidden()
}

// String implements fmt.Stringer.
func (f Filler) String() string {
	return f.Name()
}
