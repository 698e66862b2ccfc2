package gui

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/df-mc/invgui/gui/item"
	"github.com/pelletier/go-toml"
)

// UserConfig is the user configuration of GUIs. It may be stored in a TOML file and can be converted to
// a Config by calling UserConfig.Config().
type UserConfig struct {
	Menu struct {
		// Size is the name of the size of GUIs, such as "small" or "extra_large".
		Size string
		// Filler is the colour name of the filler of GUIs, such as "black" or "light_blue".
		Filler string
		// Title is the title shown above GUIs. It may contain colour tags like <red>.
		Title string
	}
	Behaviour struct {
		// AllowItemPickup specifies if viewers may pick up items while a GUI is open.
		AllowItemPickup bool
		// AllowQuickClose specifies if viewers may close GUIs.
		AllowQuickClose bool
		// DestroyOnClose specifies if GUIs are destroyed when closed by their viewer.
		DestroyOnClose bool
	}
	Pagination struct {
		// PreviousIcon and NextIcon are the materials of the pagination navigation buttons.
		PreviousIcon, NextIcon string
		// PreviousName and NextName are the names of the pagination navigation buttons.
		PreviousName, NextName string
	}
}

// DefaultUserConfig returns a configuration with the default values filled out.
func DefaultUserConfig() UserConfig {
	c := UserConfig{}
	c.Menu.Size = SizeSmall.String()
	c.Menu.Filler = FillerBlack.Name()
	c.Behaviour.AllowItemPickup = true
	c.Behaviour.AllowQuickClose = true
	c.Behaviour.DestroyOnClose = true
	c.Pagination.PreviousIcon = "arrow"
	c.Pagination.NextIcon = "arrow"
	c.Pagination.PreviousName = "<yellow>Previous page</yellow>"
	c.Pagination.NextName = "<yellow>Next page</yellow>"
	return c
}

// LoadUserConfig reads the UserConfig stored in the TOML file at the path passed. Fields missing from
// the file keep their default value. If the file does not exist yet, it is created with the default
// configuration.
func LoadUserConfig(path string) (UserConfig, error) {
	if strings.TrimSpace(path) == "" {
		return UserConfig{}, errors.New("load gui config: path must not be empty")
	}
	c := DefaultUserConfig()
	contents, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return UserConfig{}, fmt.Errorf("read gui config: %w", err)
		}
		return c, c.Save(path)
	}
	if len(contents) != 0 {
		if err := toml.Unmarshal(contents, &c); err != nil {
			return UserConfig{}, fmt.Errorf("decode gui config: %w", err)
		}
	}
	return c, nil
}

// Save writes the UserConfig to the TOML file at the path passed, creating its directory if needed.
func (uc UserConfig) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return fmt.Errorf("create gui config directory: %w", err)
		}
	}
	encoded, err := toml.Marshal(uc)
	if err != nil {
		return fmt.Errorf("encode gui config: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return fmt.Errorf("write gui config: %w", err)
	}
	return nil
}

// Config converts a UserConfig to a Config, so that it may be used for creating GUIs. An error is
// returned if the size is unknown. An unknown filler is logged and replaced with FillerBlack.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	if log == nil {
		log = slog.Default()
	}
	size := SizeSmall
	if name := strings.TrimSpace(uc.Menu.Size); name != "" {
		parsed, ok := ParseSize(name)
		if !ok {
			return Config{}, fmt.Errorf("gui config: size %q: %w", name, ErrInvalidSize)
		}
		size = parsed
	}
	filler := FillerBlack
	if name := strings.TrimSpace(uc.Menu.Filler); name != "" {
		if parsed, ok := ParseFiller(name); ok {
			filler = parsed
		} else {
			log.Warn("Unknown gui filler, using black.", "value", name)
		}
	}
	settings := Settings{
		AllowItemPickup: uc.Behaviour.AllowItemPickup,
		AllowQuickClose: uc.Behaviour.AllowQuickClose,
		DestroyOnClose:  uc.Behaviour.DestroyOnClose,
	}
	prev, next := uc.NavigationIcons()
	return Config{
		Log:          log,
		Size:         size,
		Title:        uc.Menu.Title,
		Filler:       &filler,
		Settings:     &settings,
		PreviousIcon: prev,
		NextIcon:     next,
	}, nil
}

// NavigationIcons returns the icons of the pagination navigation buttons. Icons without a material are
// replaced with the default icons.
func (uc UserConfig) NavigationIcons() (prev, next item.Stack) {
	prev, next = DefaultPreviousIcon(), DefaultNextIcon()
	if m := strings.TrimSpace(uc.Pagination.PreviousIcon); m != "" {
		prev = item.NewStack(m, 1).WithCustomName("%s", uc.Pagination.PreviousName)
	}
	if m := strings.TrimSpace(uc.Pagination.NextIcon); m != "" {
		next = item.NewStack(m, 1).WithCustomName("%s", uc.Pagination.NextName)
	}
	return prev, next
}
