// Command guiview opens a demo shop GUI in the terminal, using the in-process GUI host. The arrow keys
// move the cursor over the slots of the GUI and enter clicks the selected slot.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/df-mc/invgui/gui"
	"github.com/df-mc/invgui/gui/host"
	"github.com/google/uuid"
)

func main() {
	var (
		configPath string
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "gui.toml", "path of the gui configuration file")
	flag.BoolVar(&verbose, "v", false, "show debug logging")
	flag.Parse()

	logs := newLogBuffer(6)
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: level}))

	uc, err := gui.LoadUserConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	conf, err := uc.Config(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
		os.Exit(1)
	}

	h := host.Config{Log: log}.New()
	reg := gui.NewRegistry()
	defer reg.CleanupAll()

	m := newModel(h, reg, uuid.New(), conf, logs)
	if err := m.openShop(); err != nil {
		fmt.Fprintf(os.Stderr, "error opening shop: %v\n", err)
		os.Exit(1)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running viewer: %v\n", err)
		os.Exit(1)
	}
}
