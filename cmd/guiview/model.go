package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/df-mc/invgui/gui"
	"github.com/df-mc/invgui/gui/host"
	"github.com/google/uuid"
)

const tickRate = time.Second / 20

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cellStyle   = lipgloss.NewStyle().Width(4).Align(lipgloss.Center)
	fillerStyle = cellStyle.Foreground(lipgloss.Color("238"))
	itemStyle   = cellStyle.Foreground(lipgloss.Color("252"))
	cursorStyle = cellStyle.Background(lipgloss.Color("205")).Foreground(lipgloss.Color("0"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	logStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type tickMsg time.Time

// model is the bubbletea model of the viewer. It acts as the player viewing the shop GUI.
type model struct {
	h      *host.Host
	reg    *gui.Registry
	viewer uuid.UUID
	conf   gui.Config
	logs   *logBuffer

	shop   *shop
	cursor int
	input  textinput.Model
	status string
}

func newModel(h *host.Host, reg *gui.Registry, viewer uuid.UUID, conf gui.Config, logs *logBuffer) *model {
	ti := textinput.New()
	ti.Placeholder = "New shop name..."
	ti.CharLimit = 32
	ti.Width = 32
	return &model{h: h, reg: reg, viewer: viewer, conf: conf, logs: logs, input: ti}
}

// openShop creates a new shop GUI for the viewer, replacing any GUI it had before.
func (m *model) openShop() error {
	s, err := newShop(m.reg, m.h, m.viewer, m.conf)
	if err != nil {
		return fmt.Errorf("open shop: %w", err)
	}
	m.shop, m.cursor = s, 0
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init ...
func (m *model) Init() tea.Cmd {
	return tick()
}

// Update ...
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.h.Step(context.Background())
		m.syncInput()
		return m, tick()
	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m *model) syncInput() {
	awaiting := m.shop != nil && m.shop.g.AwaitingTextInput()
	switch {
	case awaiting && !m.input.Focused():
		m.input.SetValue("")
		m.input.Focus()
	case !awaiting && m.input.Focused():
		m.input.Blur()
	}
}

func (m *model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		message := strings.TrimSpace(m.input.Value())
		if message == "" {
			return m, nil
		}
		m.h.Chat(m.viewer, message)
		m.input.Blur()
		m.status = "sent " + message
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	size := m.size()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left", "h":
		if m.cursor%9 > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor%9 < 8 && m.cursor+1 < size {
			m.cursor++
		}
	case "up", "k":
		if m.cursor >= 9 {
			m.cursor -= 9
		}
	case "down", "j":
		if m.cursor+9 < size {
			m.cursor += 9
		}
	case "enter", " ":
		m.click(gui.ClickLeft)
	case "r":
		m.click(gui.ClickRight)
	case "s":
		m.click(gui.ClickShiftLeft)
	case "esc":
		if err := m.h.CloseBy(m.viewer); err != nil {
			m.status = err.Error()
		} else {
			m.status = "closed"
		}
	case "o":
		if _, ok := m.h.Viewing(m.viewer); ok {
			return m, nil
		}
		if m.shop != nil && !m.shop.g.Destroyed() {
			if err := m.shop.g.Open(); err != nil {
				m.status = err.Error()
			}
			return m, nil
		}
		if err := m.openShop(); err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

func (m *model) click(click gui.ClickType) {
	cancelled, err := m.h.Click(m.viewer, m.cursor, click)
	switch {
	case err != nil:
		m.status = err.Error()
	case cancelled:
		m.status = fmt.Sprintf("%v click on slot %d", click, m.cursor)
	default:
		m.status = fmt.Sprintf("slot %d is not part of a GUI", m.cursor)
	}
}

func (m *model) size() int {
	if s, ok := m.h.Viewing(m.viewer); ok {
		return s.Size()
	}
	return 0
}

// View ...
func (m *model) View() string {
	var b strings.Builder
	s, ok := m.h.Viewing(m.viewer)
	switch {
	case !ok && m.input.Focused():
		b.WriteString(titleStyle.Render("Chat") + "\n\n")
		b.WriteString("> " + m.input.View() + "\n")
		b.WriteString(helpStyle.Render("enter: send") + "\n")
		m.writeFooter(&b)
		return b.String()
	case !ok:
		b.WriteString(titleStyle.Render("No GUI open") + "\n\n")
		b.WriteString(helpStyle.Render("o: open shop • q: quit") + "\n")
		m.writeFooter(&b)
		return b.String()
	}
	if m.cursor >= s.Size() {
		m.cursor = 0
	}
	b.WriteString(titleStyle.Render(plain(s.Title())) + "\n\n")
	for row := 0; row < s.Size()/9; row++ {
		cells := make([]string, 9)
		for col := range cells {
			cells[col] = m.cell(s, row*9+col)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}
	b.WriteString("\n" + m.details(s) + "\n")
	if m.input.Focused() {
		b.WriteString("> " + m.input.View() + "\n")
		b.WriteString(helpStyle.Render("enter: send") + "\n")
	} else {
		b.WriteString(helpStyle.Render("arrows: move • enter: click • r: right click • s: shift click • esc: close • q: quit") + "\n")
	}
	m.writeFooter(&b)
	return b.String()
}

func (m *model) cell(s gui.Surface, slot int) string {
	it, _ := s.Item(slot)
	label, style := "·", itemStyle
	switch {
	case it.Empty():
	case it.TooltipHidden():
		label, style = "▒", fillerStyle
	default:
		label = abbreviate(it.Material())
	}
	if slot == m.cursor {
		style = cursorStyle
	}
	return style.Render(label)
}

func (m *model) details(s gui.Surface) string {
	it, err := s.Item(m.cursor)
	if err != nil || it.Empty() {
		return fmt.Sprintf("slot %d: empty", m.cursor)
	}
	name := it.Material()
	if n := it.CustomName(); n != "" {
		name = plain(n)
	}
	lines := []string{fmt.Sprintf("slot %d: %s x%d", m.cursor, name, it.Count())}
	for _, l := range it.Lore() {
		lines = append(lines, "  "+plain(l))
	}
	return strings.Join(lines, "\n")
}

func (m *model) writeFooter(b *strings.Builder) {
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	for _, l := range m.logs.Lines() {
		b.WriteString(logStyle.Render(l) + "\n")
	}
}

// abbreviate returns a short label for a material, made of the first letters of its words.
func abbreviate(material string) string {
	var label []rune
	for _, w := range strings.Split(material, "_") {
		if w == "" {
			continue
		}
		label = append(label, []rune(strings.ToUpper(w))[0])
		if len(label) == 3 {
			break
		}
	}
	return string(label)
}

// plain strips the formatting codes from s.
func plain(s string) string {
	var b strings.Builder
	skip := false
	for _, r := range s {
		switch {
		case skip:
			skip = false
		case r == '§':
			skip = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
