package gui_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/df-mc/invgui/gui"
	"github.com/df-mc/invgui/gui/host"
	"github.com/df-mc/invgui/gui/inventory"
	"github.com/df-mc/invgui/gui/item"
	"github.com/google/uuid"
)

type page int

const (
	pageMain page = iota
	pageShop
	pageSettings
)

var allPages = []page{pageMain, pageShop, pageSettings}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newHost() *host.Host {
	return host.Config{Log: discardLogger()}.New()
}

func newGUI(t *testing.T, reg *gui.Registry, h *host.Host, viewer uuid.UUID, conf gui.Config) *gui.GUI[page] {
	t.Helper()
	g, err := gui.New(reg, h, viewer, allPages, conf)
	if err != nil {
		t.Fatalf("new gui: %v", err)
	}
	return g
}

func mustRegister(t *testing.T, g *gui.GUI[page], key page, fn gui.RenderFunc[page]) {
	t.Helper()
	if err := g.RegisterPage(key, fn); err != nil {
		t.Fatalf("register page %v: %v", key, err)
	}
}

func emptyPage(*gui.GUI[page]) error { return nil }

func slotItem(t *testing.T, g *gui.GUI[page], slot int) item.Stack {
	t.Helper()
	it, err := g.Surface().Item(slot)
	if err != nil {
		t.Fatalf("item in slot %d: %v", slot, err)
	}
	return it
}

func checksum(g *gui.GUI[page]) uint64 {
	return g.Surface().(*inventory.Inventory).Checksum()
}

func TestNewAppliesDefaults(t *testing.T) {
	g := newGUI(t, gui.NewRegistry(), newHost(), uuid.New(), gui.Config{Title: "Menu"})
	if g.Size() != gui.SizeSmall || g.Surface().Size() != 27 {
		t.Fatalf("size = %v (%d slots), want small", g.Size(), g.Surface().Size())
	}
	if g.Surface().Title() != "Menu" {
		t.Fatalf("title = %q, want Menu", g.Surface().Title())
	}
	if g.Filler() != gui.FillerBlack {
		t.Fatalf("filler = %v, want black", g.Filler())
	}
	if g.Settings() != gui.DefaultSettings() {
		t.Fatalf("settings = %+v, want defaults", g.Settings())
	}
	if g.State() != gui.StateUnopened {
		t.Fatalf("state = %v, want unopened", g.State())
	}
}

func TestNewErrors(t *testing.T) {
	reg, h := gui.NewRegistry(), newHost()
	if _, err := gui.New(reg, h, uuid.New(), allPages, gui.Config{Size: 10}); !errors.Is(err, gui.ErrInvalidSize) {
		t.Fatalf("New with size 10 = %v, want ErrInvalidSize", err)
	}
	if _, err := gui.New(reg, h, uuid.New(), []page{}, gui.Config{}); err == nil {
		t.Fatalf("expected New with empty key domain to fail")
	}
	if reg.Len() != 0 {
		t.Fatalf("failed constructions registered %d guis", reg.Len())
	}
}

func TestPageErrors(t *testing.T) {
	g := newGUI(t, gui.NewRegistry(), newHost(), uuid.New(), gui.Config{})
	if err := g.Render(); !errors.Is(err, gui.ErrNoPage) {
		t.Fatalf("Render without page = %v, want ErrNoPage", err)
	}
	if err := g.Open(); !errors.Is(err, gui.ErrNoPage) {
		t.Fatalf("Open without page = %v, want ErrNoPage", err)
	}
	if err := g.ChangePage(pageShop); !errors.Is(err, gui.ErrUnknownPage) {
		t.Fatalf("ChangePage to unregistered page = %v, want ErrUnknownPage", err)
	}
	if err := g.RegisterPage(page(42), emptyPage); !errors.Is(err, gui.ErrUnknownPage) {
		t.Fatalf("RegisterPage outside key domain = %v, want ErrUnknownPage", err)
	}
	if err := g.RegisterPage(pageMain, nil); err == nil {
		t.Fatalf("expected RegisterPage with nil function to fail")
	}
	if _, ok := g.Current(); ok {
		t.Fatalf("expected no current page")
	}
}

func TestSlotBounds(t *testing.T) {
	g := newGUI(t, gui.NewRegistry(), newHost(), uuid.New(), gui.Config{Size: gui.SizeTiny})
	for _, slot := range []int{-1, 9, 100} {
		if err := g.AddButton(slot, gui.NewButton(0, item.NewStack("stone", 1), nil)); !errors.Is(err, gui.ErrSlotOutOfRange) {
			t.Fatalf("AddButton(%d) = %v, want ErrSlotOutOfRange", slot, err)
		}
		if err := g.AddItem(slot, item.NewStack("stone", 1)); !errors.Is(err, gui.ErrSlotOutOfRange) {
			t.Fatalf("AddItem(%d) = %v, want ErrSlotOutOfRange", slot, err)
		}
	}
	if err := g.AddItem(8, item.NewStack("stone", 1)); err != nil {
		t.Fatalf("AddItem(8): %v", err)
	}
}

func TestRenderFillsAndIsIdempotent(t *testing.T) {
	g := newGUI(t, gui.NewRegistry(), newHost(), uuid.New(), gui.Config{})
	mustRegister(t, g, pageMain, func(g *gui.GUI[page]) error {
		g.AddPaginatedItem(item.NewStack("apple", 1))
		g.AddPaginatedItem(item.NewStack("bread", 2))
		if err := g.EnablePagination(9, 17, 18, 26); err != nil {
			return err
		}
		return g.AddItem(4, item.NewStack("clock", 1))
	})
	if err := g.ChangePage(pageMain); err != nil {
		t.Fatalf("change page: %v", err)
	}
	filler := gui.FillerBlack.Stack()
	if got := slotItem(t, g, 0); !got.Equal(filler) {
		t.Fatalf("slot 0 = %v, want filler", got)
	}
	if got := slotItem(t, g, 4); got.Material() != "clock" {
		t.Fatalf("slot 4 = %v, want clock", got)
	}

	before := checksum(g)
	for range 3 {
		if err := g.Render(); err != nil {
			t.Fatalf("render: %v", err)
		}
	}
	if after := checksum(g); after != before {
		t.Fatalf("checksum changed across renders: %x != %x", after, before)
	}
	if n := len(g.PaginatedEntries()); n != 2 {
		t.Fatalf("paginated entries = %d after repeated renders, want 2", n)
	}
}

func TestButtonWinsOverItem(t *testing.T) {
	g := newGUI(t, gui.NewRegistry(), newHost(), uuid.New(), gui.Config{})
	mustRegister(t, g, pageMain, func(g *gui.GUI[page]) error {
		return errors.Join(
			g.AddButton(5, gui.NewButton(0, item.NewStack("diamond", 1), nil)),
			g.AddItem(5, item.NewStack("stone", 1)),
		)
	})
	if err := g.ChangePage(pageMain); err != nil {
		t.Fatalf("change page: %v", err)
	}
	if got := slotItem(t, g, 5); got.Material() != "diamond" {
		t.Fatalf("slot 5 = %v, want diamond button icon", got)
	}
	if b := g.Buttons()[5]; b == nil || b.Slot() != 5 {
		t.Fatalf("expected button slot to be updated to 5")
	}
}

func TestSetFillerChangesRender(t *testing.T) {
	g := newGUI(t, gui.NewRegistry(), newHost(), uuid.New(), gui.Config{})
	mustRegister(t, g, pageMain, emptyPage)
	if err := g.ChangePage(pageMain); err != nil {
		t.Fatalf("change page: %v", err)
	}
	g.SetFiller(gui.FillerLightBlue)
	if err := g.Fill(0, 4); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got := slotItem(t, g, 4); got.Material() != "light_blue_stained_glass_pane" {
		t.Fatalf("slot 4 = %v, want light blue pane", got)
	}
	if got := slotItem(t, g, 5); got.Material() != "black_stained_glass_pane" {
		t.Fatalf("slot 5 = %v, want black pane", got)
	}
	if !slotItem(t, g, 0).TooltipHidden() {
		t.Fatalf("expected filler tooltip to be hidden")
	}
}

func TestFillRejectsSlotsOutsideSurface(t *testing.T) {
	g := newGUI(t, gui.NewRegistry(), newHost(), uuid.New(), gui.Config{})
	mustRegister(t, g, pageMain, func(g *gui.GUI[page]) error {
		return g.AddItem(26, item.NewStack("stone", 1))
	})
	if err := g.ChangePage(pageMain); err != nil {
		t.Fatalf("change page: %v", err)
	}
	g.SetFiller(gui.FillerRed)
	before := checksum(g)
	cases := map[string][2]int{
		"negative start": {-1, 30},
		"end past size":  {0, 27},
		"both outside":   {-5, 100},
	}
	for name, c := range cases {
		if err := g.Fill(c[0], c[1]); !errors.Is(err, gui.ErrSlotOutOfRange) {
			t.Fatalf("%s: Fill(%d, %d) = %v, want ErrSlotOutOfRange", name, c[0], c[1], err)
		}
	}
	if err := g.Fill(5, 2); !errors.Is(err, gui.ErrInvalidWindow) {
		t.Fatalf("Fill(5, 2) = %v, want ErrInvalidWindow", err)
	}
	if checksum(g) != before {
		t.Fatalf("rejected fill changed the surface")
	}
	if got := slotItem(t, g, 26); got.Material() != "stone" {
		t.Fatalf("slot 26 = %v, want stone", got)
	}
}

func TestChangePageKeepsPreviousOnRenderFailure(t *testing.T) {
	g := newGUI(t, gui.NewRegistry(), newHost(), uuid.New(), gui.Config{})
	mustRegister(t, g, pageMain, func(g *gui.GUI[page]) error {
		return g.AddItem(4, item.NewStack("compass", 1))
	})
	mustRegister(t, g, pageShop, func(g *gui.GUI[page]) error {
		return g.AddItem(99, item.NewStack("emerald", 1))
	})
	if err := g.ChangePage(pageMain); err != nil {
		t.Fatalf("change page: %v", err)
	}
	for range 2 {
		if err := g.ChangePage(pageShop); !errors.Is(err, gui.ErrSlotOutOfRange) {
			t.Fatalf("ChangePage to failing page = %v, want ErrSlotOutOfRange", err)
		}
	}
	if cur, ok := g.Current(); !ok || cur != pageMain {
		t.Fatalf("current page = %v, %v, want main", cur, ok)
	}
	if n := len(g.History()); n != 0 {
		t.Fatalf("history has %d entries after failed changes, want 0", n)
	}
	if got := slotItem(t, g, 4); got.Material() != "compass" {
		t.Fatalf("slot 4 = %v, want main page rendered again", got)
	}

	fresh := newGUI(t, gui.NewRegistry(), newHost(), uuid.New(), gui.Config{})
	mustRegister(t, fresh, pageShop, func(g *gui.GUI[page]) error {
		return g.AddItem(99, item.NewStack("emerald", 1))
	})
	if err := fresh.ChangePage(pageShop); err == nil {
		t.Fatalf("expected failing first page to return an error")
	}
	if _, ok := fresh.Current(); ok {
		t.Fatalf("failing first page became current")
	}
}

func TestNavigationHistory(t *testing.T) {
	g := newGUI(t, gui.NewRegistry(), newHost(), uuid.New(), gui.Config{})
	for _, key := range allPages {
		mustRegister(t, g, key, emptyPage)
	}
	for _, key := range []page{pageMain, pageShop, pageSettings} {
		if err := g.ChangePage(key); err != nil {
			t.Fatalf("change page %v: %v", key, err)
		}
	}
	if h := g.History(); len(h) != 2 || h[0] != pageMain || h[1] != pageShop {
		t.Fatalf("history = %v, want [main shop]", h)
	}
	for _, want := range []page{pageShop, pageMain, pageMain} {
		if err := g.ChangePageToPrevious(); err != nil {
			t.Fatalf("change to previous page: %v", err)
		}
		if cur, _ := g.Current(); cur != want {
			t.Fatalf("current page = %v, want %v", cur, want)
		}
	}
	if len(g.History()) != 0 {
		t.Fatalf("history = %v, want empty", g.History())
	}
}

func TestChangePageClearsContents(t *testing.T) {
	g := newGUI(t, gui.NewRegistry(), newHost(), uuid.New(), gui.Config{})
	mustRegister(t, g, pageMain, emptyPage)
	mustRegister(t, g, pageShop, emptyPage)
	if err := g.ChangePage(pageMain); err != nil {
		t.Fatalf("change page: %v", err)
	}
	_ = g.AddButton(1, gui.NewButton(0, item.NewStack("emerald", 1), nil))
	_ = g.AddItem(2, item.NewStack("stone", 1))
	g.AddPaginatedItem(item.NewStack("apple", 1))
	if err := g.ChangePage(pageShop); err != nil {
		t.Fatalf("change page: %v", err)
	}
	if len(g.Buttons()) != 0 || len(g.Items()) != 0 || len(g.PaginatedEntries()) != 0 {
		t.Fatalf("contents of previous page were kept")
	}
	if got := slotItem(t, g, 1); got.Material() == "emerald" {
		t.Fatalf("button of previous page is still drawn")
	}
}

func TestClickRouting(t *testing.T) {
	reg, h, viewer := gui.NewRegistry(), newHost(), uuid.New()
	g := newGUI(t, reg, h, viewer, gui.Config{})
	clicks := 0
	var last *gui.ClickEvent
	mustRegister(t, g, pageMain, func(g *gui.GUI[page]) error {
		return g.AddButton(13, gui.NewButton(0, item.NewStack("emerald", 1), func(e *gui.ClickEvent) {
			clicks++
			last = e
		}))
	})
	if err := g.ChangePage(pageMain); err != nil {
		t.Fatalf("change page: %v", err)
	}
	if err := g.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}

	cancelled, err := h.Click(viewer, 13, gui.ClickShiftLeft)
	if err != nil || !cancelled {
		t.Fatalf("Click(13) = %v, %v, want cancelled", cancelled, err)
	}
	if clicks != 1 || last.Slot != 13 || last.Click != gui.ClickShiftLeft || last.Viewer != viewer {
		t.Fatalf("button called %d times with %+v", clicks, last)
	}
	if cancelled, _ := h.Click(viewer, 13, gui.ClickDouble); !cancelled || clicks != 1 {
		t.Fatalf("double click: cancelled = %v, clicks = %d, want cancelled without call", cancelled, clicks)
	}
	if cancelled, _ := h.Click(viewer, 0, gui.ClickLeft); !cancelled || clicks != 1 {
		t.Fatalf("filler click: cancelled = %v, clicks = %d, want cancelled without call", cancelled, clicks)
	}

	other := gui.NewContext(uuid.New())
	g.HandleClick(other, g.Surface(), 13, gui.ClickLeft)
	if other.Cancelled() || clicks != 1 {
		t.Fatalf("click by another viewer was handled")
	}
}

func TestClickPanicIsLogged(t *testing.T) {
	buf := &bytes.Buffer{}
	reg, h, viewer := gui.NewRegistry(), newHost(), uuid.New()
	g := newGUI(t, reg, h, viewer, gui.Config{Log: slog.New(slog.NewTextHandler(buf, nil))})
	ok := 0
	mustRegister(t, g, pageMain, func(g *gui.GUI[page]) error {
		return errors.Join(
			g.AddButton(0, gui.NewButton(0, item.NewStack("tnt", 1), func(*gui.ClickEvent) { panic("boom") })),
			g.AddButton(1, gui.NewButton(0, item.NewStack("stone", 1), func(*gui.ClickEvent) { ok++ })),
		)
	})
	_ = g.ChangePage(pageMain)
	_ = g.Open()

	if cancelled, err := h.Click(viewer, 0, gui.ClickLeft); err != nil || !cancelled {
		t.Fatalf("Click(0) = %v, %v, want cancelled", cancelled, err)
	}
	out := buf.String()
	for _, want := range []string{"panic=boom", "slot=0", "subsystem=gui", "level=ERROR"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q does not contain %q", out, want)
		}
	}
	_, _ = h.Click(viewer, 1, gui.ClickLeft)
	if ok != 1 {
		t.Fatalf("button after panic was called %d times, want 1", ok)
	}
}

func TestItemPickup(t *testing.T) {
	reg, h, viewer := gui.NewRegistry(), newHost(), uuid.New()
	g := newGUI(t, reg, h, viewer, gui.Config{Settings: &gui.Settings{AllowQuickClose: true}})
	mustRegister(t, g, pageMain, emptyPage)
	_ = g.ChangePage(pageMain)

	apple := item.NewStack("apple", 1)
	if h.Pickup(viewer, apple) {
		t.Fatalf("pickup cancelled before gui was opened")
	}
	_ = g.Open()
	if !h.Pickup(viewer, apple) {
		t.Fatalf("pickup by viewer not cancelled while open")
	}
	if h.Pickup(uuid.New(), apple) {
		t.Fatalf("pickup by another entity cancelled")
	}
	g.SetSettings(gui.Settings{AllowItemPickup: true})
	if h.Pickup(viewer, apple) {
		t.Fatalf("pickup cancelled although allowed")
	}
}

func TestOpenCloseLifecycle(t *testing.T) {
	reg, h, viewer := gui.NewRegistry(), newHost(), uuid.New()
	g := newGUI(t, reg, h, viewer, gui.Config{})
	mustRegister(t, g, pageMain, emptyPage)
	_ = g.ChangePage(pageMain)

	if err := g.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := g.Open(); err != nil {
		t.Fatalf("open twice: %v", err)
	}
	if h.Hub().Len() != 1 {
		t.Fatalf("subscriptions after opening twice = %d, want 1", h.Hub().Len())
	}
	if err := g.Close(false); err != nil {
		t.Fatalf("close: %v", err)
	}
	if g.State() != gui.StateClosed || g.Destroyed() || h.Subscribed(g) {
		t.Fatalf("state after close = %v, subscribed = %v", g.State(), h.Subscribed(g))
	}
	if _, ok := reg.Lookup(viewer); !ok {
		t.Fatalf("closed gui was removed from registry")
	}
	if _, ok := h.Viewing(viewer); ok {
		t.Fatalf("viewer still views surface after close")
	}
	if err := g.Open(); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !g.Destroy() {
		t.Fatalf("Destroy reported no subscriptions removed")
	}
	if g.Destroy() {
		t.Fatalf("second Destroy reported subscriptions removed")
	}
	if _, ok := h.Viewing(viewer); ok {
		t.Fatalf("destroying an open gui did not close its surface")
	}
	if err := g.Open(); !errors.Is(err, gui.ErrDestroyed) {
		t.Fatalf("Open after destroy = %v, want ErrDestroyed", err)
	}
	if err := g.Render(); !errors.Is(err, gui.ErrDestroyed) {
		t.Fatalf("Render after destroy = %v, want ErrDestroyed", err)
	}
}

func TestStateString(t *testing.T) {
	cases := map[gui.State]string{
		gui.StateUnopened:  "unopened",
		gui.StateOpen:      "open",
		gui.StateClosed:    "closed",
		gui.StateDestroyed: "destroyed",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Fatalf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}
