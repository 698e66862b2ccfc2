package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/df-mc/invgui/gui"
	"github.com/df-mc/invgui/gui/host"
	"github.com/google/uuid"
	"github.com/sandertv/gophertunnel/minecraft/text"
)

func TestLogBufferKeepsLastLines(t *testing.T) {
	b := newLogBuffer(2)
	_, _ = b.Write([]byte("one\ntwo\n"))
	_, _ = b.Write([]byte("three\n"))
	if got := strings.Join(b.Lines(), ","); got != "two,three" {
		t.Fatalf("Lines() = %q, want two,three", got)
	}
}

func TestLabels(t *testing.T) {
	if got := abbreviate("enchanted_golden_apple"); got != "EGA" {
		t.Fatalf("abbreviate = %q, want EGA", got)
	}
	if got := plain(text.Colourf("<red>Close</red>")); got != "Close" {
		t.Fatalf("plain = %q, want Close", got)
	}
}

func TestShopBuyAndBrowse(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := host.Config{Log: log}.New()
	reg := gui.NewRegistry()
	viewer := uuid.New()

	conf := gui.Config{Size: gui.SizeTiny}
	s, err := newShop(reg, h, viewer, conf)
	if err != nil {
		t.Fatalf("new shop: %v", err)
	}
	if s.g.Size() != gui.SizeSmall {
		t.Fatalf("shop size = %v, want small", s.g.Size())
	}
	if _, err := h.Click(viewer, 11, gui.ClickLeft); err != nil {
		t.Fatalf("click browse: %v", err)
	}
	if cur, _ := s.g.Current(); cur != shopCatalogue {
		t.Fatalf("current page = %v, want catalogue", cur)
	}
	if s.g.MaxPaginationPages() != 2 {
		t.Fatalf("max pages = %d, want 2", s.g.MaxPaginationPages())
	}

	before := s.balance
	if _, err := h.Click(viewer, 0, gui.ClickShiftLeft); err != nil {
		t.Fatalf("click offer: %v", err)
	}
	if s.bought != 16 || s.balance != before-16*catalogue[0].price() {
		t.Fatalf("bought %d, balance %d after buying a stack", s.bought, s.balance)
	}
	if _, err := h.Click(viewer, 22, gui.ClickLeft); err != nil {
		t.Fatalf("click back: %v", err)
	}
	if cur, _ := s.g.Current(); cur != shopMain || s.g.PaginationEnabled() {
		t.Fatalf("current page = %v, pagination %v, want main without pagination", cur, s.g.PaginationEnabled())
	}

	if _, err := h.Click(viewer, 15, gui.ClickLeft); err != nil {
		t.Fatalf("click rename: %v", err)
	}
	if !s.g.AwaitingTextInput() {
		t.Fatalf("shop is not awaiting a name")
	}
	h.Chat(viewer, "Bazaar")
	h.Step(context.Background())
	if s.name != "Bazaar" || s.g.State() != gui.StateOpen {
		t.Fatalf("name %q, state %v after renaming", s.name, s.g.State())
	}

	if _, err := h.Click(viewer, 22, gui.ClickLeft); err != nil {
		t.Fatalf("click exit: %v", err)
	}
	if !s.g.Destroyed() || reg.Len() != 0 {
		t.Fatalf("shop not destroyed after exit")
	}
}

func TestOfferPrice(t *testing.T) {
	if p := (offer{"name_tag", 3000, 0.5}).price(); p != 1500 {
		t.Fatalf("price = %d, want 1500", p)
	}
}
