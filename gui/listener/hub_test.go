package listener

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/df-mc/invgui/gui"
	"github.com/df-mc/invgui/gui/inventory"
	"github.com/df-mc/invgui/gui/item"
	"github.com/google/uuid"
)

type recordingHandler struct {
	gui.NopHandler
	clicks, closes int
	cancel         bool
	panics         bool
}

func (h *recordingHandler) HandleClick(ctx *gui.Context, _ gui.Surface, _ int, _ gui.ClickType) {
	h.clicks++
	if h.panics {
		panic("handler failure")
	}
	if h.cancel {
		ctx.Cancel()
	}
}

func (h *recordingHandler) HandleClose(uuid.UUID, gui.Surface) {
	h.closes++
}

func (h *recordingHandler) HandleChat(ctx *gui.Context, message string) {
	if message == "cancel" {
		ctx.Cancel()
	}
}

func TestHubSubscribeAndUnsubscribe(t *testing.T) {
	hub := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := &recordingHandler{}
	unsubscribe := hub.Subscribe(h)
	hub.Subscribe(h)
	if !hub.Subscribed(h) || hub.Len() != 2 {
		t.Fatalf("expected two subscriptions, got %d", hub.Len())
	}
	unsubscribe()
	unsubscribe()
	if hub.Len() != 1 {
		t.Fatalf("Len() after unsubscribe = %d, want 1", hub.Len())
	}
	if !hub.UnsubscribeAll(h) {
		t.Fatalf("UnsubscribeAll reported no subscription removed")
	}
	if hub.Subscribed(h) || hub.UnsubscribeAll(h) {
		t.Fatalf("expected no subscriptions left")
	}
}

func TestHubStopsOnCancel(t *testing.T) {
	hub := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	first, second := &recordingHandler{cancel: true}, &recordingHandler{}
	hub.Subscribe(first)
	hub.Subscribe(second)

	s := inventory.New(9, "", nil)
	if !hub.Click(uuid.New(), s, 0, gui.ClickLeft) {
		t.Fatalf("expected click to be cancelled")
	}
	if first.clicks != 1 || second.clicks != 0 {
		t.Fatalf("clicks = %d, %d, want 1, 0", first.clicks, second.clicks)
	}

	hub.Close(uuid.New(), s)
	if first.closes != 1 || second.closes != 1 {
		t.Fatalf("closes = %d, %d, want every handler called once", first.closes, second.closes)
	}
	if !hub.Chat(uuid.New(), "cancel") || hub.Chat(uuid.New(), "hello") {
		t.Fatalf("unexpected chat cancellation")
	}
	if hub.ItemPickup(uuid.New(), item.NewStack("diamond", 1)) {
		t.Fatalf("expected pickup not to be cancelled")
	}
}

func TestHubIsolatesPanics(t *testing.T) {
	buf := &bytes.Buffer{}
	hub := New(slog.New(slog.NewTextHandler(buf, nil)))
	bad, good := &recordingHandler{panics: true}, &recordingHandler{}
	hub.Subscribe(bad)
	hub.Subscribe(good)

	hub.Click(uuid.New(), inventory.New(9, "", nil), 4, gui.ClickRight)
	if good.clicks != 1 {
		t.Fatalf("handler after panicking handler was not called")
	}
	if out := buf.String(); !strings.Contains(out, "handler failure") || !strings.Contains(out, "subsystem=gui.listener") {
		t.Fatalf("panic was not logged: %s", out)
	}
}
