package confetti

import (
	"context"
	"testing"
	"time"

	"github.com/dshills/confetti/internal/event"
	"github.com/dshills/confetti/internal/event/events"
)

func setupListener(t *testing.T) (*Listener, *Controller, *mockHost, event.Bus, func(time.Duration)) {
	t.Helper()
	c, h, clock := setupController(t)

	bus := event.NewBus()
	if err := bus.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	l, err := Listen(bus, c)
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	t.Cleanup(l.Dispose)
	return l, c, h, bus, clock.Advance
}

func publishView(t *testing.T, bus event.Bus, v *mockView) {
	t.Helper()
	payload := events.ViewActiveChanged{}
	if v != nil {
		payload.View = v
	}
	if err := bus.Publish(context.Background(), event.NewEvent(events.TopicViewActiveChanged, payload, "test")); err != nil {
		t.Fatalf("publish view: %v", err)
	}
}

func publishChange(t *testing.T, bus event.Bus, docID string) {
	t.Helper()
	ev := event.NewEvent(events.TopicDocumentChanged, events.DocumentChanged{DocumentID: docID}, "test")
	if err := bus.Publish(context.Background(), ev); err != nil {
		t.Fatalf("publish change: %v", err)
	}
}

func TestListener_TracksActiveView(t *testing.T) {
	_, c, h, bus, _ := setupListener(t)
	v := newMockView("a", 5)

	publishView(t, bus, v)
	if c.ActiveView() != v {
		t.Fatal("active view not recorded")
	}

	publishView(t, bus, nil)
	if c.ActiveView() != nil {
		t.Error("expected no active view")
	}
	if len(h.calls) != 0 {
		t.Errorf("view changes must not touch decorations, got %v", h.calls)
	}
}

func TestListener_ActiveDocumentChangeRefreshes(t *testing.T) {
	_, c, h, bus, advance := setupListener(t)
	v := newMockView("a", 5)
	v.placeBeforeEnd(0)
	publishView(t, bus, v)

	publishChange(t, bus, v.DocumentID())
	if !c.Pending() {
		t.Fatal("expected a pending refresh")
	}
	advance(DefaultDebounce)

	if h.count("create") != 1 {
		t.Errorf("create calls = %d, want 1", h.count("create"))
	}
}

func TestListener_RapidChangesCoalesce(t *testing.T) {
	_, c, _, bus, advance := setupListener(t)
	v := newMockView("a", 5)
	v.placeBeforeEnd(0)
	publishView(t, bus, v)

	for i := 0; i < 10; i++ {
		publishChange(t, bus, v.DocumentID())
		advance(20 * time.Millisecond)
	}
	advance(DefaultDebounce)

	if got := c.Stats().Performed; got != 1 {
		t.Errorf("Performed = %d, want 1", got)
	}
	if got := c.Stats().Requested; got != 10 {
		t.Errorf("Requested = %d, want 10", got)
	}
}

func TestListener_IgnoresOtherDocuments(t *testing.T) {
	_, c, _, bus, _ := setupListener(t)
	publishChange(t, bus, "doc-a") // no active view yet
	if c.Pending() {
		t.Error("change without an active view must be ignored")
	}

	v := newMockView("a", 5)
	publishView(t, bus, v)
	publishChange(t, bus, "doc-other")
	if c.Pending() {
		t.Error("change to another document must be ignored")
	}
}

func TestListener_Dispose(t *testing.T) {
	l, c, _, bus, _ := setupListener(t)
	l.Dispose()

	v := newMockView("a", 5)
	publishView(t, bus, v)
	if c.ActiveView() != nil {
		t.Error("disposed listener still tracks views")
	}
	if bus.Stats().ActiveSubscribers != 0 {
		t.Errorf("ActiveSubscribers = %d, want 0", bus.Stats().ActiveSubscribers)
	}
}

func TestListener_ClosedControllerSwallowsChanges(t *testing.T) {
	_, c, _, bus, _ := setupListener(t)
	v := newMockView("a", 5)
	publishView(t, bus, v)
	c.Close()

	// Close clears the active view, so re-publish it to reach RequestRefresh.
	publishView(t, bus, v)
	publishChange(t, bus, v.DocumentID())
	if bus.Stats().HandlerErrors != 0 {
		t.Errorf("HandlerErrors = %d, want 0", bus.Stats().HandlerErrors)
	}
}
