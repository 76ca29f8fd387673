package editor

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/confetti/internal/event"
	"github.com/dshills/confetti/internal/event/events"
)

func newRunningBus(t *testing.T) event.Bus {
	t.Helper()
	b := event.NewBus()
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestEditor_FocusPublishes(t *testing.T) {
	bus := newRunningBus(t)
	var got []events.ViewActiveChanged
	_, err := event.SubscribeTyped(bus, events.TopicViewActiveChanged,
		func(_ context.Context, e event.Event[events.ViewActiveChanged]) error {
			got = append(got, e.Payload)
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}

	ed := New(bus, nil)
	v := ed.Open("hello")
	ed.Focus(v)
	ed.Focus(nil)

	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	if got[0].View == nil || got[0].View.ID() != v.ID() {
		t.Errorf("first focus = %+v", got[0])
	}
	if got[1].View != nil {
		t.Errorf("nil focus should carry a nil interface, got %#v", got[1].View)
	}
	if ed.Active() != nil {
		t.Error("Active() should be nil")
	}
}

func TestEditor_EditsPublishDocumentChanged(t *testing.T) {
	bus := newRunningBus(t)
	var got []events.DocumentChanged
	_, err := event.SubscribeTyped(bus, events.TopicDocumentChanged,
		func(_ context.Context, e event.Event[events.DocumentChanged]) error {
			got = append(got, e.Payload)
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}

	ed := New(bus, nil)
	v := ed.Open("")
	ed.Focus(v)

	ed.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone))
	ed.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone))
	ed.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))

	if v.Buffer().Text() != "hi" {
		t.Errorf("Text() = %q", v.Buffer().Text())
	}
	if len(got) != 2 {
		t.Fatalf("DocumentChanged events = %d, want 2", len(got))
	}
	if got[1].DocumentID != v.DocumentID() || got[1].Version != 2 {
		t.Errorf("last event = %+v", got[1])
	}
}

func TestEditor_HandleKey(t *testing.T) {
	ed := New(nil, nil)
	v := ed.Open("ab")
	ed.Focus(v)

	keys := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone),
	}
	for _, k := range keys {
		if !ed.HandleKey(k) {
			t.Fatalf("key %v asked to quit", k.Name())
		}
	}
	if v.Buffer().Text() != "b" {
		t.Errorf("Text() = %q, want %q", v.Buffer().Text(), "b")
	}

	if ed.HandleKey(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)) {
		t.Error("Ctrl-Q should quit")
	}
}

func TestEditor_FocusNext(t *testing.T) {
	ed := New(nil, nil)
	a := ed.Open("a")
	b := ed.Open("b")

	ed.FocusNext()
	if ed.Active() != a {
		t.Error("expected first view")
	}
	ed.FocusNext()
	if ed.Active() != b {
		t.Error("expected second view")
	}
	ed.FocusNext()
	if ed.Active() != a {
		t.Error("expected wrap to first view")
	}
}

func TestView_HostGeometry(t *testing.T) {
	v := NewView(NewBuffer("héllo\nx"))
	if v.LineEnd(0).Col != 5 || v.LineEnd(1).Col != 1 {
		t.Errorf("LineEnd = %+v, %+v", v.LineEnd(0), v.LineEnd(1))
	}
	if v.DocumentID() != v.Buffer().ID() {
		t.Error("DocumentID should be the buffer id")
	}
}
