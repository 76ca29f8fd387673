package editor

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/confetti/internal/event"
	"github.com/dshills/confetti/internal/event/events"
	"github.com/dshills/confetti/internal/host"
	"github.com/dshills/confetti/internal/logging"
)

// Editor owns the open views and publishes focus and edit events.
type Editor struct {
	bus         event.Bus
	decorations *Decorations
	views       []*View
	active      *View
	logger      *logging.Logger
}

// New creates an editor publishing on bus. bus may be nil.
func New(bus event.Bus, logger *logging.Logger) *Editor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Editor{
		bus:         bus,
		decorations: NewDecorations(),
		logger:      logger.WithComponent("editor"),
	}
}

// Decorations returns the decoration store, which implements host.Host.
func (e *Editor) Decorations() *Decorations {
	return e.decorations
}

// Open creates a buffer holding text and a view over it.
// The view is not focused.
func (e *Editor) Open(text string) *View {
	buf := NewBuffer(text)
	buf.OnChange(e.documentChanged)
	v := NewView(buf)
	e.views = append(e.views, v)
	return v
}

// Views returns the open views.
func (e *Editor) Views() []*View {
	return e.views
}

// Active returns the focused view, or nil.
func (e *Editor) Active() *View {
	return e.active
}

// Focus makes v the active view and publishes the change. v may be nil.
func (e *Editor) Focus(v *View) {
	e.active = v
	var hv host.View
	if v != nil {
		hv = v
	}
	e.publish(event.NewEvent(events.TopicViewActiveChanged, events.ViewActiveChanged{View: hv}, "editor"))
}

// FocusNext cycles focus through the open views.
func (e *Editor) FocusNext() {
	if len(e.views) == 0 {
		return
	}
	next := 0
	for i, v := range e.views {
		if v == e.active {
			next = (i + 1) % len(e.views)
			break
		}
	}
	e.Focus(e.views[next])
}

// HandleKey applies a key press to the active view.
// It reports false when the key asks the editor to quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			e.FocusNext()
			return true
		}
	case tcell.KeyCtrlN:
		e.FocusNext()
		return true
	}

	v := e.active
	if v == nil {
		return true
	}
	buf := v.Buffer()

	switch ev.Key() {
	case tcell.KeyRune:
		buf.Insert(string(ev.Rune()))
	case tcell.KeyTab:
		buf.Insert("\t")
	case tcell.KeyEnter:
		buf.Insert("\n")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		buf.DeleteBackward()
	case tcell.KeyDelete:
		buf.DeleteForward()
	case tcell.KeyLeft:
		buf.Move(0, -1)
	case tcell.KeyRight:
		buf.Move(0, 1)
	case tcell.KeyUp:
		buf.Move(-1, 0)
	case tcell.KeyDown:
		buf.Move(1, 0)
	case tcell.KeyHome:
		buf.Home()
	case tcell.KeyEnd:
		buf.End()
	}
	return true
}

func (e *Editor) documentChanged(documentID string, version uint64) {
	e.publish(event.NewEvent(events.TopicDocumentChanged, events.DocumentChanged{
		DocumentID: documentID,
		Version:    version,
	}, "editor"))
}

func (e *Editor) publish(ev any) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(context.Background(), ev); err != nil {
		e.logger.Debug("publish: %v", err)
	}
}
