package confetti

import (
	"context"
	"errors"

	"github.com/dshills/confetti/internal/event"
	"github.com/dshills/confetti/internal/event/events"
)

// Listener connects a Controller to the host's event bus.
type Listener struct {
	ctrl *Controller
	subs []event.Subscription
}

// Listen subscribes ctrl to active-view and document-change events on b.
// Call Dispose to unsubscribe.
func Listen(b event.Bus, ctrl *Controller) (*Listener, error) {
	l := &Listener{ctrl: ctrl}

	sub, err := event.SubscribeTyped(b, events.TopicViewActiveChanged, l.onActiveViewChanged,
		event.WithPriority(event.PriorityHigh))
	if err != nil {
		return nil, err
	}
	l.subs = append(l.subs, sub)

	sub, err = event.SubscribeTyped(b, events.TopicDocumentChanged, l.onDocumentChanged)
	if err != nil {
		l.Dispose()
		return nil, err
	}
	l.subs = append(l.subs, sub)

	return l, nil
}

func (l *Listener) onActiveViewChanged(_ context.Context, e event.Event[events.ViewActiveChanged]) error {
	l.ctrl.SetActiveView(e.Payload.View)
	return nil
}

// onDocumentChanged requests a refresh for any edit to the active view's document.
func (l *Listener) onDocumentChanged(_ context.Context, e event.Event[events.DocumentChanged]) error {
	view := l.ctrl.ActiveView()
	if view == nil || view.DocumentID() != e.Payload.DocumentID {
		return nil
	}
	err := l.ctrl.RequestRefresh(false)
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

// Dispose cancels the listener's subscriptions.
func (l *Listener) Dispose() {
	for _, sub := range l.subs {
		sub.Cancel()
	}
	l.subs = nil
}
