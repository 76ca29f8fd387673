// Package event provides the synchronous event bus that connects the editor
// host to its add-ons.
//
// Publishers send typed events (Event[T]) on hierarchical topics; subscribers
// register a Handler against a topic pattern. Delivery happens on the
// publisher's goroutine, in priority order, which keeps every handler on the
// editor's UI goroutine:
//
//	bus := event.NewBus()
//	sub, _ := event.SubscribeTyped(bus, events.TopicDocumentChanged,
//	    func(ctx context.Context, e event.Event[events.DocumentChanged]) error {
//	        ...
//	    })
//	defer sub.Cancel()
//
//	_ = bus.Publish(ctx, event.NewEvent(events.TopicDocumentChanged,
//	    events.DocumentChanged{DocumentID: id}, "editor"))
//
// Handler panics are recovered and counted; they never reach the publisher.
package event
