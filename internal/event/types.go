package event

import (
	"context"

	"github.com/dshills/confetti/internal/event/topic"
)

// Priority determines handler execution order. Lower values execute first.
type Priority int

const (
	// PriorityCritical is for the host's own bookkeeping (active view tracking).
	PriorityCritical Priority = 0

	// PriorityHigh is for handlers other add-ons depend on.
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority for add-ons.
	PriorityNormal Priority = 200

	// PriorityLow is for logging and plugin script callbacks.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Handler processes type-erased events.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// TypedHandlerFunc handles events of a single payload type.
type TypedHandlerFunc[T any] func(ctx context.Context, event Event[T]) error

// AsHandler converts a typed handler into a Handler.
// Events with a different payload type are skipped.
func AsHandler[T any](fn TypedHandlerFunc[T]) Handler {
	return HandlerFunc(func(ctx context.Context, event any) error {
		if e, ok := event.(Event[T]); ok {
			return fn(ctx, e)
		}
		return nil
	})
}

// SubscribeTyped subscribes a typed handler.
func SubscribeTyped[T any](b Bus, pattern topic.Topic, fn TypedHandlerFunc[T], opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, AsHandler(fn), opts...)
}

// FilterFunc decides whether an event is delivered to a subscription.
type FilterFunc func(event any) bool

// Stats contains bus counters.
type Stats struct {
	EventsPublished   uint64
	EventsDelivered   uint64
	HandlerErrors     uint64
	HandlerPanics     uint64
	ActiveSubscribers int
}

// PanicHandler is called when a handler panics.
type PanicHandler func(event any, subscriptionID string, recovered any)
