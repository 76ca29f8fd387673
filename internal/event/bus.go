package event

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/confetti/internal/event/topic"
)

// Bus is the central event bus interface.
type Bus interface {
	// Publish delivers an event to every matching subscription before returning.
	Publish(ctx context.Context, event any) error

	Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)
	Unsubscribe(sub Subscription) error

	Start() error
	Stop() error
	IsRunning() bool

	Stats() Stats
}

// BusOption configures a bus.
type BusOption func(*bus)

// WithPanicHandler sets the callback for recovered handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *bus) {
		b.panicHandler = h
	}
}

type bus struct {
	mu   sync.RWMutex
	subs map[string]*subscription
	seq  uint64

	running      atomic.Bool
	panicHandler PanicHandler

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// NewBus creates a stopped bus. Call Start before publishing.
func NewBus(opts ...BusOption) Bus {
	b := &bus{
		subs: make(map[string]*subscription),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start enables publishing.
func (b *bus) Start() error {
	b.running.Store(true)
	return nil
}

// Stop disables publishing. Subscriptions are kept.
func (b *bus) Stop() error {
	if !b.running.Swap(false) {
		return ErrBusNotRunning
	}
	return nil
}

// IsRunning reports whether the bus accepts events.
func (b *bus) IsRunning() bool {
	return b.running.Load()
}

// Subscribe registers handler for every topic matching pattern.
func (b *bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	cfg := SubscriptionConfig{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&cfg)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	sub := &subscription{
		id:       uuid.NewString(),
		pattern:  pattern,
		handler:  handler,
		config:   cfg,
		seq:      b.seq,
		onCancel: b.remove,
	}
	b.subs[sub.id] = sub
	return sub, nil
}

// Unsubscribe cancels a subscription created by this bus.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}
	b.mu.RLock()
	s, ok := b.subs[sub.ID()]
	b.mu.RUnlock()
	if !ok {
		return ErrSubscriptionNotFound
	}
	s.Cancel()
	return nil
}

func (b *bus) remove(s *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, s.id)
}

// Publish delivers event synchronously in priority order.
// Handler errors are joined and returned; panics are recovered.
func (b *bus) Publish(ctx context.Context, event any) error {
	if !b.running.Load() {
		return ErrBusNotRunning
	}
	tp, ok := event.(TopicProvider)
	if !ok || tp.EventTopic() == "" {
		return ErrInvalidEvent
	}
	eventTopic := tp.EventTopic()

	subs := b.match(eventTopic)
	b.eventsPublished.Add(1)

	var errs []error
	for _, sub := range subs {
		if !sub.shouldDeliver(event) {
			continue
		}
		if err := b.deliver(ctx, sub, event); err != nil {
			errs = append(errs, &HandlerError{
				SubscriptionID: sub.id,
				Topic:          eventTopic.String(),
				Err:            err,
			})
			continue
		}
		b.eventsDelivered.Add(1)
		if sub.config.Once {
			sub.Cancel()
		}
	}
	return errors.Join(errs...)
}

func (b *bus) match(t topic.Topic) []*subscription {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*subscription
	for _, s := range b.subs {
		if t.Matches(s.pattern) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].config.Priority != out[j].config.Priority {
			return out[i].config.Priority < out[j].config.Priority
		}
		return out[i].seq < out[j].seq
	})
	return out
}

func (b *bus) deliver(ctx context.Context, sub *subscription, event any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			if b.panicHandler != nil {
				b.panicHandler(event, sub.id, r)
			}
			err = fmt.Errorf("%w: %v\n%s", ErrHandlerPanic, r, debug.Stack())
		}
	}()

	if err := sub.handler.Handle(ctx, event); err != nil {
		b.handlerErrors.Add(1)
		return err
	}
	return nil
}

// Stats returns a snapshot of the bus counters.
func (b *bus) Stats() Stats {
	b.mu.RLock()
	active := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: active,
	}
}
