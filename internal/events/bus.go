package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(EntryWrittenEvent{...})
func (b *Bus) Publish(ev Event) {
	switch e := ev.(type) {
	case EntryWrittenEvent:
		event.Publish(b.dispatcher, e)
	case EntryFilteredEvent:
		event.Publish(b.dispatcher, e)
	case WriteFailedEvent:
		event.Publish(b.dispatcher, e)
	case OptionsReloadedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function. The handler's
// parameter type selects the events it receives. Returns an unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e EntryWrittenEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(EntryWrittenEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(EntryFilteredEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(WriteFailedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(OptionsReloadedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

// SubscribeToChannel bridges kelindar/event callback-based subscriptions to channels.
// SSE handlers select on the channel; events are dropped when it is full.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	return event.Subscribe(bus.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}
