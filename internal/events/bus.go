package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting.
// Delivery is asynchronous: each subscriber drains its own queue.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers
// Usage: bus.Publish(PropertyChangedEvent{...})
func (b *Bus) Publish(ev Event) {
	// Use type switch to call the generic Publish with the correct type
	switch e := ev.(type) {
	case PropertyChangedEvent:
		event.Publish(b.dispatcher, e)
	case ChangedEvent:
		event.Publish(b.dispatcher, e)
	case InChangedEvent:
		event.Publish(b.dispatcher, e)
	case OutChangedEvent:
		event.Publish(b.dispatcher, e)
	case AnimateInChangedEvent:
		event.Publish(b.dispatcher, e)
	case AnimateOutChangedEvent:
		event.Publish(b.dispatcher, e)
	case AnimateInOutChangedEvent:
		event.Publish(b.dispatcher, e)
	case DurationChangedEvent:
		event.Publish(b.dispatcher, e)
	case PresetsChangedEvent:
		event.Publish(b.dispatcher, e)
	case AnalyzeFinishedEvent:
		event.Publish(b.dispatcher, e)
	case UndoCommandEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function
// The handler type determines which events it receives
// Returns an unsubscribe function
// Usage: unsub := bus.Subscribe(func(e PropertyChangedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(PropertyChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(InChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(OutChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(AnimateInChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(AnimateOutChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(AnimateInOutChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DurationChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(PresetsChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(AnalyzeFinishedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(UndoCommandEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// Return a no-op function if handler type is not recognized
		return func() {}
	}
}

// Close stops delivery to all subscribers.
func (b *Bus) Close() error {
	return b.dispatcher.Close()
}
