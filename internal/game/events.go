package game

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeHandStarted    EventType = "hand_started"
	EventTypeStreetRevealed EventType = "street_revealed"
	EventTypeActionTaken    EventType = "action_taken"
	EventTypeActionRejected EventType = "action_rejected"
	EventTypeShowdown       EventType = "showdown"
	EventTypeWinnerDecided  EventType = "winner_decided"
	EventTypeMatchEnded     EventType = "match_ended"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a match. Events carry
// copies of engine state; subscribers cannot change the hand through them.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time

	stamped(t time.Time) GameEvent
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is an in-memory bus that delivers synchronously, on the
// publisher's goroutine, in subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	clock       quartz.Clock
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus that timestamps events from clock
func NewEventBus(clock quartz.Clock) *SimpleEventBus {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &SimpleEventBus{clock: clock}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish stamps the event and sends it to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	event = event.stamped(bus.clock.Now())

	bus.mu.RLock()
	subscribers := append([]EventSubscriber(nil), bus.subscribers...)
	bus.mu.RUnlock()

	for _, subscriber := range subscribers {
		subscriber.OnEvent(event)
	}
}
