package game

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusStampsFromClock(t *testing.T) {
	t.Parallel()

	mockClock := quartz.NewMock(t)
	bus := NewEventBus(mockClock)
	rec := &eventRecorder{}
	bus.Subscribe(rec)

	start := mockClock.Now()
	bus.Publish(StreetRevealedEvent{Street: Flop})
	mockClock.Advance(2 * time.Second).MustWait(t.Context())
	bus.Publish(ActionTakenEvent{Player: "Alice", Action: Check})

	require.Len(t, rec.events, 2)
	assert.Equal(t, start, rec.events[0].Timestamp())
	assert.Equal(t, start.Add(2*time.Second), rec.events[1].Timestamp())
	assert.Equal(t, EventTypeStreetRevealed, rec.events[0].EventType())
	assert.Equal(t, EventTypeActionTaken, rec.events[1].EventType())
}

func TestEventBusDeliversInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	bus := NewEventBus(quartz.NewMock(t))
	var order []string
	first := &namedSubscriber{name: "first", order: &order}
	second := &namedSubscriber{name: "second", order: &order}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(MatchEndedEvent{Hands: 3})
	assert.Equal(t, []string{"first", "second"}, order)

	bus.Unsubscribe(first)
	bus.Publish(MatchEndedEvent{Hands: 4})
	assert.Equal(t, []string{"first", "second", "second"}, order)
}

func TestMatchEventsAreTimestamped(t *testing.T) {
	t.Parallel()

	mockClock := quartz.NewMock(t)
	rec := &eventRecorder{}
	alice := NewHuman("Alice", 1000, script(fold()))
	m, err := NewMatch(alice, NewHuman("Bob", 1000, script()), 50,
		WithLogger(testLogger()),
		WithClock(mockClock),
		WithSmallBlindSeat(0),
		WithMaxHands(1))
	require.NoError(t, err)
	m.EventBus().Subscribe(rec)

	_, err = m.Run(t.Context())
	require.NoError(t, err)

	require.NotEmpty(t, rec.events)
	for _, e := range rec.events {
		assert.Equal(t, mockClock.Now(), e.Timestamp(), e.EventType().String())
	}
}

type namedSubscriber struct {
	name  string
	order *[]string
}

func (s *namedSubscriber) OnEvent(GameEvent) {
	*s.order = append(*s.order, s.name)
}
