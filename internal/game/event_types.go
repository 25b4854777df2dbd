package game

import (
	"time"

	"github.com/lox/headsup/internal/deck"
	"github.com/lox/headsup/internal/evaluator"
)

// SeatInfo is a snapshot of one seat at hand start
type SeatInfo struct {
	Name  string
	Kind  Kind
	Chips int
}

// HandStartedEvent is published once blinds are posted and cards are dealt
type HandStartedEvent struct {
	HandID     string
	Number     int
	Seats      [2]SeatInfo // small blind first
	SmallBlind int
	BigBlind   int
	Pot        int
	// HoleCards holds the human seats' cards only; policy hands stay hidden
	// until showdown.
	HoleCards map[string][]deck.Card
	timestamp time.Time
}

func (e HandStartedEvent) EventType() EventType { return EventTypeHandStarted }
func (e HandStartedEvent) Timestamp() time.Time { return e.timestamp }
func (e HandStartedEvent) stamped(t time.Time) GameEvent {
	e.timestamp = t
	return e
}

// StreetRevealedEvent is published when a street begins
type StreetRevealedEvent struct {
	HandID    string
	Street    Street
	Board     []deck.Card
	Pot       int
	timestamp time.Time
}

func (e StreetRevealedEvent) EventType() EventType { return EventTypeStreetRevealed }
func (e StreetRevealedEvent) Timestamp() time.Time { return e.timestamp }
func (e StreetRevealedEvent) stamped(t time.Time) GameEvent {
	e.timestamp = t
	return e
}

// ActionTakenEvent is published after a decision has been applied
type ActionTakenEvent struct {
	HandID    string
	Street    Street
	Player    string
	Action    Action
	Amount    int // chips moved to the pot by this action
	Pot       int
	Chips     int // actor's stack afterwards
	timestamp time.Time
}

func (e ActionTakenEvent) EventType() EventType { return EventTypeActionTaken }
func (e ActionTakenEvent) Timestamp() time.Time { return e.timestamp }
func (e ActionTakenEvent) stamped(t time.Time) GameEvent {
	e.timestamp = t
	return e
}

// ActionRejectedEvent is published when a human decision fails validation
type ActionRejectedEvent struct {
	HandID    string
	Player    string
	Decision  Decision
	Reason    string
	timestamp time.Time
}

func (e ActionRejectedEvent) EventType() EventType { return EventTypeActionRejected }
func (e ActionRejectedEvent) Timestamp() time.Time { return e.timestamp }
func (e ActionRejectedEvent) stamped(t time.Time) GameEvent {
	e.timestamp = t
	return e
}

// ShowdownEvent reveals both hands and their categories
type ShowdownEvent struct {
	HandID    string
	Board     []deck.Card
	Players   [2]string
	HoleCards [2][]deck.Card
	Results   [2]evaluator.HandResult
	timestamp time.Time
}

func (e ShowdownEvent) EventType() EventType { return EventTypeShowdown }
func (e ShowdownEvent) Timestamp() time.Time { return e.timestamp }
func (e ShowdownEvent) stamped(t time.Time) GameEvent {
	e.timestamp = t
	return e
}

// WinnerDecidedEvent is published when the pot has been paid out. Winner is
// empty on a draw.
type WinnerDecidedEvent struct {
	HandID    string
	Winner    string
	Draw      bool
	Pot       int
	Payouts   map[string]int
	Stacks    map[string]int
	timestamp time.Time
}

func (e WinnerDecidedEvent) EventType() EventType { return EventTypeWinnerDecided }
func (e WinnerDecidedEvent) Timestamp() time.Time { return e.timestamp }
func (e WinnerDecidedEvent) stamped(t time.Time) GameEvent {
	e.timestamp = t
	return e
}

// MatchEndedEvent is published when a stack is empty or the hand limit is hit
type MatchEndedEvent struct {
	Hands     int
	Winner    string // empty when the hand limit ended the match
	Stacks    map[string]int
	timestamp time.Time
}

func (e MatchEndedEvent) EventType() EventType { return EventTypeMatchEnded }
func (e MatchEndedEvent) Timestamp() time.Time { return e.timestamp }
func (e MatchEndedEvent) stamped(t time.Time) GameEvent {
	e.timestamp = t
	return e
}
