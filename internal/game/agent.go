package game

import (
	"context"
	"fmt"

	"github.com/lox/headsup/internal/deck"
)

// Decision is an action plus its amount. For raises the amount is the number
// of chips added on top of the actor's current street bet.
type Decision struct {
	Action Action
	Amount int
}

func (d Decision) String() string {
	if d.Action == Raise {
		return fmt.Sprintf("raise %d", d.Amount)
	}
	return d.Action.String()
}

// ActionRequest is the read-only view handed to a participant when it must act
type ActionRequest struct {
	HandID    string
	Street    Street
	Player    string
	HoleCards []deck.Card
	Board     []deck.Card
	Pot       int

	Chips         int // actor's remaining stack
	Bet           int // actor's street bet
	OpponentChips int
	OpponentBet   int
	BigBlind      int
	MinRaise      int

	Legal   []Action
	InfoSet string

	// Retry holds the reason the previous answer to this request was
	// rejected, nil on the first ask.
	Retry error

	// Seq identifies the request to ChannelSource.Submit. Zero when the
	// request did not pass through a ChannelSource.
	Seq uint64
}

// ToCall is the outstanding bet differential facing the actor
func (r ActionRequest) ToCall() int {
	return max(r.OpponentBet-r.Bet, 0)
}

// ActionSource supplies decisions for a human-backed participant. It is the
// engine's only blocking point: RequestAction must resolve exactly once per
// call, or return an error when ctx is cancelled or the source goes away.
type ActionSource interface {
	RequestAction(ctx context.Context, req ActionRequest) (Decision, error)
}

// ActionSourceFunc adapts a function to ActionSource
type ActionSourceFunc func(ctx context.Context, req ActionRequest) (Decision, error)

func (f ActionSourceFunc) RequestAction(ctx context.Context, req ActionRequest) (Decision, error) {
	return f(ctx, req)
}
