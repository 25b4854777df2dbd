package game

import (
	"context"
	"fmt"
)

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river"}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
)

func (a Action) String() string {
	if a < Fold || a > Raise {
		return "unknown"
	}
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// ParseAction resolves an action name
func ParseAction(s string) (Action, error) {
	for a := Fold; a <= Raise; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// symbol is the information-set history character for the action
func (a Action) symbol() byte {
	switch a {
	case Call:
		return 'c'
	case Raise:
		return 'b'
	default:
		return 'p'
	}
}

// RoundState is the position of a betting round in its lifecycle
type RoundState int

const (
	Idle RoundState = iota
	AwaitingAction
	Resolved
)

func (s RoundState) String() string {
	return [...]string{"idle", "awaiting-action", "resolved"}[s]
}

// Outcome is how a resolved round hands control back to the orchestrator
type Outcome int

const (
	Continue Outcome = iota
	HandOver
)

func (o Outcome) String() string {
	return [...]string{"continue", "hand-over"}[o]
}

// Round drives one street of betting to completion
type Round struct {
	hand    *Hand
	street  Street
	state   RoundState
	seat    int // seat awaiting action
	actions int // actions applied this round
	outcome Outcome
}

// NewRound creates an idle round for street
func NewRound(h *Hand, street Street) *Round {
	return &Round{hand: h, street: street}
}

// State returns the round's lifecycle state
func (r *Round) State() RoundState { return r.state }

// Seat returns the seat currently asked to act
func (r *Round) Seat() int { return r.seat }

// Run asks the seats for actions until the round resolves. Preflop the small
// blind acts first; on later streets the big blind does.
func (r *Round) Run(ctx context.Context) (Outcome, error) {
	h := r.hand
	r.seat = BigBlindSeat
	if r.street == Preflop {
		r.seat = SmallBlindSeat
	}
	logger := h.logger.With("street", r.street)

	actor, opponent := h.Seats[r.seat], h.Seats[1-r.seat]
	switch {
	case r.street == Preflop && actor.AllIn():
		logger.Debug("First actor is all-in from the blind", "player", actor.Name)
		return r.resolve(Continue)

	case r.street == Preflop && opponent.AllIn():
		// one decision: call up to the blind, or fold
		if actor.Bet >= opponent.Bet {
			return r.resolve(Continue)
		}
		d, err := r.ask(ctx)
		if err != nil {
			return Continue, err
		}
		if done, err := r.apply(d); err != nil || done {
			return r.outcome, err
		}
		return r.resolve(Continue)

	case r.street != Preflop && (actor.AllIn() || opponent.AllIn()):
		logger.Debug("A player is already all-in, skipping betting")
		return r.resolve(Continue)
	}

	for {
		actor, opponent = h.Seats[r.seat], h.Seats[1-r.seat]
		if actor.AllIn() || (opponent.AllIn() && actor.Bet >= opponent.Bet) {
			return r.resolve(Continue)
		}

		d, err := r.ask(ctx)
		if err != nil {
			return Continue, err
		}
		done, err := r.apply(d)
		if err != nil || done {
			return r.outcome, err
		}
		r.seat = 1 - r.seat
	}
}

// ask requests a legal decision from the current seat, re-asking a human
// after every rejected answer.
func (r *Round) ask(ctx context.Context) (Decision, error) {
	h := r.hand
	p := h.Seats[r.seat]
	r.state = AwaitingAction
	req := h.request(r.seat, r.street)

	for {
		d, err := requestAction(ctx, p, req, h.rng)
		if err != nil {
			return Decision{}, fmt.Errorf("requesting action from %s: %w", p.Name, err)
		}
		verr := Validate(req, d)
		if verr == nil {
			return d, nil
		}
		if p.Kind == Policy {
			return Decision{}, fmt.Errorf("policy participant %s chose %v: %w", p.Name, d, verr)
		}

		h.logger.Warn("Illegal action, try again", "player", p.Name, "action", d, "error", verr)
		h.publish(ActionRejectedEvent{HandID: h.ID, Player: p.Name, Decision: d, Reason: verr.Error()})
		req.Retry = verr
	}
}

// apply performs a validated decision and reports whether the round resolved
func (r *Round) apply(d Decision) (bool, error) {
	h := r.hand
	p, opp := h.Seats[r.seat], h.Seats[1-r.seat]
	r.actions++

	amount := 0
	var err error
	switch d.Action {
	case Fold:
		p.Folded = true
	case Call:
		amount, err = h.makeBet(p, opp.Bet-p.Bet)
	case Raise:
		amount, err = h.makeBet(p, d.Amount)
	}
	if err != nil {
		return true, err
	}

	for _, s := range h.Seats {
		s.recordHistory(d.Action.symbol())
	}
	h.logger.Debug("Player action", "street", r.street, "player", p.Name, "action", d.Action, "amount", amount, "pot", h.Pot)
	h.publish(ActionTakenEvent{
		HandID: h.ID,
		Street: r.street,
		Player: p.Name,
		Action: d.Action,
		Amount: amount,
		Pot:    h.Pot,
		Chips:  p.Chips,
	})

	switch d.Action {
	case Fold:
		_, err := r.resolve(HandOver)
		return true, err
	case Check, Call:
		if r.actions >= 2 {
			_, err := r.resolve(Continue)
			return true, err
		}
	}
	return false, nil
}

func (r *Round) resolve(o Outcome) (Outcome, error) {
	r.state = Resolved
	r.outcome = o
	if o == Continue {
		r.hand.returnUncalled()
	}
	return o, nil
}

// makeBet moves chips from p's stack to the pot. Amounts at or above the
// stack put the participant all-in; betting from an empty stack is an
// invariant violation.
func (h *Hand) makeBet(p *Participant, amount int) (int, error) {
	if p.Chips == 0 {
		return 0, fmt.Errorf("%w: %s", ErrInsufficientChips, p.Name)
	}
	if amount <= 0 {
		return 0, nil
	}
	amount = min(amount, p.Chips)
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	h.Pot += amount
	return amount, nil
}

// returnUncalled gives back the part of a street bet the opponent could not
// match because they are all-in for less.
func (h *Hand) returnUncalled() {
	a, b := h.Seats[0], h.Seats[1]
	if a.Bet < b.Bet {
		a, b = b, a
	}
	excess := a.Bet - b.Bet
	if excess == 0 || !b.AllIn() {
		return
	}
	a.Chips += excess
	a.Bet -= excess
	a.TotalBet -= excess
	h.Pot -= excess
	h.logger.Debug("Returned uncalled bet", "player", a.Name, "amount", excess)
}
