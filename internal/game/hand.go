package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/headsup/internal/deck"
	"github.com/lox/headsup/internal/evaluator"
)

// Seat indexes within a hand
const (
	SmallBlindSeat = 0
	BigBlindSeat   = 1
)

// pileSize is the number of cards a hand consumes: two hole cards per seat
// plus five board cards.
const pileSize = 9

// Hand is the state of a single hand in progress
type Hand struct {
	ID         string
	Number     int
	Seats      [2]*Participant // small blind first
	Board      []deck.Card
	Pot        int
	SmallBlind int
	BigBlind   int
	MinRaise   int
	Street     Street

	pile   []deck.Card
	rng    *rand.Rand
	logger *log.Logger
	bus    EventBus
}

// HandOutcome summarises a finished hand
type HandOutcome struct {
	HandID   string
	Winner   string // empty on a draw
	Draw     bool
	Showdown bool
	Pot      int
	Results  map[string]evaluator.HandResult // only populated at showdown
}

func newHand(id string, number int, seats [2]*Participant, smallBlind, bigBlind int, pile []deck.Card, rng *rand.Rand, logger *log.Logger, bus EventBus) *Hand {
	return &Hand{
		ID:         id,
		Number:     number,
		Seats:      seats,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		MinRaise:   bigBlind,
		pile:       pile,
		rng:        rng,
		logger:     logger.With("hand", number),
		bus:        bus,
	}
}

func (h *Hand) publish(e GameEvent) {
	if h.bus != nil {
		h.bus.Publish(e)
	}
}

// Play runs the hand from blinds to payout. On error the hand is aborted and
// every contribution is returned to its owner.
func (h *Hand) Play(ctx context.Context) (*HandOutcome, error) {
	out, err := h.play(ctx)
	if err != nil {
		h.abort()
		return nil, err
	}
	return out, nil
}

func (h *Hand) play(ctx context.Context) (*HandOutcome, error) {
	if len(h.pile) != pileSize {
		return nil, fmt.Errorf("hand needs %d cards, got %d", pileSize, len(h.pile))
	}
	start := [2]int{h.Seats[0].Chips, h.Seats[1].Chips}
	if err := h.postBlinds(); err != nil {
		return nil, err
	}
	h.deal()
	h.publish(h.startedEvent())

	for street := Preflop; street <= River; street++ {
		if street > Preflop {
			h.reveal(street)
		}
		h.Street = street
		for _, p := range h.Seats {
			p.resetInfoSet(h.Board)
		}
		h.publish(StreetRevealedEvent{HandID: h.ID, Street: street, Board: slices.Clone(h.Board), Pot: h.Pot})
		h.logger.Debug("Street", "street", street, "board", deck.FormatCards(h.Board), "pot", h.Pot)

		outcome, err := NewRound(h, street).Run(ctx)
		if err != nil {
			return nil, err
		}
		if err := h.checkConservation(start); err != nil {
			return nil, err
		}
		if outcome == HandOver {
			return h.awardUncontested(), nil
		}
		for _, p := range h.Seats {
			p.Bet = 0
		}
	}
	return h.showdown(), nil
}

func (h *Hand) postBlinds() error {
	sb, bb := h.Seats[SmallBlindSeat], h.Seats[BigBlindSeat]
	if _, err := h.makeBet(sb, h.SmallBlind); err != nil {
		return fmt.Errorf("posting small blind: %w", err)
	}
	if _, err := h.makeBet(bb, h.BigBlind); err != nil {
		return fmt.Errorf("posting big blind: %w", err)
	}
	h.logger.Debug("Posted blinds", "small", sb.Name, "big", bb.Name, "pot", h.Pot)
	return nil
}

func (h *Hand) deal() {
	h.Seats[SmallBlindSeat].HoleCards = slices.Clone(h.pile[0:2])
	h.Seats[BigBlindSeat].HoleCards = slices.Clone(h.pile[2:4])
}

func (h *Hand) reveal(street Street) {
	switch street {
	case Flop:
		h.Board = append(h.Board, h.pile[4:7]...)
	case Turn:
		h.Board = append(h.Board, h.pile[7])
	case River:
		h.Board = append(h.Board, h.pile[8])
	}
}

func (h *Hand) startedEvent() HandStartedEvent {
	e := HandStartedEvent{
		HandID:     h.ID,
		Number:     h.Number,
		SmallBlind: h.SmallBlind,
		BigBlind:   h.BigBlind,
		Pot:        h.Pot,
		HoleCards:  make(map[string][]deck.Card),
	}
	for i, p := range h.Seats {
		e.Seats[i] = SeatInfo{Name: p.Name, Kind: p.Kind, Chips: p.Chips + p.Bet}
		if p.Kind == Human {
			e.HoleCards[p.Name] = slices.Clone(p.HoleCards)
		}
	}
	return e
}

// request builds the view handed to the participant in seat
func (h *Hand) request(seat int, street Street) ActionRequest {
	p, opp := h.Seats[seat], h.Seats[1-seat]
	req := ActionRequest{
		HandID:        h.ID,
		Street:        street,
		Player:        p.Name,
		HoleCards:     slices.Clone(p.HoleCards),
		Board:         slices.Clone(h.Board),
		Pot:           h.Pot,
		Chips:         p.Chips,
		Bet:           p.Bet,
		OpponentChips: opp.Chips,
		OpponentBet:   opp.Bet,
		BigBlind:      h.BigBlind,
		MinRaise:      h.MinRaise,
		InfoSet:       p.InfoSet,
	}
	req.Legal = LegalActions(req)
	return req
}

func (h *Hand) awardUncontested() *HandOutcome {
	winner := h.Seats[0]
	if winner.Folded {
		winner = h.Seats[1]
	}
	pot := h.Pot
	payouts := map[string]int{winner.Name: pot}
	winner.Chips += pot
	h.Pot = 0

	h.logger.Info("Hand won uncontested", "winner", winner.Name, "pot", pot)
	h.publish(h.winnerEvent(winner.Name, false, pot, payouts))
	return &HandOutcome{HandID: h.ID, Winner: winner.Name, Pot: pot}
}

func (h *Hand) showdown() *HandOutcome {
	hole := [2][]deck.Card{h.Seats[0].HoleCards, h.Seats[1].HoleCards}
	sd := evaluator.Resolve(hole, h.Board)
	h.publish(ShowdownEvent{
		HandID:    h.ID,
		Board:     slices.Clone(h.Board),
		Players:   [2]string{h.Seats[0].Name, h.Seats[1].Name},
		HoleCards: [2][]deck.Card{slices.Clone(hole[0]), slices.Clone(hole[1])},
		Results:   sd.Results,
	})

	out := &HandOutcome{
		HandID:   h.ID,
		Showdown: true,
		Pot:      h.Pot,
		Results: map[string]evaluator.HandResult{
			h.Seats[0].Name: sd.Results[0],
			h.Seats[1].Name: sd.Results[1],
		},
	}

	payouts := make(map[string]int)
	if sd.Winner == evaluator.Draw {
		// odd chips are lost
		share := h.Pot / 2
		for _, p := range h.Seats {
			p.Chips += share
			payouts[p.Name] = share
		}
		out.Draw = true
		h.logger.Info("Hand drawn", "pot", h.Pot, "share", share, "hand", sd.Results[0])
	} else {
		w := h.Seats[sd.Winner]
		w.Chips += h.Pot
		payouts[w.Name] = h.Pot
		out.Winner = w.Name
		h.logger.Info("Hand won at showdown", "winner", w.Name, "pot", h.Pot, "hand", sd.Results[sd.Winner])
	}
	h.publish(h.winnerEvent(out.Winner, out.Draw, h.Pot, payouts))
	h.Pot = 0
	return out
}

func (h *Hand) winnerEvent(winner string, draw bool, pot int, payouts map[string]int) WinnerDecidedEvent {
	stacks := make(map[string]int, 2)
	for _, p := range h.Seats {
		stacks[p.Name] = p.Chips
	}
	return WinnerDecidedEvent{
		HandID:  h.ID,
		Winner:  winner,
		Draw:    draw,
		Pot:     pot,
		Payouts: payouts,
		Stacks:  stacks,
	}
}

// abort undoes every contribution of a hand that cannot complete
func (h *Hand) abort() {
	for _, p := range h.Seats {
		p.Chips += p.TotalBet
	}
	h.Pot = 0
	h.logger.Error("Hand aborted, contributions returned")
}

// finish clears per-hand participant state
func (h *Hand) finish() {
	for _, p := range h.Seats {
		p.resetHand()
	}
	h.Board = nil
}

// errHandState reports a broken hand invariant
var errHandState = errors.New("hand state invariant violated")

// checkConservation verifies pot and stack bookkeeping against the chips
// each seat brought to the hand.
func (h *Hand) checkConservation(start [2]int) error {
	total := 0
	for i, p := range h.Seats {
		if p.Chips+p.TotalBet != start[i] {
			return fmt.Errorf("%w: %s has %d behind and %d committed, started with %d", errHandState, p.Name, p.Chips, p.TotalBet, start[i])
		}
		total += p.TotalBet
	}
	if total != h.Pot {
		return fmt.Errorf("%w: pot %d, contributions %d", errHandState, h.Pot, total)
	}
	return nil
}
