package game

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/headsup/internal/deck"
	"github.com/lox/headsup/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// scriptedSource answers requests from a fixed list of decisions and records
// every request it was given.
type scriptedSource struct {
	decisions []Decision
	requests  []ActionRequest
}

func script(decisions ...Decision) *scriptedSource {
	return &scriptedSource{decisions: decisions}
}

func (s *scriptedSource) RequestAction(_ context.Context, req ActionRequest) (Decision, error) {
	s.requests = append(s.requests, req)
	if len(s.decisions) == 0 {
		return Decision{}, fmt.Errorf("script exhausted at request %d (%s, %s)", len(s.requests), req.Player, req.Street)
	}
	d := s.decisions[0]
	s.decisions = s.decisions[1:]
	return d, nil
}

func fold() Decision            { return Decision{Action: Fold} }
func check() Decision           { return Decision{Action: Check} }
func call() Decision            { return Decision{Action: Call} }
func raise(amount int) Decision { return Decision{Action: Raise, Amount: amount} }

// eventRecorder keeps every published event
type eventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *eventRecorder) OnEvent(e GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) ofType(et EventType) []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == et {
			out = append(out, e)
		}
	}
	return out
}

// acesVsKings deals As Ad to the small blind and Kc Kd to the big blind on a
// dry board.
var acesVsKings = "As Ad Kc Kd 2h 7s 9c Jd 3s"

// newTestHand builds a hand with blinds 50/100 between two seats. Nothing is
// posted until the hand or round is played.
func newTestHand(sb, bb *Participant, pile string) (*Hand, *eventRecorder) {
	rec := &eventRecorder{}
	bus := NewEventBus(nil)
	bus.Subscribe(rec)
	var cards []deck.Card
	if pile != "" {
		cards = deck.MustParseCards(pile)
	}
	h := newHand("test-hand", 1, [2]*Participant{sb, bb}, 50, 100, cards, randutil.New(1), testLogger(), bus)
	return h, rec
}

func mustCards(s string) []deck.Card {
	return deck.MustParseCards(s)
}
