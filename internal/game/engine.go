package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lox/headsup/internal/deck"
	"github.com/lox/headsup/internal/randutil"
)

// Match runs hands between two participants until one of them is out of
// chips. It owns the deck, the RNG and both participants for its lifetime;
// nothing in it is safe for concurrent use.
type Match struct {
	players    [2]*Participant
	smallBlind int
	bigBlind   int
	sbSeat     int // index into players of the next small blind

	deck   *deck.Deck
	rng    *rand.Rand
	logger *log.Logger
	bus    EventBus

	maxHands  int
	stacked   [][]deck.Card
	newHandID func() string

	hands        int
	startingChip int
	lostChips    int // odd chips dropped by split pots
}

// MatchResult summarises a finished match
type MatchResult struct {
	Hands  int
	Winner string // empty when the hand limit ended the match
	Stacks map[string]int
}

// NewMatch creates a match between a and b with the given small blind; the
// big blind is twice the small blind.
func NewMatch(a, b *Participant, smallBlind int, opts ...MatchOption) (*Match, error) {
	if a == nil || b == nil {
		return nil, errors.New("two participants are required")
	}
	if a.Name == b.Name {
		return nil, fmt.Errorf("participants must have distinct names, both are %q", a.Name)
	}
	if smallBlind <= 0 {
		return nil, fmt.Errorf("small blind must be positive, got %d", smallBlind)
	}
	if a.Chips <= 0 || b.Chips <= 0 {
		return nil, errors.New("both participants need chips to start a match")
	}

	cfg := &matchConfig{firstSB: -1}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.Default()
	}
	if cfg.rng == nil {
		cfg.rng = randutil.New(randutil.ResolveSeed(0))
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus(cfg.clock)
	}
	if cfg.newHandID == nil {
		cfg.newHandID = uuid.NewString
	}
	for i, pile := range cfg.stacked {
		if len(pile) != pileSize {
			return nil, fmt.Errorf("stacked hand %d has %d cards, need %d", i, len(pile), pileSize)
		}
	}

	m := &Match{
		players:      [2]*Participant{a, b},
		smallBlind:   smallBlind,
		bigBlind:     2 * smallBlind,
		deck:         deck.New(),
		rng:          cfg.rng,
		logger:       cfg.logger.WithPrefix("match"),
		bus:          cfg.bus,
		maxHands:     cfg.maxHands,
		stacked:      cfg.stacked,
		newHandID:    cfg.newHandID,
		startingChip: a.Chips + b.Chips,
	}

	switch cfg.firstSB {
	case 0, 1:
		m.sbSeat = cfg.firstSB
	default:
		m.sbSeat = m.rng.IntN(2)
	}
	return m, nil
}

// EventBus returns the bus the match publishes to
func (m *Match) EventBus() EventBus {
	return m.bus
}

// Players returns the participants in NewMatch argument order
func (m *Match) Players() [2]*Participant {
	return m.players
}

// HandsPlayed returns the number of completed hands
func (m *Match) HandsPlayed() int {
	return m.hands
}

// Over reports whether the match has ended
func (m *Match) Over() bool {
	if m.players[0].Chips == 0 || m.players[1].Chips == 0 {
		return true
	}
	return m.maxHands > 0 && m.hands >= m.maxHands
}

// PlayHand plays the next hand and swaps the blinds. A failed hand leaves
// stacks as they were before it started and the blinds unchanged.
func (m *Match) PlayHand(ctx context.Context) (*HandOutcome, error) {
	if m.Over() {
		return nil, errors.New("match is over")
	}

	seats := [2]*Participant{m.players[m.sbSeat], m.players[1-m.sbSeat]}
	h := newHand(m.newHandID(), m.hands+1, seats, m.smallBlind, m.bigBlind, m.nextPile(), m.rng, m.logger, m.bus)
	defer h.finish()

	m.logger.Debug("Starting hand", "hand", h.Number, "id", h.ID, "small", seats[0].Name, "big", seats[1].Name)
	out, err := h.Play(ctx)
	if err != nil {
		return nil, fmt.Errorf("hand %d: %w", h.Number, err)
	}

	if out.Draw {
		m.lostChips += out.Pot % 2
	}
	if err := m.validateChipConservation(); err != nil {
		return nil, err
	}
	m.hands++
	m.sbSeat = 1 - m.sbSeat
	return out, nil
}

// Run plays hands until a stack is empty, the hand limit is reached or ctx is
// cancelled.
func (m *Match) Run(ctx context.Context) (*MatchResult, error) {
	for !m.Over() {
		if err := ctx.Err(); err != nil {
			return m.result(), err
		}
		if _, err := m.PlayHand(ctx); err != nil {
			return m.result(), err
		}
	}

	res := m.result()
	m.logger.Info("Match over", "hands", res.Hands, "winner", res.Winner)
	m.bus.Publish(MatchEndedEvent{Hands: res.Hands, Winner: res.Winner, Stacks: res.Stacks})
	return res, nil
}

func (m *Match) result() *MatchResult {
	res := &MatchResult{Hands: m.hands, Stacks: make(map[string]int, 2)}
	for _, p := range m.players {
		res.Stacks[p.Name] = p.Chips
	}
	switch {
	case m.players[0].Chips == 0:
		res.Winner = m.players[1].Name
	case m.players[1].Chips == 0:
		res.Winner = m.players[0].Name
	}
	return res
}

// nextPile returns the nine cards for the next hand: a stacked pile when one
// is queued, else the top of a freshly shuffled copy of the full deck.
func (m *Match) nextPile() []deck.Card {
	if len(m.stacked) > 0 {
		pile := m.stacked[0]
		m.stacked = m.stacked[1:]
		return pile
	}
	d := deck.FromCards(m.deck.Cards())
	d.Shuffle(m.rng, 3)
	return d.DrawN(pileSize)
}

// validateChipConservation checks that no chips appeared or vanished other
// than odd chips from split pots.
func (m *Match) validateChipConservation() error {
	total := m.players[0].Chips + m.players[1].Chips
	if total+m.lostChips != m.startingChip {
		return fmt.Errorf("%w: %d chips in play, %d lost to splits, started with %d", errHandState, total, m.lostChips, m.startingChip)
	}
	return nil
}
