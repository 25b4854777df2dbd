package game

import (
	"cmp"
	"context"
	"errors"
	rand "math/rand/v2"
	"slices"
	"strings"

	"github.com/lox/headsup/internal/deck"
)

// Kind discriminates the participant variants
type Kind int

const (
	Human Kind = iota
	Policy
)

func (k Kind) String() string {
	return [...]string{"human", "policy"}[k]
}

// Participant is one of the two seats' players. Chip stack persists across
// hands; everything else is reset when a hand ends.
//
// Variant data: Human participants carry an ActionSource; Policy
// participants carry a Style, optional Overrides and their information set.
type Participant struct {
	Name      string
	Kind      Kind
	Chips     int
	Bet       int // contribution on the current street
	TotalBet  int // contribution over the whole hand
	HoleCards []deck.Card
	Folded    bool

	Source ActionSource

	Style     Style
	Overrides StrategyTable
	InfoSet   string
}

// NewHuman creates a human-backed participant
func NewHuman(name string, chips int, source ActionSource) *Participant {
	return &Participant{Name: name, Kind: Human, Chips: chips, Source: source}
}

// NewPolicy creates a policy-backed participant. overrides may be nil.
func NewPolicy(name string, chips int, style Style, overrides StrategyTable) *Participant {
	return &Participant{Name: name, Kind: Policy, Chips: chips, Style: style, Overrides: overrides}
}

// AllIn reports whether the participant has no chips behind
func (p *Participant) AllIn() bool {
	return p.Chips == 0
}

// requestAction dispatches on the participant kind. Policy decisions are
// computed synchronously; human decisions block on the source.
func requestAction(ctx context.Context, p *Participant, req ActionRequest, rng *rand.Rand) (Decision, error) {
	switch p.Kind {
	case Human:
		if p.Source == nil {
			return Decision{}, errors.New("human participant has no action source")
		}
		return p.Source.RequestAction(ctx, req)
	case Policy:
		return decidePolicy(rng, p.Style, p.Overrides, req), nil
	}
	return Decision{}, errors.New("unknown participant kind")
}

// resetInfoSet rebuilds the information-set key from the hole cards and the
// board, sorted by rank then suit. Action history restarts empty.
func (p *Participant) resetInfoSet(board []deck.Card) {
	if p.Kind != Policy {
		return
	}
	cards := append(slices.Clone(p.HoleCards), board...)
	slices.SortFunc(cards, func(a, b deck.Card) int {
		return cmp.Or(cmp.Compare(a.Rank, b.Rank), cmp.Compare(a.Suit, b.Suit))
	})
	var sb strings.Builder
	for _, c := range cards {
		sb.WriteString(c.String())
	}
	p.InfoSet = sb.String()
}

func (p *Participant) recordHistory(symbol byte) {
	if p.Kind == Policy {
		p.InfoSet += string(symbol)
	}
}

func (p *Participant) resetHand() {
	p.Bet = 0
	p.TotalBet = 0
	p.HoleCards = nil
	p.Folded = false
	p.InfoSet = ""
}
