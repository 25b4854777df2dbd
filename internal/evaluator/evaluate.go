package evaluator

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/headsup/internal/deck"
)

// HandResult is a category plus the tie-break payload needed to order two
// hands of that category:
//
//	FourOfAKind, ThreeOfAKind, OnePair     [matched rank]
//	Straight, StraightFlush                [top card of the straight]
//	FullHouse                              [triplet rank, pair rank]
//	TwoPair                                [high pair, low pair]
//	Flush                                  [five highest suited ranks, descending]
//	HighCard, RoyalFlush                   none
type HandResult struct {
	Category Category
	Payload  []deck.Rank
}

// String renders the result, e.g. "full house [K 4]"
func (r HandResult) String() string {
	if len(r.Payload) == 0 {
		return r.Category.String()
	}
	parts := make([]string, len(r.Payload))
	for i, rank := range r.Payload {
		parts[i] = rank.String()
	}
	return fmt.Sprintf("%s [%s]", r.Category, strings.Join(parts, " "))
}

// evaluation order, strongest first; the first match wins
var detectors = []func(*holding) (HandResult, bool){
	(*holding).straightFlush, // also reports royal flushes
	(*holding).fourOfAKind,
	(*holding).fullHouse,
	(*holding).flush,
	(*holding).straight,
	(*holding).threeOfAKind,
	(*holding).pairs,
}

// Evaluate classifies cards, normally two hole cards plus up to five
// community cards. Input order does not matter.
func Evaluate(cards []deck.Card) HandResult {
	h := newHolding(cards)
	for _, detect := range detectors {
		if result, ok := detect(h); ok {
			return result
		}
	}
	return HandResult{Category: HighCard}
}

type rankGroup struct {
	rank  deck.Rank
	count int
}

// holding is a card set pre-indexed for the detectors
type holding struct {
	cards  []deck.Card    // ascending by rank
	groups []rankGroup    // descending by count, then rank
	suits  [4][]deck.Rank // ascending ranks per suit
}

func newHolding(cards []deck.Card) *holding {
	sorted := slices.Clone(cards)
	slices.SortFunc(sorted, func(a, b deck.Card) int {
		return cmp.Or(cmp.Compare(a.Rank, b.Rank), cmp.Compare(a.Suit, b.Suit))
	})

	h := &holding{cards: sorted}
	counts := make(map[deck.Rank]int, len(sorted))
	for _, c := range sorted {
		counts[c.Rank]++
		h.suits[c.Suit] = append(h.suits[c.Suit], c.Rank)
	}
	for rank, n := range counts {
		h.groups = append(h.groups, rankGroup{rank: rank, count: n})
	}
	slices.SortFunc(h.groups, func(a, b rankGroup) int {
		return cmp.Or(cmp.Compare(b.count, a.count), cmp.Compare(b.rank, a.rank))
	})
	return h
}

func (h *holding) straightFlush() (HandResult, bool) {
	best := deck.Rank(0)
	for _, ranks := range h.suits {
		if len(ranks) < 5 {
			continue
		}
		if top, ok := straightTop(ranks); ok && top > best {
			best = top
		}
	}
	switch {
	case best == deck.Ace:
		return HandResult{Category: RoyalFlush}, true
	case best > 0:
		return HandResult{Category: StraightFlush, Payload: []deck.Rank{best}}, true
	}
	return HandResult{}, false
}

func (h *holding) fourOfAKind() (HandResult, bool) {
	if len(h.groups) > 0 && h.groups[0].count >= 4 {
		return HandResult{Category: FourOfAKind, Payload: []deck.Rank{h.groups[0].rank}}, true
	}
	return HandResult{}, false
}

func (h *holding) fullHouse() (HandResult, bool) {
	if len(h.groups) > 1 && h.groups[0].count >= 3 && h.groups[1].count >= 2 {
		return HandResult{
			Category: FullHouse,
			Payload:  []deck.Rank{h.groups[0].rank, h.groups[1].rank},
		}, true
	}
	return HandResult{}, false
}

func (h *holding) flush() (HandResult, bool) {
	var best []deck.Rank
	for _, ranks := range h.suits {
		if len(ranks) < 5 {
			continue
		}
		top := slices.Clone(ranks)
		slices.Reverse(top)
		top = top[:5]
		if best == nil || slices.Compare(top, best) > 0 {
			best = top
		}
	}
	if best == nil {
		return HandResult{}, false
	}
	return HandResult{Category: Flush, Payload: best}, true
}

func (h *holding) straight() (HandResult, bool) {
	ranks := make([]deck.Rank, len(h.cards))
	for i, c := range h.cards {
		ranks[i] = c.Rank
	}
	if top, ok := straightTop(ranks); ok {
		return HandResult{Category: Straight, Payload: []deck.Rank{top}}, true
	}
	return HandResult{}, false
}

func (h *holding) threeOfAKind() (HandResult, bool) {
	if len(h.groups) > 0 && h.groups[0].count == 3 {
		return HandResult{Category: ThreeOfAKind, Payload: []deck.Rank{h.groups[0].rank}}, true
	}
	return HandResult{}, false
}

func (h *holding) pairs() (HandResult, bool) {
	var pairs []deck.Rank
	for _, g := range h.groups {
		if g.count == 2 {
			pairs = append(pairs, g.rank)
		}
	}
	switch {
	case len(pairs) >= 2:
		return HandResult{Category: TwoPair, Payload: pairs[:2]}, true
	case len(pairs) == 1:
		return HandResult{Category: OnePair, Payload: pairs}, true
	}
	return HandResult{}, false
}

// straightTop scans ascending ranks for five consecutive distinct values and
// returns the top card of the highest run. An Ace also counts as rank 1 so
// the wheel (A-2-3-4-5) reports 5.
func straightTop(ascending []deck.Rank) (deck.Rank, bool) {
	ranks := slices.Compact(slices.Clone(ascending))
	if len(ranks) > 0 && ranks[len(ranks)-1] == deck.Ace {
		ranks = slices.Insert(ranks, 0, deck.Rank(1))
	}

	run, top := 1, deck.Rank(0)
	for i := 1; i < len(ranks); i++ {
		if ranks[i] == ranks[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run >= 5 {
			top = ranks[i]
		}
	}
	return top, top > 0
}
