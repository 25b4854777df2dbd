package evaluator

import (
	"cmp"
	"slices"

	"github.com/lox/headsup/internal/deck"
)

// Compare orders two results by category, then payload position by position.
// It returns a positive value when a is stronger, negative when b is, and 0
// when category and payload are identical.
func Compare(a, b HandResult) int {
	if c := cmp.Compare(a.Category, b.Category); c != 0 {
		return c
	}
	return slices.Compare(a.Payload, b.Payload)
}

// CompareKickers compares hole cards only: the higher card first, then the
// second. A zero result is a draw.
func CompareKickers(a, b []deck.Card) int {
	ra, rb := descendingRanks(a), descendingRanks(b)
	for i := 0; i < len(ra) && i < len(rb); i++ {
		if c := cmp.Compare(ra[i], rb[i]); c != 0 {
			return c
		}
	}
	return 0
}

func descendingRanks(cards []deck.Card) []deck.Rank {
	ranks := make([]deck.Rank, len(cards))
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	slices.SortFunc(ranks, func(x, y deck.Rank) int { return cmp.Compare(y, x) })
	return ranks
}

// Draw is the Showdown.Winner value for a split pot
const Draw = -1

// Showdown is the outcome of comparing two seats' holdings
type Showdown struct {
	Results [2]HandResult
	Winner  int // seat 0 or 1, or Draw
}

// Resolve evaluates both seats' hole cards with the shared board and picks a
// winner. Equal category and payload fall back to the hole-card kickers.
func Resolve(hole [2][]deck.Card, board []deck.Card) Showdown {
	var sd Showdown
	for seat := range hole {
		sd.Results[seat] = Evaluate(append(slices.Clone(hole[seat]), board...))
	}

	c := Compare(sd.Results[0], sd.Results[1])
	if c == 0 {
		c = CompareKickers(hole[0], hole[1])
	}
	switch {
	case c > 0:
		sd.Winner = 0
	case c < 0:
		sd.Winner = 1
	default:
		sd.Winner = Draw
	}
	return sd
}
