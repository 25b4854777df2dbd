package evaluator

import (
	"testing"

	"github.com/lox/headsup/internal/deck"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		board  string
		seat0  string
		seat1  string
		winner int
	}{
		{"high card vs one pair", "3♠ 7♦ 9♠ 10♣ Q♠", "K♦ 5♣", "5♠ 5♥", 1},
		{"higher two pair", "2♠ 7♦ 2♦ 10♣ Q♠", "K♦ K♠", "5♠ 5♥", 0},
		{"royal flush beats board straight flush", "9♠ 10♠ J♠ Q♠ K♠", "8♣ 7♦", "A♠ 5♠", 1},
		{"quads beat full house", "2♠ 2♦ 2♣ Q♠ Q♦", "Q♣ Q♥", "A♠ A♥", 0},
		{"straight flush loses to royal", "9♠ 10♠ J♠ Q♠ K♠", "8♠ 7♠", "A♠ 10♠", 1},
		{"flush beats two pair", "10♠ 10♥ 4♠ 9♠ 5♦", "4♦ 2♠", "5♠ 8♠", 1},
		{"high card decided by second kicker", "9♣ Q♣ 10♣ A♦ 4♥", "8♣ 2♦", "8♥ 5♦", 1},
		{"higher pair", "10♠ 2♥ 4♥ 9♠ 5♦", "J♦ 2♠", "5♠ 8♠", 1},
		{"equal trips fall to kicker", "J♠ J♥ 4♥ 9♠ 5♦", "J♦ 7♠", "J♣ 8♠", 1},
		{"higher quads", "Q♣ A♥ Q♥ Q♠ A♣", "Q♦ 2♠", "A♠ A♦", 1},
		{"two pair by top pair", "K♥ 2♥ 2♠ 9♠ 5♦", "K♦ 8♠", "5♠ 3♠", 0},
		{"three pairs fall to kicker", "2♥ K♥ 4♥ K♠ 5♦", "4♦ 5♠", "2♠ 5♥", 0},
		{"full house by pair rank", "2♥ K♥ 4♥ 5♦ 5♣", "4♠ 5♥", "2♦ 5♠", 0},
		{"flush by top card", "10♠ 4♠ 8♠ 2♠ 6♠", "K♠ Q♠", "A♣ 5♦", 0},
		{"equal straights fall to kicker", "9♠ 10♣ J♦ Q♠ K♥", "8♣ 7♦", "7♠ 6♥", 0},
		{"equal straight flushes fall to kicker", "9♠ 10♠ J♠ Q♠ K♠", "8♠ 7♥", "7♠ 6♥", 0},
		{"royal flushes on board draw on equal kickers", "10♠ Q♠ K♠ A♠ J♠", "9♦ 8♠", "9♠ 8♦", Draw},
		{"royal flushes on board still use kickers", "10♠ Q♠ K♠ A♠ J♠", "9♦ 8♥", "9♣ 7♦", 0},
		{"identical high cards draw", "2♣ 7♦ 9♥ J♠ K♣", "A♦ 4♠", "A♥ 4♦", Draw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := deck.MustParseCards(tt.board)
			hole := [2][]deck.Card{deck.MustParseCards(tt.seat0), deck.MustParseCards(tt.seat1)}
			sd := Resolve(hole, board)
			assert.Equal(t, tt.winner, sd.Winner, "%s vs %s", sd.Results[0], sd.Results[1])

			// swapping seats mirrors the result
			swapped := Resolve([2][]deck.Card{hole[1], hole[0]}, board)
			switch tt.winner {
			case Draw:
				assert.Equal(t, Draw, swapped.Winner)
			default:
				assert.Equal(t, 1-tt.winner, swapped.Winner)
			}
		})
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	board := deck.MustParseCards("2♣ 7♦ 9♥ J♠ K♣")
	hole := [2][]deck.Card{deck.MustParseCards("A♦ 4♠"), deck.MustParseCards("3♥ 4♦")}
	Resolve(hole, board)
	assert.Equal(t, deck.MustParseCards("A♦ 4♠"), hole[0])
	assert.Equal(t, deck.MustParseCards("2♣ 7♦ 9♥ J♠ K♣"), board)
}
