// Package evaluator classifies five to seven card holdings into one of ten
// categories and resolves heads-up showdowns, falling back to a hole-card
// kicker comparison when category and payload are equal.
package evaluator

// Category is the hand class. Higher values beat lower values regardless of
// payload.
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = [...]string{
	"invalid",
	"high card",
	"pair",
	"two pairs",
	"three of a kind",
	"straight",
	"flush",
	"full house",
	"four of a kind",
	"straight flush",
	"royal flush",
}

// String returns the readable name of the category
func (c Category) String() string {
	if c < HighCard || c > RoyalFlush {
		return categoryNames[0]
	}
	return categoryNames[c]
}
