package deck

import (
	rand "math/rand/v2"
	"slices"
)

// Size is the number of cards in a standard deck
const Size = 52

// Deck is an ordered pile of cards. Cards leave the deck only through DrawN.
type Deck struct {
	cards []Card
}

// New creates an unshuffled 52-card deck ordered clubs, diamonds, hearts,
// spades and 2 through Ace within each suit.
func New() *Deck {
	d := &Deck{cards: make([]Card, 0, Size)}
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// FromCards builds a deck whose next draws are cards in order.
func FromCards(cards []Card) *Deck {
	return &Deck{cards: slices.Clone(cards)}
}

// Shuffle permutes the remaining cards in place using passes rounds of
// Fisher-Yates.
func (d *Deck) Shuffle(rng *rand.Rand, passes int) {
	for range max(passes, 1) {
		Shuffle(rng, d.cards)
	}
}

// Shuffle performs a single uniform Fisher-Yates pass over cards
func Shuffle(rng *rand.Rand, cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Sample returns n distinct cards drawn uniformly from the deck without
// modifying it.
func (d *Deck) Sample(rng *rand.Rand, n int) []Card {
	pool := slices.Clone(d.cards)
	Shuffle(rng, pool)
	n = min(n, len(pool))
	return pool[:n:n]
}

// DrawN removes and returns n cards from the top of the deck. It returns nil
// when fewer than n cards remain.
func (d *Deck) DrawN(n int) []Card {
	if n < 0 || n > len(d.cards) {
		return nil
	}
	drawn := slices.Clone(d.cards[:n])
	d.cards = d.cards[n:]
	return drawn
}

// Cards returns a copy of the remaining cards in order
func (d *Deck) Cards() []Card {
	return slices.Clone(d.cards)
}
