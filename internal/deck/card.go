package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitSymbols = [...]string{"♣", "♦", "♥", "♠"}

// String returns the string representation of a suit
func (s Suit) String() string {
	if s < Clubs || s > Spades {
		return "?"
	}
	return suitSymbols[s]
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are high (14).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is an immutable playing card value
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "10♠", "A♥")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Valid reports whether the card lies inside the 52-card domain
func (c Card) Valid() bool {
	return c.Rank >= Two && c.Rank <= Ace && c.Suit >= Clubs && c.Suit <= Spades
}

// ParseCard parses a single card such as "10♠", "T♠", "Ts" or "ah".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	suit, ok := parseSuit(runes[len(runes)-1])
	if !ok {
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}
	rank, ok := parseRank(strings.ToUpper(string(runes[:len(runes)-1])))
	if !ok {
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a whitespace or comma separated list of cards.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixed inputs; it panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseSuit(r rune) (Suit, bool) {
	switch r {
	case 'c', 'C', '♣':
		return Clubs, true
	case 'd', 'D', '♦':
		return Diamonds, true
	case 'h', 'H', '♥':
		return Hearts, true
	case 's', 'S', '♠':
		return Spades, true
	}
	return 0, false
}

func parseRank(s string) (Rank, bool) {
	switch s {
	case "T", "10":
		return Ten, true
	case "J":
		return Jack, true
	case "Q":
		return Queen, true
	case "K":
		return King, true
	case "A":
		return Ace, true
	}
	if len(s) == 1 && s[0] >= '2' && s[0] <= '9' {
		return Rank(s[0] - '0'), true
	}
	return 0, false
}

// FormatCards renders cards separated by spaces
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
