package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "symbol suits with ten as 10",
			input: "10♠ J♠ Q♠",
			expected: []Card{
				{Rank: Ten, Suit: Spades},
				{Rank: Jack, Suit: Spades},
				{Rank: Queen, Suit: Spades},
			},
		},
		{
			name:  "letter suits",
			input: "Ah,Kd,Qc,Js,9s",
			expected: []Card{
				{Rank: Ace, Suit: Hearts},
				{Rank: King, Suit: Diamonds},
				{Rank: Queen, Suit: Clubs},
				{Rank: Jack, Suit: Spades},
				{Rank: Nine, Suit: Spades},
			},
		},
		{
			name:     "case insensitive",
			input:    "as th",
			expected: []Card{{Rank: Ace, Suit: Spades}, {Rank: Ten, Suit: Hearts}},
		},
		{name: "bad suit", input: "Ax", wantErr: true},
		{name: "bad rank", input: "1s", wantErr: true},
		{name: "too short", input: "A", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cards)
		})
	}
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "10♠", NewCard(Ten, Spades).String())
	assert.Equal(t, "A♥", NewCard(Ace, Hearts).String())
	assert.Equal(t, "J♣", NewCard(Jack, Clubs).String())
	assert.Equal(t, "Q♦", NewCard(Queen, Diamonds).String())
	assert.Equal(t, "K♠ 2♣", FormatCards([]Card{NewCard(King, Spades), NewCard(Two, Clubs)}))
}

func TestCardStringRoundTrip(t *testing.T) {
	for _, c := range New().Cards() {
		parsed, err := ParseCard(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestIsRed(t *testing.T) {
	assert.True(t, NewCard(Ace, Hearts).IsRed())
	assert.True(t, NewCard(Ace, Diamonds).IsRed())
	assert.False(t, NewCard(Ace, Spades).IsRed())
	assert.False(t, NewCard(Ace, Clubs).IsRed())
}
