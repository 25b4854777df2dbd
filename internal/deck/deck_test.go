package deck

import (
	"testing"

	"github.com/lox/headsup/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distinct(t *testing.T, cards []Card) map[Card]bool {
	t.Helper()
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		require.True(t, c.Valid(), "invalid card %v", c)
		require.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
	return seen
}

func TestNewDeck(t *testing.T) {
	t.Parallel()
	d := New()
	require.Equal(t, Size, len(d.Cards()))
	assert.Len(t, distinct(t, d.Cards()), Size)
}

func TestShufflePreservesCards(t *testing.T) {
	t.Parallel()
	rng := randutil.New(1)
	for passes := 1; passes <= 3; passes++ {
		for range 50 {
			d := New()
			d.Shuffle(rng, passes)
			assert.Len(t, distinct(t, d.Cards()), Size)
		}
	}
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()
	a, b := New(), New()
	a.Shuffle(randutil.New(9), 3)
	b.Shuffle(randutil.New(9), 3)
	assert.Equal(t, a.Cards(), b.Cards())
	assert.NotEqual(t, New().Cards(), a.Cards())
}

func TestDrawN(t *testing.T) {
	t.Parallel()
	d := New()
	first := d.DrawN(2)
	require.Len(t, first, 2)
	assert.Equal(t, NewCard(Two, Clubs), first[0])
	assert.Equal(t, NewCard(Three, Clubs), first[1])
	assert.Equal(t, Size-2, len(d.Cards()))

	assert.Nil(t, d.DrawN(Size))
	assert.Equal(t, Size-2, len(d.Cards()))
	assert.NotContains(t, d.Cards(), first[0])
}

func TestSampleLeavesDeckIntact(t *testing.T) {
	t.Parallel()
	d := New()
	sample := d.Sample(randutil.New(3), 9)
	require.Len(t, sample, 9)
	distinct(t, sample)
	assert.Equal(t, Size, len(d.Cards()))
	assert.Equal(t, New().Cards(), d.Cards())
}

func TestFromCards(t *testing.T) {
	t.Parallel()
	stacked := MustParseCards("As Kd 2c")
	d := FromCards(stacked)
	assert.Equal(t, stacked[:2], d.DrawN(2))
	assert.Equal(t, stacked[2:], d.DrawN(1))
}
