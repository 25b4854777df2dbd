package game

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lox/headsup/internal/deck"
	"github.com/lox/headsup/internal/evaluator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch(t *testing.T, a, b *Participant, opts ...MatchOption) (*Match, *eventRecorder) {
	t.Helper()
	rec := &eventRecorder{}
	bus := NewEventBus(nil)
	bus.Subscribe(rec)

	opts = append([]MatchOption{
		WithLogger(testLogger()),
		WithEventBus(bus),
		WithSeed(1),
		WithSmallBlindSeat(0),
	}, opts...)
	m, err := NewMatch(a, b, 50, opts...)
	require.NoError(t, err)
	return m, rec
}

func TestMatchShowdown(t *testing.T) {
	t.Parallel()

	alice := NewHuman("Alice", 1000, script(call(), check(), check(), check()))
	bob := NewHuman("Bob", 1000, script(check(), check(), check(), check()))
	m, rec := newTestMatch(t, alice, bob,
		WithStackedHands(mustCards(acesVsKings)),
		WithMaxHands(1))

	res, err := m.Run(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Hands)
	assert.Empty(t, res.Winner)
	assert.Equal(t, map[string]int{"Alice": 1100, "Bob": 900}, res.Stacks)

	assert.Len(t, rec.ofType(EventTypeHandStarted), 1)
	assert.Len(t, rec.ofType(EventTypeStreetRevealed), 4)
	assert.Len(t, rec.ofType(EventTypeMatchEnded), 1)

	showdowns := rec.ofType(EventTypeShowdown)
	require.Len(t, showdowns, 1)
	sd := showdowns[0].(ShowdownEvent)
	assert.Equal(t, evaluator.OnePair, sd.Results[0].Category)
	assert.Equal(t, []deck.Rank{deck.Ace}, sd.Results[0].Payload)
	assert.Equal(t, []deck.Rank{deck.King}, sd.Results[1].Payload)
	assert.Len(t, sd.Board, 5)

	winners := rec.ofType(EventTypeWinnerDecided)
	require.Len(t, winners, 1)
	assert.Equal(t, "Alice", winners[0].(WinnerDecidedEvent).Winner)
	assert.Equal(t, 200, winners[0].(WinnerDecidedEvent).Pot)

	// per-hand state is cleared
	assert.Empty(t, alice.HoleCards)
	assert.Zero(t, alice.Bet)
	assert.Zero(t, bob.TotalBet)
}

func TestMatchStreetsRevealBoardInOrder(t *testing.T) {
	t.Parallel()

	alice := NewHuman("Alice", 1000, script(call(), check(), check(), check()))
	bob := NewHuman("Bob", 1000, script(check(), check(), check(), check()))
	m, rec := newTestMatch(t, alice, bob,
		WithStackedHands(mustCards(acesVsKings)),
		WithMaxHands(1))

	_, err := m.Run(t.Context())
	require.NoError(t, err)

	streets := rec.ofType(EventTypeStreetRevealed)
	require.Len(t, streets, 4)
	board := mustCards(acesVsKings)[4:]
	assert.Empty(t, streets[0].(StreetRevealedEvent).Board)
	for i, want := range []int{3, 4, 5} {
		e := streets[i+1].(StreetRevealedEvent)
		assert.Equal(t, Street(i+1), e.Street)
		assert.Equal(t, board[:want], e.Board, "street %s", e.Street)
	}
}

func TestMatchFoldAwardsPot(t *testing.T) {
	t.Parallel()

	alice := NewHuman("Alice", 1000, script(fold()))
	bob := NewHuman("Bob", 1000, script())
	m, rec := newTestMatch(t, alice, bob, WithMaxHands(1))

	out, err := m.PlayHand(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Bob", out.Winner)
	assert.False(t, out.Showdown)
	assert.Equal(t, 150, out.Pot)
	assert.Equal(t, 950, alice.Chips)
	assert.Equal(t, 1050, bob.Chips)
	assert.Empty(t, rec.ofType(EventTypeShowdown))
}

func TestMatchSwapsBlinds(t *testing.T) {
	t.Parallel()

	alice := NewHuman("Alice", 1000, script(fold(), fold()))
	bob := NewHuman("Bob", 1000, script(fold()))
	m, rec := newTestMatch(t, alice, bob, WithMaxHands(3))

	res, err := m.Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Hands)

	started := rec.ofType(EventTypeHandStarted)
	require.Len(t, started, 3)
	var smallBlinds []string
	for _, e := range started {
		smallBlinds = append(smallBlinds, e.(HandStartedEvent).Seats[SmallBlindSeat].Name)
	}
	assert.Equal(t, []string{"Alice", "Bob", "Alice"}, smallBlinds)
	assert.Equal(t, map[string]int{"Alice": 950, "Bob": 1050}, res.Stacks)
}

func TestMatchHidesPolicyHoleCards(t *testing.T) {
	t.Parallel()

	alice := NewHuman("Alice", 1000, script(fold()))
	bot := NewPolicy("Bot", 1000, Optimal, nil)
	m, rec := newTestMatch(t, alice, bot,
		WithStackedHands(mustCards(acesVsKings)),
		WithMaxHands(1))

	_, err := m.Run(t.Context())
	require.NoError(t, err)

	started := rec.ofType(EventTypeHandStarted)
	require.Len(t, started, 1)
	e := started[0].(HandStartedEvent)
	assert.Equal(t, mustCards("As Ad"), e.HoleCards["Alice"])
	assert.NotContains(t, e.HoleCards, "Bot")
	assert.Equal(t, 1000, e.Seats[0].Chips)
	assert.Equal(t, Policy, e.Seats[1].Kind)
}

func TestShowdownDrawSplitsPotWithFloor(t *testing.T) {
	t.Parallel()

	a, b := NewHuman("Alice", 0, nil), NewHuman("Bob", 0, nil)
	h, rec := newTestHand(a, b, "")
	a.HoleCards = mustCards("2c 3d")
	b.HoleCards = mustCards("2h 3h")
	h.Board = mustCards("Ts Js Qs Ks As")
	h.Pot = 1001

	out := h.showdown()
	assert.True(t, out.Draw)
	assert.Empty(t, out.Winner)
	assert.Equal(t, 500, a.Chips)
	assert.Equal(t, 500, b.Chips)
	assert.Equal(t, evaluator.RoyalFlush, out.Results["Alice"].Category)

	winners := rec.ofType(EventTypeWinnerDecided)
	require.Len(t, winners, 1)
	assert.True(t, winners[0].(WinnerDecidedEvent).Draw)
	assert.Equal(t, map[string]int{"Alice": 500, "Bob": 500}, winners[0].(WinnerDecidedEvent).Payouts)
}

func TestShowdownKickerDecides(t *testing.T) {
	t.Parallel()

	a, b := NewHuman("Alice", 0, nil), NewHuman("Bob", 0, nil)
	h, _ := newTestHand(a, b, "")
	a.HoleCards = mustCards("Ac 2d")
	b.HoleCards = mustCards("Kh 2h")
	h.Board = mustCards("Ts Js Qs Ks 9s")
	h.Pot = 400

	out := h.showdown()
	assert.Equal(t, "Alice", out.Winner)
	assert.Equal(t, 400, a.Chips)
	assert.Zero(t, b.Chips)
}

func TestMatchEndsWhenStackEmpty(t *testing.T) {
	t.Parallel()

	alice := NewHuman("Alice", 100, script(call()))
	bobSrc := script()
	bob := NewHuman("Bob", 1000, bobSrc)
	m, rec := newTestMatch(t, alice, bob,
		WithStackedHands(mustCards("Kc Kd As Ad 2h 7s 9c Jd 3s")))

	res, err := m.Run(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Hands)
	assert.Equal(t, "Bob", res.Winner)
	assert.Equal(t, map[string]int{"Alice": 0, "Bob": 1100}, res.Stacks)
	assert.Empty(t, bobSrc.requests)
	assert.True(t, m.Over())

	ended := rec.ofType(EventTypeMatchEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, "Bob", ended[0].(MatchEndedEvent).Winner)

	_, err = m.PlayHand(t.Context())
	assert.Error(t, err)
}

func TestMatchAbortsHandOnSourceError(t *testing.T) {
	t.Parallel()

	errGone := errors.New("disconnected")
	src := ActionSourceFunc(func(context.Context, ActionRequest) (Decision, error) {
		return Decision{}, errGone
	})
	alice := NewHuman("Alice", 1000, src)
	bob := NewHuman("Bob", 1000, script())
	m, _ := newTestMatch(t, alice, bob)

	_, err := m.Run(t.Context())
	require.ErrorIs(t, err, errGone)
	assert.Equal(t, 1000, alice.Chips)
	assert.Equal(t, 1000, bob.Chips)
	assert.Zero(t, alice.Bet)
	assert.Zero(t, m.HandsPlayed())
}

func TestMatchStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	m, _ := newTestMatch(t, NewPolicy("A", 1000, LAG, nil), NewPolicy("B", 1000, TAG, nil))
	_, err := m.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPolicyMatchRunsToCompletion(t *testing.T) {
	t.Parallel()

	for _, style := range Styles() {
		t.Run(string(style), func(t *testing.T) {
			a := NewPolicy("A", 1000, style, nil)
			b := NewPolicy("B", 1000, Optimal, nil)
			m, rec := newTestMatch(t, a, b, WithMaxHands(3000))

			res, err := m.Run(t.Context())
			require.NoError(t, err)
			assert.True(t, m.Over())
			assert.LessOrEqual(t, a.Chips+b.Chips, 2000)
			if res.Winner != "" {
				assert.Zero(t, res.Stacks[map[string]string{"A": "B", "B": "A"}[res.Winner]])
			}
			assert.Len(t, rec.ofType(EventTypeHandStarted), res.Hands)
		})
	}
}

func TestMatchIsDeterministicForSeed(t *testing.T) {
	t.Parallel()

	play := func() *MatchResult {
		a := NewPolicy("A", 2000, TAG, nil)
		b := NewPolicy("B", 2000, LP, nil)
		m, _ := newTestMatch(t, a, b, WithSeed(2024), WithMaxHands(200))
		res, err := m.Run(t.Context())
		require.NoError(t, err)
		return res
	}
	assert.Equal(t, play(), play())
}

func TestMatchDealsFromFullDeck(t *testing.T) {
	t.Parallel()

	m, _ := newTestMatch(t, NewHuman("Alice", 1000, script()), NewHuman("Bob", 1000, script()))
	first := m.nextPile()
	second := m.nextPile()

	for _, pile := range [][]deck.Card{first, second} {
		require.Len(t, pile, pileSize)
		seen := map[deck.Card]bool{}
		for _, c := range pile {
			assert.True(t, c.Valid())
			assert.False(t, seen[c], "duplicate card %v", c)
			seen[c] = true
		}
	}
	assert.NotEqual(t, first, second)
	assert.Len(t, m.deck.Cards(), deck.Size)
}

func TestMatchHandIDs(t *testing.T) {
	t.Parallel()

	alice := NewHuman("Alice", 1000, script(fold()))
	m, _ := newTestMatch(t, alice, NewHuman("Bob", 1000, script()))
	out, err := m.PlayHand(t.Context())
	require.NoError(t, err)
	_, err = uuid.Parse(out.HandID)
	assert.NoError(t, err)

	n := 0
	alice = NewHuman("Alice", 1000, script(fold()))
	m, _ = newTestMatch(t, alice, NewHuman("Bob", 1000, script()), WithHandIDs(func() string {
		n++
		return "hand-" + string(rune('0'+n))
	}))
	out, err = m.PlayHand(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "hand-1", out.HandID)
}

func TestNewMatchValidation(t *testing.T) {
	t.Parallel()

	a := NewPolicy("A", 1000, Optimal, nil)

	_, err := NewMatch(a, NewPolicy("A", 1000, Optimal, nil), 50)
	assert.Error(t, err, "duplicate names")

	_, err = NewMatch(a, NewPolicy("B", 1000, Optimal, nil), 0)
	assert.Error(t, err, "zero blind")

	_, err = NewMatch(a, NewPolicy("B", 0, Optimal, nil), 50)
	assert.Error(t, err, "empty stack")

	_, err = NewMatch(a, NewPolicy("B", 1000, Optimal, nil), 50, WithStackedHands(mustCards("As Ad")))
	assert.Error(t, err, "short stacked pile")

	m, err := NewMatch(a, NewPolicy("B", 1000, Optimal, nil), 50, WithLogger(testLogger()))
	require.NoError(t, err)
	assert.NotNil(t, m.EventBus())
	assert.Equal(t, "A", m.Players()[0].Name)
}
