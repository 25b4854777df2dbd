package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/headsup/internal/deck"
	"github.com/lox/headsup/internal/randutil"
)

// MatchOption configures a Match during creation.
type MatchOption func(*matchConfig)

// matchConfig holds all optional configuration for creating a match.
type matchConfig struct {
	logger    *log.Logger
	clock     quartz.Clock
	bus       EventBus
	rng       *rand.Rand
	maxHands  int           // 0 plays until a stack is empty
	stacked   [][]deck.Card // predetermined 9-card piles, consumed first
	firstSB   int           // -1 picks the first small blind at random
	newHandID func() string
}

// WithLogger sets the match logger, log.Default() when unset
func WithLogger(logger *log.Logger) MatchOption {
	return func(c *matchConfig) {
		c.logger = logger
	}
}

// WithClock sets the clock used to timestamp events on the default bus.
func WithClock(clock quartz.Clock) MatchOption {
	return func(c *matchConfig) {
		c.clock = clock
	}
}

// WithEventBus replaces the default in-memory bus.
func WithEventBus(bus EventBus) MatchOption {
	return func(c *matchConfig) {
		c.bus = bus
	}
}

// WithRNG sets the random source for shuffling, seating and policy draws.
// The RNG is not safe for concurrent use; one match owns it.
func WithRNG(rng *rand.Rand) MatchOption {
	return func(c *matchConfig) {
		c.rng = rng
	}
}

// WithSeed is shorthand for WithRNG(randutil.New(seed)).
func WithSeed(seed int64) MatchOption {
	return func(c *matchConfig) {
		c.rng = randutil.New(seed)
	}
}

// WithMaxHands stops the match after n hands even if both stacks remain.
func WithMaxHands(n int) MatchOption {
	return func(c *matchConfig) {
		c.maxHands = n
	}
}

// WithStackedHands queues fixed card piles. Each pile is dealt in order:
// small blind hole cards, big blind hole cards, flop, turn, river. Once the
// queue is empty hands are dealt from the shuffled deck again.
func WithStackedHands(piles ...[]deck.Card) MatchOption {
	return func(c *matchConfig) {
		c.stacked = append(c.stacked, piles...)
	}
}

// WithSmallBlindSeat fixes which participant (0 or 1, in NewMatch argument
// order) posts the small blind in the first hand.
func WithSmallBlindSeat(i int) MatchOption {
	return func(c *matchConfig) {
		c.firstSB = i
	}
}

// WithHandIDs overrides hand ID generation, mainly for tests.
func WithHandIDs(next func() string) MatchOption {
	return func(c *matchConfig) {
		c.newHandID = next
	}
}
