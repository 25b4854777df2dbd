// Package game implements heads-up No-Limit Texas Hold'em between two
// participants.
//
// The main type is Match, which owns both participants, the deck and the RNG,
// and plays hands until one stack is empty.
//
// # Basic Usage
//
// Play a human against a policy participant:
//
//	src := game.NewChannelSource()
//	human := game.NewHuman("Billy", 5000, src)
//	bot := game.NewPolicy("Bot", 5000, game.Optimal, nil)
//	m, err := game.NewMatch(human, bot, 250, game.WithLogger(logger))
//	// a UI goroutine reads src.Requests() and answers with src.Submit(req.Seq, d)
//	result, err := m.Run(ctx)
//
// # Deterministic Testing
//
// Randomness flows through a single *rand.Rand. Use WithSeed or WithRNG to fix
// it, WithStackedHands to deal known cards and WithSmallBlindSeat to fix the
// first blinds:
//
//	m, _ := game.NewMatch(a, b, 10,
//	    game.WithSeed(42),
//	    game.WithStackedHands(deck.MustParseCards("As Ad Kc Kd 2h 7s 9c Jd 3s")))
//
// # Architecture
//
// Match delegates each hand to a Hand, which runs one Round per street:
//   - Round: the betting state machine, asking seats for decisions
//   - Validate: the legality rules shared by rounds and the policy engine
//   - decidePolicy: weighted sampling over the seven-action menu
//   - evaluator.Resolve: showdown ranking and kicker fallback
//
// All state is mutated on the goroutine calling Run. The only blocking point
// is a human participant's ActionSource.
package game
