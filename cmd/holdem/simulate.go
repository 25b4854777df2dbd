package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/headsup/internal/display"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/randutil"
	"golang.org/x/sync/errgroup"
)

const defaultSimulationHands = 1000

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// SimulateCmd pits the configured bot against a second policy seat
type SimulateCmd struct {
	Matches  int    `default:"100" help:"Number of matches to play"`
	Opponent string `default:"TAG" help:"Style of the opposing bot"`
	Workers  int    `default:"0" help:"Matches played in parallel, 0 for one per CPU"`
	Verbose  bool   `help:"Print every hand of the first match"`
}

// simulationSummary accumulates match results
type simulationSummary struct {
	mu      sync.Mutex
	wins    map[string]int
	chips   map[string]int
	stopped int
	hands   int
}

func (s *simulationSummary) add(res *game.MatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hands += res.Hands
	if res.Winner == "" {
		s.stopped++
	} else {
		s.wins[res.Winner]++
	}
	for name, chips := range res.Stacks {
		s.chips[name] += chips
	}
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger, closeLog, err := g.setupLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Match.MaxHands == 0 {
		cfg.Match.MaxHands = defaultSimulationHands
	}
	opponentStyle, err := game.ParseStyle(c.Opponent)
	if err != nil {
		return err
	}
	opponentName := "Opponent"
	if opponentName == cfg.Bot.Name {
		opponentName = "Opponent-2"
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	seed := randutil.ResolveSeed(cfg.Match.Seed)
	logger.Info("Starting simulation", "matches", c.Matches, "bot", cfg.Bot.Style, "opponent", opponentStyle, "seed", seed, "workers", workers)

	overrides, err := loadOverrides(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	summary := &simulationSummary{wins: map[string]int{}, chips: map[string]int{}}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i := range c.Matches {
		eg.Go(func() error {
			bot, err := botWith(cfg, overrides)
			if err != nil {
				return err
			}
			opponent := game.NewPolicy(opponentName, cfg.Match.StartingChips, opponentStyle, nil)

			match, err := game.NewMatch(bot, opponent, cfg.Match.SmallBlind,
				game.WithLogger(logger.With("match", i)),
				game.WithSeed(seed+int64(i)),
				game.WithMaxHands(cfg.Match.MaxHands))
			if err != nil {
				return err
			}
			if c.Verbose && i == 0 {
				match.EventBus().Subscribe(display.NewPrinter(os.Stdout, display.Options{NoColor: g.NoColor}))
			}

			res, err := match.Run(ctx)
			if err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
			summary.add(res)
			return nil
		})
	}
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	c.print(summary, cfg.Bot.Name, opponentName)
	return nil
}

func (c *SimulateCmd) print(s *simulationSummary, names ...string) {
	sort.Strings(names)
	played := 0
	for _, name := range names {
		played += s.wins[name]
	}
	played += s.stopped

	fmt.Println(titleStyle.Render("Simulation results"))
	fmt.Printf("Matches: %d  Hands: %d", played, s.hands)
	if played > 0 {
		fmt.Printf("  (%.1f per match)", float64(s.hands)/float64(played))
	}
	fmt.Println()
	for _, name := range names {
		pct := 0.0
		if played > 0 {
			pct = 100 * float64(s.wins[name]) / float64(played)
		}
		fmt.Printf("  %-12s wins %4d (%5.1f%%)  chips %d\n", name, s.wins[name], pct, s.chips[name])
	}
	if s.stopped > 0 {
		fmt.Printf("  %d matches hit the hand limit\n", s.stopped)
	}
}
