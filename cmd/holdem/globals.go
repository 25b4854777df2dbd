package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/lox/headsup/internal/config"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/strategy"
)

// Globals are flags shared by every command. Set flags override the config
// file.
type Globals struct {
	Config   string `short:"c" default:"holdem.hcl" help:"HCL config file (defaults apply when missing)"`
	LogLevel string `default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFile  string `help:"Write logs to this file"`
	NoColor  bool   `help:"Disable coloured output"`
	Seed     int64  `help:"RNG seed, 0 for time seeded"`
	Hands    int    `help:"Stop after this many hands, 0 to play until a stack is empty"`
	Style    string `help:"Bot style (Optimal, TAG, LAG, TP, LP)"`
}

// setupLogger builds the logger. Without a log file, logs go to fallback.
func (g *Globals) setupLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	w, closeFn := fallback, func() {}
	if g.LogFile != "" {
		f, err := os.OpenFile(g.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closeFn = f, func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	return logger, closeFn, nil
}

// loadConfig reads the config file and applies flag overrides
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Seed != 0 {
		cfg.Match.Seed = g.Seed
	}
	if g.Hands != 0 {
		cfg.Match.MaxHands = g.Hands
	}
	if g.Style != "" {
		cfg.Bot.Style = g.Style
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}
	return cfg, nil
}

// newBot creates the policy participant, with overrides when configured
func newBot(cfg *config.Config, logger *log.Logger) (*game.Participant, error) {
	overrides, err := loadOverrides(cfg, logger)
	if err != nil {
		return nil, err
	}
	return botWith(cfg, overrides)
}

// loadOverrides reads the configured strategy table. The table is read-only
// and may be shared between matches.
func loadOverrides(cfg *config.Config, logger *log.Logger) (game.StrategyTable, error) {
	if cfg.Bot.StrategyFile == "" {
		return nil, nil
	}
	table, err := strategy.Load(cfg.Bot.StrategyFile)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded strategy overrides", "file", cfg.Bot.StrategyFile, "entries", table.Len())
	return table, nil
}

func botWith(cfg *config.Config, overrides game.StrategyTable) (*game.Participant, error) {
	style, err := cfg.Style()
	if err != nil {
		return nil, err
	}
	return game.NewPolicy(cfg.Bot.Name, cfg.Match.StartingChips, style, overrides), nil
}

// newMatch seats human against the configured bot
func newMatch(cfg *config.Config, human *game.Participant, logger *log.Logger) (*game.Match, error) {
	bot, err := newBot(cfg, logger)
	if err != nil {
		return nil, err
	}

	seed := randutil.ResolveSeed(cfg.Match.Seed)
	logger.Info("Starting match",
		"human", human.Name,
		"bot", bot.Name,
		"style", bot.Style,
		"chips", cfg.Match.StartingChips,
		"small_blind", cfg.Match.SmallBlind,
		"seed", seed)

	return game.NewMatch(human, bot, cfg.Match.SmallBlind,
		game.WithLogger(logger),
		game.WithSeed(seed),
		game.WithMaxHands(cfg.Match.MaxHands))
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
