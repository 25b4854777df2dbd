package main

import (
	"fmt"
	"io"

	"github.com/lox/headsup/internal/display"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/tui"
)

// PlayCmd runs a match in the terminal
type PlayCmd struct {
	Name string `help:"Your display name (overrides the config file)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	// the terminal belongs to the UI, so logs only go to --log-file
	logger, closeLog, err := g.setupLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Name != "" {
		cfg.Human.Name = c.Name
	}

	src := game.NewChannelSource()
	human := game.NewHuman(cfg.Human.Name, cfg.Match.StartingChips, src)
	match, err := newMatch(cfg, human, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	res, err := tui.Run(ctx, match, src, display.Options{NoColor: g.NoColor}, logger)
	if err != nil {
		return err
	}

	switch {
	case res.Winner != "":
		fmt.Printf("%s wins after %d hands\n", res.Winner, res.Hands)
	default:
		fmt.Printf("Stopped after %d hands: %s %d, %s %d\n", res.Hands,
			human.Name, res.Stacks[human.Name], cfg.Bot.Name, res.Stacks[cfg.Bot.Name])
	}
	return nil
}
