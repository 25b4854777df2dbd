package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/lox/headsup/internal/display"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/remote"
	"golang.org/x/sync/errgroup"
)

// ServeCmd plays a match with the human seat behind a websocket
type ServeCmd struct {
	Addr  string `help:"Listen address (overrides the config file)"`
	Quiet bool   `help:"Do not print the hand log"`
}

func (c *ServeCmd) Run(g *Globals) error {
	logger, closeLog, err := g.setupLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}

	src := game.NewChannelSource()
	human := game.NewHuman(cfg.Human.Name, cfg.Match.StartingChips, src)
	match, err := newMatch(cfg, human, logger)
	if err != nil {
		return err
	}

	srv := remote.NewServer(src, logger, remote.WithTimeout(cfg.HumanTimeout()))
	match.EventBus().Subscribe(srv)
	if !c.Quiet {
		match.EventBus().Subscribe(display.NewPrinter(os.Stdout, display.Options{NoColor: g.NoColor}))
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signalContext()
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info("Waiting for player", "addr", "ws://"+cfg.Server.Address+"/ws")
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		srv.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	eg.Go(func() error {
		if err := srv.Serve(ctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		defer cancel()
		defer src.Close()
		res, err := match.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Info("Match finished", "hands", res.Hands, "winner", res.Winner)
		return nil
	})

	return eg.Wait()
}
