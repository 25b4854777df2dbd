package tui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/headsup/internal/display"
	"github.com/lox/headsup/internal/game"
	"golang.org/x/sync/errgroup"
)

type sender interface {
	Send(msg tea.Msg)
}

// eventForwarder relays bus events into the program
type eventForwarder struct {
	to sender
}

func (f eventForwarder) OnEvent(e game.GameEvent) {
	f.to.Send(EventMsg{Event: e})
}

// forwardRequests relays action requests until the source closes
func forwardRequests(ctx context.Context, src *game.ChannelSource, to sender) {
	for {
		select {
		case req := <-src.Requests():
			to.Send(RequestMsg{Request: req})
		case <-src.Done():
			return
		case <-ctx.Done():
			return
		}
	}
}

// Run plays match in the terminal with src backing the human seat. Quitting
// the UI closes src, which stops the match at the next human decision.
func Run(ctx context.Context, match *game.Match, src *game.ChannelSource, opts display.Options, logger *log.Logger) (*game.MatchResult, error) {
	g, ctx := errgroup.WithContext(ctx)

	formatter := display.NewFormatter(display.NewStyles(display.NewRenderer(os.Stdout, opts)))
	model := NewModel(src, formatter, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	fwd := eventForwarder{to: p}
	match.EventBus().Subscribe(fwd)
	defer match.EventBus().Unsubscribe(fwd)

	g.Go(func() error {
		defer src.Close()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		forwardRequests(ctx, src, p)
		return nil
	})

	var result *game.MatchResult
	g.Go(func() error {
		var err error
		result, err = match.Run(ctx)
		p.Send(MatchDoneMsg{Result: result, Err: err})
		if errors.Is(err, game.ErrSourceClosed) || errors.Is(err, context.Canceled) {
			logger.Info("Match stopped", "hands", match.HandsPlayed())
			return nil
		}
		return err
	})

	err := g.Wait()
	return result, err
}
