// Package display renders game events as a plain hand log.
package display

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/headsup/internal/deck"
	"github.com/lox/headsup/internal/game"
	"github.com/muesli/termenv"
)

// Options controls rendering
type Options struct {
	// NoColor strips all styling. The NO_COLOR environment variable has the
	// same effect.
	NoColor bool
}

// Styles used for the hand log
type Styles struct {
	Header    lipgloss.Style
	Street    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Action    lipgloss.Style
	Winner    lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
}

// NewStyles builds the styles for renderer r
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header:    r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Bold(true),
		Street:    r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		RedCard:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		BlackCard: r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
		Action:    r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		Winner:    r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Warning:   r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		Info:      r.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

// NewRenderer returns a lipgloss renderer for w honouring opts
func NewRenderer(w io.Writer, opts Options) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if opts.NoColor || termenv.EnvNoColor() {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Formatter turns events into log lines
type Formatter struct {
	styles Styles
}

// NewFormatter creates a formatter with the given styles
func NewFormatter(styles Styles) *Formatter {
	return &Formatter{styles: styles}
}

// Card renders a single card in its suit colour
func (f *Formatter) Card(c deck.Card) string {
	if c.IsRed() {
		return f.styles.RedCard.Render(c.String())
	}
	return f.styles.BlackCard.Render(c.String())
}

// Cards renders cards as "[A♠ K♥]"
func (f *Formatter) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = f.Card(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Format returns the log lines for e, or "" for events that print nothing
func (f *Formatter) Format(e game.GameEvent) string {
	switch e := e.(type) {
	case game.HandStartedEvent:
		return f.handStarted(e)
	case game.StreetRevealedEvent:
		if e.Street == game.Preflop {
			return ""
		}
		return f.styles.Street.Render(fmt.Sprintf("*** %s ***", strings.ToUpper(e.Street.String()))) + " " + f.Cards(e.Board)
	case game.ActionTakenEvent:
		return f.styles.Action.Render(f.action(e))
	case game.ActionRejectedEvent:
		return f.styles.Warning.Render(fmt.Sprintf("%s: %s rejected (%s), try again", e.Player, e.Decision, e.Reason))
	case game.ShowdownEvent:
		var b strings.Builder
		b.WriteString(f.styles.Street.Render("*** SHOWDOWN ***"))
		for i, name := range e.Players {
			fmt.Fprintf(&b, "\n%s shows %s (%s)", name, f.Cards(e.HoleCards[i]), e.Results[i])
		}
		return b.String()
	case game.WinnerDecidedEvent:
		return f.winner(e)
	case game.MatchEndedEvent:
		if e.Winner == "" {
			return f.styles.Header.Render(fmt.Sprintf("Match stopped after %d hands", e.Hands)) + "\n" + f.stacks(e.Stacks)
		}
		return f.styles.Header.Render(fmt.Sprintf("Match over after %d hands: %s wins", e.Hands, e.Winner))
	}
	return ""
}

func (f *Formatter) handStarted(e game.HandStartedEvent) string {
	var b strings.Builder
	b.WriteString(f.styles.Header.Render(fmt.Sprintf("Hand #%d", e.Number)))
	b.WriteString(" ")
	b.WriteString(f.styles.Info.Render(e.HandID))
	sb, bb := e.Seats[game.SmallBlindSeat], e.Seats[game.BigBlindSeat]
	fmt.Fprintf(&b, "\n%s (%d) posts small blind %d", sb.Name, sb.Chips, e.SmallBlind)
	fmt.Fprintf(&b, "\n%s (%d) posts big blind %d", bb.Name, bb.Chips, e.BigBlind)
	for _, seat := range e.Seats {
		if cards, ok := e.HoleCards[seat.Name]; ok {
			fmt.Fprintf(&b, "\nDealt to %s: %s", seat.Name, f.Cards(cards))
		}
	}
	return b.String()
}

func (f *Formatter) action(e game.ActionTakenEvent) string {
	switch {
	case e.Action == game.Fold:
		return fmt.Sprintf("%s: folds", e.Player)
	case e.Action == game.Check:
		return fmt.Sprintf("%s: checks", e.Player)
	case e.Chips == 0 && e.Amount > 0:
		return fmt.Sprintf("%s: goes all-in for %d (pot %d)", e.Player, e.Amount, e.Pot)
	case e.Action == game.Call:
		return fmt.Sprintf("%s: calls %d (pot %d)", e.Player, e.Amount, e.Pot)
	default:
		return fmt.Sprintf("%s: raises %d (pot %d)", e.Player, e.Amount, e.Pot)
	}
}

func (f *Formatter) winner(e game.WinnerDecidedEvent) string {
	var line string
	if e.Draw {
		share := 0
		for _, v := range e.Payouts {
			share = v
		}
		line = fmt.Sprintf("Split pot of %d, %d each", e.Pot, share)
	} else {
		line = fmt.Sprintf("%s wins %d", e.Winner, e.Pot)
	}
	return f.styles.Winner.Render(line) + "\n" + f.stacks(e.Stacks)
}

func (f *Formatter) stacks(stacks map[string]int) string {
	names := make([]string, 0, len(stacks))
	for name := range stacks {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s %d", name, stacks[name])
	}
	return f.styles.Info.Render("Stacks: " + strings.Join(parts, ", "))
}

// Printer writes formatted events to a writer. It implements
// game.EventSubscriber.
type Printer struct {
	mu  sync.Mutex
	w   io.Writer
	fmt *Formatter
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer, opts Options) *Printer {
	return &Printer{
		w:   w,
		fmt: NewFormatter(NewStyles(NewRenderer(w, opts))),
	}
}

// OnEvent implements game.EventSubscriber
func (p *Printer) OnEvent(e game.GameEvent) {
	line := p.fmt.Format(e)
	if line == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, line)
}
