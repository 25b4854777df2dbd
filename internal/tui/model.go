package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/headsup/internal/display"
	"github.com/lox/headsup/internal/game"
)

// Submitter accepts the player's decisions. *game.ChannelSource satisfies it.
type Submitter interface {
	Submit(seq uint64, d game.Decision) error
	Close()
}

// RequestMsg asks the player to act
type RequestMsg struct {
	Request game.ActionRequest
}

// EventMsg carries a game event into the log
type EventMsg struct {
	Event game.GameEvent
}

// MatchDoneMsg is sent once the match stops
type MatchDoneMsg struct {
	Result *game.MatchResult
	Err    error
}

// Model is the bubbletea model for a single human seat
type Model struct {
	logger *log.Logger
	fmt    *display.Formatter
	submit Submitter

	logView viewport.Model
	input   textinput.Model

	lines   []string
	pending *game.ActionRequest
	status  string
	pot     int
	stacks  map[string]int

	width, height int
	done          bool
	quitting      bool
}

// NewModel creates a model that sends decisions to submit
func NewModel(submit Submitter, formatter *display.Formatter, logger *log.Logger) *Model {
	vp := viewport.New(80, 20)

	ti := textinput.New()
	ti.Placeholder = "fold, check, call, raise N, allin"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.Prompt = "> "
	ti.PromptStyle = PromptStyle

	return &Model{
		logger:  logger.WithPrefix("tui"),
		fmt:     formatter,
		submit:  submit,
		logView: vp,
		input:   ti,
		stacks:  map[string]int{},
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.logView.Width = max(msg.Width-2, 1)
		m.logView.Height = max(msg.Height-8, 1)
		m.logView.GotoBottom()

	case RequestMsg:
		req := msg.Request
		m.pending = &req
		m.status = ""
		if req.Retry != nil {
			m.status = req.Retry.Error()
		}

	case EventMsg:
		m.track(msg.Event)
		if line := m.fmt.Format(msg.Event); line != "" {
			m.appendLog(line)
		}

	case MatchDoneMsg:
		m.done = true
		m.pending = nil
		if msg.Err != nil {
			m.status = msg.Err.Error()
		}
		m.appendLog(InfoStyle.Render("Press enter to exit"))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m.quit()
		case tea.KeyEnter:
			if m.done {
				return m.quit()
			}
			m.enter(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			return m, nil
		case tea.KeyPgUp:
			m.logView.HalfPageUp()
			return m, nil
		case tea.KeyPgDown:
			m.logView.HalfPageDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.submit.Close()
	return m, tea.Quit
}

func (m *Model) enter(line string) {
	if m.pending == nil {
		m.status = "waiting for your turn"
		return
	}
	d, err := ParseCommand(line, *m.pending)
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.submit.Submit(m.pending.Seq, d); err != nil {
		m.logger.Warn("Decision not accepted", "decision", d, "error", err)
		m.status = err.Error()
		return
	}
	m.logger.Debug("Submitted decision", "decision", d)
	m.pending = nil
	m.status = ""
}

func (m *Model) track(e game.GameEvent) {
	switch e := e.(type) {
	case game.HandStartedEvent:
		m.pot = e.Pot
	case game.StreetRevealedEvent:
		m.pot = e.Pot
	case game.ActionTakenEvent:
		m.pot = e.Pot
		m.stacks[e.Player] = e.Chips
	case game.WinnerDecidedEvent:
		m.pot = 0
		for name, chips := range e.Stacks {
			m.stacks[name] = chips
		}
	}
}

func (m *Model) appendLog(line string) {
	m.lines = append(m.lines, line)
	m.logView.SetContent(strings.Join(m.lines, "\n"))
	m.logView.GotoBottom()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	title := TitleStyle.Render("Heads-up Hold'em") + " " + InfoStyle.Render(fmt.Sprintf("pot %d", m.pot))
	logPane := paneStyle.Render(m.logView.View())

	var b strings.Builder
	switch {
	case m.done:
		b.WriteString(InfoStyle.Render("Match finished"))
	case m.pending != nil:
		req := m.pending
		fmt.Fprintf(&b, "%s  %s  stack %d, to call %d\n",
			m.fmt.Cards(req.HoleCards), m.fmt.Cards(req.Board), req.Chips, req.ToCall())
		b.WriteString(ActionsStyle.Render("Actions: " + describeLegal(*req)))
	default:
		b.WriteString(InfoStyle.Render("Waiting..."))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.status))
	}

	style := paneStyle
	if m.pending != nil {
		style = activePaneStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, logPane, style.Render(b.String()))
}
