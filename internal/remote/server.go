// Package remote seats the human participant behind a websocket.
//
// The server feeds a game.ChannelSource: each action request is pushed to the
// connected client as an action_required message and the client's action
// message resolves it. Game events are streamed as rendered text. With a
// timeout configured, an unanswered request is resolved with a check, or a
// fold when facing a bet.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/headsup/internal/deck"
	"github.com/lox/headsup/internal/display"
	"github.com/lox/headsup/internal/game"
)

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used for timeouts and message timestamps
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithTimeout bounds how long the client has to answer. Zero waits forever.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// Server serves a single human seat over websocket
type Server struct {
	src      *game.ChannelSource
	logger   *log.Logger
	clock    quartz.Clock
	timeout  time.Duration
	upgrader websocket.Upgrader
	fmt      *display.Formatter

	mu      sync.Mutex
	conn    *Connection
	pending *game.ActionRequest
	seq     int
	timer   *quartz.Timer
}

// NewServer creates a server resolving src's requests
func NewServer(src *game.ChannelSource, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		src:    src,
		logger: logger.WithPrefix("remote"),
		clock:  quartz.NewReal(),
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		fmt: display.NewFormatter(display.NewStyles(display.NewRenderer(io.Discard, display.Options{NoColor: true}))),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes: /ws for the player and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Serve forwards action requests to the client until the source closes or
// ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	defer s.clearPending()
	for {
		select {
		case req := <-s.src.Requests():
			s.request(req)
		case <-s.src.Done():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// OnEvent implements game.EventSubscriber
func (s *Server) OnEvent(e game.GameEvent) {
	text := s.fmt.Format(e)
	if text == "" {
		return
	}
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn != nil {
		s.send(conn, MessageTypeEvent, EventData{Event: e.EventType().String(), Text: text})
	}
}

// Close drops the connected client, if any
func (s *Server) Close() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		http.Error(w, "seat already taken", http.StatusConflict)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(ws, s.logger, s.handleMessage)
	s.conn = conn
	conn.Start()
	s.logger.Info("Client connected", "addr", r.RemoteAddr)

	if s.pending != nil {
		s.send(conn, MessageTypeActionRequired, s.actionRequired(*s.pending))
	}

	go func() {
		<-conn.Done()
		s.mu.Lock()
		if s.conn == conn {
			s.conn = nil
		}
		s.mu.Unlock()
		s.logger.Info("Client disconnected")
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s *Server) request(req game.ActionRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.pending = &req
	s.stopTimer()
	if s.timeout > 0 {
		seq := s.seq
		s.timer = s.clock.AfterFunc(s.timeout, func() { s.expire(seq) })
	}

	if s.conn != nil {
		s.send(s.conn, MessageTypeActionRequired, s.actionRequired(req))
	} else {
		s.logger.Debug("Action required with no client connected", "hand", req.HandID)
	}
}

func (s *Server) expire(seq int) {
	s.mu.Lock()
	if s.pending == nil || s.seq != seq {
		s.mu.Unlock()
		return
	}
	req := *s.pending
	d := checkOrFold(req)
	s.pending = nil
	s.timer = nil
	conn := s.conn
	s.mu.Unlock()

	s.logger.Warn("Decision timeout", "timeout", s.timeout, "action", d)
	if err := s.src.Submit(req.Seq, d); err != nil {
		s.logger.Error("Failed to submit timeout decision", "error", err)
		return
	}
	if conn != nil {
		s.send(conn, MessageTypeTimeout, TimeoutData{Action: d.String()})
	}
}

func (s *Server) handleMessage(msg *Message) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return
	}

	if msg.Type != MessageTypeAction {
		s.sendError(conn, "unknown_type", fmt.Sprintf("unexpected message type %q", msg.Type))
		return
	}

	var data ActionData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		s.sendError(conn, "invalid_message", "failed to parse action data")
		return
	}
	action, err := game.ParseAction(data.Action)
	if err != nil {
		s.sendError(conn, "invalid_action", err.Error())
		return
	}

	s.mu.Lock()
	if s.pending == nil {
		s.mu.Unlock()
		s.sendError(conn, "not_your_turn", "no action is pending")
		return
	}
	req := *s.pending
	s.pending = nil
	s.stopTimer()
	s.mu.Unlock()

	d := game.Decision{Action: action, Amount: data.Amount}
	if action == game.Call {
		d.Amount = min(req.ToCall(), req.Chips)
	}
	if err := s.src.Submit(req.Seq, d); err != nil {
		s.sendError(conn, "rejected", err.Error())
		return
	}
	s.logger.Debug("Decision received", "decision", d)
}

func (s *Server) clearPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.stopTimer()
}

// stopTimer must be called with s.mu held
func (s *Server) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Server) actionRequired(req game.ActionRequest) ActionRequiredData {
	data := ActionRequiredData{
		HandID:        req.HandID,
		Street:        req.Street.String(),
		HoleCards:     cardStrings(req.HoleCards),
		Board:         cardStrings(req.Board),
		Pot:           req.Pot,
		Chips:         req.Chips,
		Bet:           req.Bet,
		OpponentChips: req.OpponentChips,
		OpponentBet:   req.OpponentBet,
		ToCall:        req.ToCall(),
		MinRaise:      req.MinRaise,
		TimeoutSecs:   int(s.timeout / time.Second),
	}
	for _, a := range req.Legal {
		data.Legal = append(data.Legal, a.String())
	}
	if req.Retry != nil {
		data.Retry = req.Retry.Error()
	}
	return data
}

func (s *Server) send(conn *Connection, t MessageType, data any) {
	msg, err := NewMessage(t, data, s.clock.Now())
	if err != nil {
		s.logger.Error("Failed to encode message", "type", t, "error", err)
		return
	}
	if err := conn.Send(msg); err != nil {
		s.logger.Debug("Dropped message", "type", t, "error", err)
	}
}

func (s *Server) sendError(conn *Connection, code, message string) {
	s.send(conn, MessageTypeError, ErrorData{Code: code, Message: message})
}

func checkOrFold(req game.ActionRequest) game.Decision {
	if req.Bet >= req.OpponentBet {
		return game.Decision{Action: game.Check}
	}
	return game.Decision{Action: game.Fold}
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
