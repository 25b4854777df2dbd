package game

import (
	"context"
	"errors"
	"sync"
)

// ErrNoPendingRequest is returned by Submit when no action has been requested
var ErrNoPendingRequest = errors.New("no action request pending")

// ErrStaleDecision is returned by Submit when the decision answers a request
// that is no longer pending
var ErrStaleDecision = errors.New("decision answers a superseded request")

// ChannelSource is an ActionSource fed by another goroutine, typically a UI.
// Each RequestAction stamps the request with a fresh Seq, publishes it on
// Requests and blocks until a Submit carrying that Seq, ctx cancellation or
// Close.
type ChannelSource struct {
	requests  chan ActionRequest
	decisions chan Decision
	closed    chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	seq     uint64
	pending bool
}

// NewChannelSource creates an open source
func NewChannelSource() *ChannelSource {
	return &ChannelSource{
		requests:  make(chan ActionRequest, 1),
		decisions: make(chan Decision, 1),
		closed:    make(chan struct{}),
	}
}

// Requests delivers each action request once
func (s *ChannelSource) Requests() <-chan ActionRequest {
	return s.requests
}

// Done is closed when the source is closed
func (s *ChannelSource) Done() <-chan struct{} {
	return s.closed
}

// RequestAction implements ActionSource
func (s *ChannelSource) RequestAction(ctx context.Context, req ActionRequest) (Decision, error) {
	s.mu.Lock()
	s.seq++
	req.Seq = s.seq
	s.pending = true
	s.mu.Unlock()
	defer s.cancelPending()

	select {
	case s.requests <- req:
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	case <-s.closed:
		return Decision{}, ErrSourceClosed
	}

	select {
	case d := <-s.decisions:
		return d, nil
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	case <-s.closed:
		return Decision{}, ErrSourceClosed
	}
}

// Submit resolves the pending request identified by seq. Only the first
// Submit per request is accepted.
func (s *ChannelSource) Submit(seq uint64, d Decision) error {
	select {
	case <-s.closed:
		return ErrSourceClosed
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending {
		return ErrNoPendingRequest
	}
	if seq != s.seq {
		return ErrStaleDecision
	}
	s.pending = false
	s.decisions <- d
	return nil
}

// Close unblocks any pending request with ErrSourceClosed
func (s *ChannelSource) Close() {
	s.closeOnce.Do(func() { close(s.closed) })
}

func (s *ChannelSource) cancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	// drop a decision submitted after we stopped waiting
	select {
	case <-s.decisions:
	default:
	}
	select {
	case <-s.requests:
	default:
	}
}
