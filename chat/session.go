package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/DrizzleTime/foxelbot/api"
	"github.com/DrizzleTime/foxelbot/chat/event"
	"github.com/DrizzleTime/foxelbot/chat/model"
	"github.com/DrizzleTime/foxelbot/pkg/sse"
)

// TurnState tracks where the current generation is in its lifecycle.
type TurnState string

const (
	TurnIdle      TurnState = "idle"
	TurnOpening   TurnState = "opening"
	TurnStreaming TurnState = "streaming"
	TurnCompleted TurnState = "completed"
	TurnCancelled TurnState = "cancelled"
	TurnFailed    TurnState = "failed"
)

// StreamOpener issues the chat request and hands back the raw event-stream
// body. Implemented by [api.Client].
type StreamOpener interface {
	OpenStream(ctx context.Context, req *api.ChatRequest) (io.ReadCloser, error)
}

// Decision carries the tool call ids the user just approved or rejected.
type Decision struct {
	Approved []string
	Rejected []string
}

type SessionConfig struct {
	// executes tool calls server-side without asking when set
	AutoExecute bool

	// directory context sent with every request
	CurrentPath string
}

// Session owns at most one in-flight stream. Every Run bumps a generation
// counter and cancels the previous request; frames that belong to a
// superseded generation are discarded before they can touch the store.
type Session struct {
	client StreamOpener
	store  *Store
	c      SessionConfig

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  TurnState
}

func NewSession(client StreamOpener, store *Store, c SessionConfig) *Session {
	return &Session{
		client: client,
		store:  store,
		c:      c,
		state:  TurnIdle,
	}
}

func (s *Session) State() TurnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run executes one turn of the protocol: open the stream, decode frames and
// apply them until the body ends. It blocks until the turn finishes, so
// callers that want to keep their loop responsive run it on a goroutine.
// A turn superseded by a newer Run or cancelled via Cancel returns nil.
func (s *Session) Run(ctx context.Context, base []model.Message, decision *Decision) error {
	runCtx, gen := s.begin(ctx)

	req := &api.ChatRequest{
		Messages:    base,
		AutoExecute: s.c.AutoExecute,
	}
	if s.c.CurrentPath != "" {
		req.Context = &api.RequestContext{CurrentPath: s.c.CurrentPath}
	}

	var approvedIds []string
	if decision != nil {
		req.ApprovedToolCallIds = decision.Approved
		req.RejectedToolCallIds = decision.Rejected
		approvedIds = decision.Approved
	}

	s.beginTurn(gen, base, approvedIds)

	body, err := s.client.OpenStream(runCtx, req)
	if err != nil {
		if cancelled(runCtx, err) {
			s.discardTurn(gen)
			return nil
		}
		s.setState(gen, TurnFailed)
		return err
	}
	defer body.Close()

	s.setState(gen, TurnStreaming)

	decoder := sse.NewDecoder(func(name string, data []byte) {
		s.applyFrame(gen, name, data)
	})
	if _, err := io.Copy(decoder, body); err != nil {
		if cancelled(runCtx, err) {
			s.discardTurn(gen)
			return nil
		}
		s.setState(gen, TurnFailed)
		return fmt.Errorf("stream aborted: %w", err)
	}
	decoder.Close()

	s.setState(gen, TurnCompleted)
	return nil
}

// Cancel aborts the in-flight turn, if any.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// begin supersedes the previous generation and allocates the next one.
func (s *Session) begin(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.gen++
	s.cancel = cancel
	s.state = TurnOpening

	return runCtx, s.gen
}

// beginTurn hands the turn base to the store, unless a newer Run superseded
// this generation between begin and here; the stale base must not overwrite
// the live turn's.
func (s *Session) beginTurn(gen uint64, base []model.Message, approvedIds []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		return
	}

	s.store.BeginTurn(base, approvedIds)
}

// applyFrame feeds one decoded frame into the store, unless the frame's
// generation has been superseded in the meantime.
func (s *Session) applyFrame(gen uint64, name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		// stale frame from a superseded turn
		return
	}

	ev, err := event.Decode(name, data)
	if err != nil {
		// tolerate decode glitches, the terminal done event will
		// repair any partial state
		slog.Warn("[chat] dropping undecodable frame", "event", name, "error", err)
		return
	}

	if _, ok := ev.(event.Unknown); ok {
		// forward compatible no-op
		return
	}

	s.store.Apply(ev)
}

// cancelled tells a caller-initiated abort apart from a genuine transport
// failure. Not every http transport wraps the context error, so the run
// context is consulted too.
func cancelled(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || ctx.Err() != nil
}

// discardTurn drops the half-built turn state after a cancellation, unless a
// newer Run already took over bookkeeping.
func (s *Session) discardTurn(gen uint64) {
	s.mu.Lock()
	current := s.gen == gen
	if current {
		s.state = TurnCancelled
	}
	s.mu.Unlock()

	if current {
		s.store.AbandonTurn()
	}
}

func (s *Session) setState(gen uint64, state TurnState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.state = state
	}
}
