package chat

import (
	"context"
	"errors"
)

// ErrPendingDecision rejects a new user turn while tool call decisions are
// still outstanding.
var ErrPendingDecision = errors.New("pending tool calls must be approved or rejected first")

// Conversation glues the store and the session into the user-facing surface:
// user turns, tool call decisions and clearing. Decisions never append
// messages locally; the server replies with the resulting tool messages.
type Conversation struct {
	store   *Store
	session *Session
}

func NewConversation(client StreamOpener, c SessionConfig) *Conversation {
	store := NewStore()
	return &Conversation{
		store:   store,
		session: NewSession(client, store, c),
	}
}

func (c *Conversation) Store() *Store {
	return c.store
}

// SendUserTurn appends a user message and runs a full turn against the
// server. It blocks until the stream finishes.
func (c *Conversation) SendUserTurn(ctx context.Context, text string) error {
	if c.store.HasPending() {
		return ErrPendingDecision
	}

	base := c.store.AppendUserMessage(text)
	return c.session.Run(ctx, base, nil)
}

// Approve sends an approval decision for one pending tool call. An id that
// is no longer pending is forwarded as-is; the server's next pending/done
// response is authoritative.
func (c *Conversation) Approve(ctx context.Context, id string) error {
	return c.session.Run(ctx, c.store.Messages(), &Decision{Approved: []string{id}})
}

func (c *Conversation) Reject(ctx context.Context, id string) error {
	return c.session.Run(ctx, c.store.Messages(), &Decision{Rejected: []string{id}})
}

func (c *Conversation) ApproveAll(ctx context.Context) error {
	return c.session.Run(ctx, c.store.Messages(), &Decision{Approved: c.store.PendingIds()})
}

func (c *Conversation) RejectAll(ctx context.Context) error {
	return c.session.Run(ctx, c.store.Messages(), &Decision{Rejected: c.store.PendingIds()})
}

// Clear cancels any in-flight turn and wipes the conversation.
func (c *Conversation) Clear() {
	c.session.Cancel()
	c.store.Clear()
}
