package chat

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/jinzhu/copier"

	"github.com/DrizzleTime/foxelbot/chat/event"
	"github.com/DrizzleTime/foxelbot/chat/model"
)

// Snapshot is a deep copy of the conversation state. Observers get a fresh
// one on every mutation, so reference-equality change detection works.
type Snapshot struct {
	Messages     []model.Message
	Pending      []model.PendingToolCall
	RunningTools map[string]string
}

// Store owns the ordered message log, the pending tool call list and the
// in-flight streaming bookkeeping. It is mutated only through Apply and the
// turn lifecycle methods; everything else reads copies.
type Store struct {
	mu sync.Mutex

	messages []model.Message
	pending  []model.PendingToolCall

	// tool_call_id -> display name, tools currently executing server-side
	runningTools map[string]string

	// streaming id -> index in messages of the assistant message
	// currently receiving deltas
	streamingIndex map[string]int

	// messages snapshot taken when the turn began, prepended on done
	turnBase []model.Message

	subscribers []func(Snapshot)
}

func NewStore() *Store {
	return &Store{
		runningTools:   make(map[string]string),
		streamingIndex: make(map[string]int),
	}
}

// Subscribe registers fn to run after every mutation. Register before the
// first turn starts; subscription is not concurrency-safe against Apply.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Apply executes one event's mutation recipe.
func (s *Store) Apply(ev event.Event) {
	s.mu.Lock()

	switch e := ev.(type) {
	case event.AssistantStart:
		s.messages = append(s.messages, model.Message{Role: model.RoleAssistant})
		s.streamingIndex[e.Id] = len(s.messages) - 1

	case event.AssistantDelta:
		// unknown or already finalized id means a stale or duplicate
		// frame, not an error
		if idx, ok := s.streamingIndex[e.Id]; ok {
			s.messages[idx].Content.Append(e.Delta)
		}

	case event.AssistantEnd:
		if idx, ok := s.streamingIndex[e.Id]; ok {
			s.messages[idx] = e.Message
			delete(s.streamingIndex, e.Id)
		}

	case event.ToolStart:
		s.runningTools[e.ToolCallId] = e.ToolName

	case event.ToolEnd:
		delete(s.runningTools, e.ToolCallId)
		s.messages = append(s.messages, e.Message)

	case event.Pending:
		// replaced wholesale, never merged
		s.pending = e.PendingToolCalls

	case event.Done:
		s.messages = append(slices.Clone(s.turnBase), e.Messages...)
		s.pending = e.PendingToolCalls
		s.runningTools = make(map[string]string)
		s.streamingIndex = make(map[string]int)
	}

	s.notifyLocked()
}

// BeginTurn records the base message snapshot for the starting turn and
// marks the approved tool calls as already running, so observers can show
// them before the first tool_start frame lands. Transient state left behind
// by a superseded turn is dropped, no more frames will arrive for it.
func (s *Store) BeginTurn(base []model.Message, approvedIds []string) {
	s.mu.Lock()
	s.turnBase = slices.Clone(base)
	s.runningTools = make(map[string]string)
	s.streamingIndex = make(map[string]int)
	for _, id := range approvedIds {
		s.runningTools[id] = ""
	}
	s.notifyLocked()
}

// AbandonTurn drops the transient per-turn state after a cancellation; no
// more frames will arrive to finish it.
func (s *Store) AbandonTurn() {
	s.mu.Lock()
	s.runningTools = make(map[string]string)
	s.streamingIndex = make(map[string]int)
	s.notifyLocked()
}

// AppendUserMessage adds a user message, clears any pending decisions and
// returns the message log to base the next turn on.
func (s *Store) AppendUserMessage(text string) []model.Message {
	s.mu.Lock()
	s.messages = append(s.messages, model.NewUserMessage(text))
	s.pending = nil
	base := slices.Clone(s.messages)
	s.notifyLocked()
	return base
}

func (s *Store) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

func (s *Store) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

func (s *Store) PendingIds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.pending))
	for _, p := range s.pending {
		ids = append(ids, p.Id)
	}
	return ids
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.pending = nil
	s.turnBase = nil
	s.runningTools = make(map[string]string)
	s.streamingIndex = make(map[string]int)
	s.notifyLocked()
}

// notifyLocked snapshots under the lock, releases it, then fans out.
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	subscribers := s.subscribers
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Messages:     make([]model.Message, 0, len(s.messages)),
		Pending:      make([]model.PendingToolCall, 0, len(s.pending)),
		RunningTools: make(map[string]string, len(s.runningTools)),
	}

	deepCopy(&snap.Messages, &s.messages)
	deepCopy(&snap.Pending, &s.pending)
	for id, name := range s.runningTools {
		snap.RunningTools[id] = name
	}

	return snap
}

func deepCopy[T any](dst, src *T) {
	if err := copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true}); err != nil {
		slog.Error("[chat] failed to copy snapshot", "error", err)
	}
}
