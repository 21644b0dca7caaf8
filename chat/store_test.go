package chat

import (
	"testing"

	"github.com/DrizzleTime/foxelbot/chat/event"
	"github.com/DrizzleTime/foxelbot/chat/model"
)

func TestDeltaOrdering(t *testing.T) {
	s := NewStore()
	s.Apply(event.AssistantStart{Id: "a"})
	s.Apply(event.AssistantDelta{Id: "a", Delta: "He"})
	s.Apply(event.AssistantDelta{Id: "a", Delta: "llo"})

	snap := s.Snapshot()
	if len(snap.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(snap.Messages))
	}
	if got := snap.Messages[0].Content.Plain(); got != "Hello" {
		t.Fatalf("expected Hello, got %q", got)
	}
}

func TestFinalOverwriteIdempotence(t *testing.T) {
	s := NewStore()
	s.Apply(event.AssistantStart{Id: "a"})
	s.Apply(event.AssistantDelta{Id: "a", Delta: "Hel"})
	s.Apply(event.AssistantEnd{Id: "a", Message: model.Message{
		Role:    model.RoleAssistant,
		Content: model.Content{Text: "Hello world"},
	}})

	// the id is finalized, further deltas must be no-ops
	s.Apply(event.AssistantDelta{Id: "a", Delta: "!!!"})

	snap := s.Snapshot()
	if got := snap.Messages[0].Content.Plain(); got != "Hello world" {
		t.Fatalf("expected authoritative final message, got %q", got)
	}
}

func TestDeltaForUnknownIdIgnored(t *testing.T) {
	s := NewStore()
	s.Apply(event.AssistantDelta{Id: "ghost", Delta: "boo"})

	if snap := s.Snapshot(); len(snap.Messages) != 0 {
		t.Fatalf("unexpected messages: %v", snap.Messages)
	}
}

func TestToolStartEnd(t *testing.T) {
	s := NewStore()
	s.Apply(event.ToolStart{ToolCallId: "t1", ToolName: "delete_file"})

	snap := s.Snapshot()
	if snap.RunningTools["t1"] != "delete_file" {
		t.Fatalf("unexpected running tools: %v", snap.RunningTools)
	}

	s.Apply(event.ToolEnd{ToolCallId: "t1", ToolName: "delete_file", Message: model.Message{
		Role:       model.RoleTool,
		Content:    model.Content{Text: "deleted"},
		ToolCallId: "t1",
	}})

	snap = s.Snapshot()
	if len(snap.RunningTools) != 0 {
		t.Fatalf("expected running tools cleared, got %v", snap.RunningTools)
	}
	if len(snap.Messages) != 1 || snap.Messages[0].ToolCallId != "t1" {
		t.Fatalf("expected one tool message for t1, got %v", snap.Messages)
	}
}

func TestPendingReplaceNotMerge(t *testing.T) {
	s := NewStore()
	s.Apply(event.Pending{PendingToolCalls: []model.PendingToolCall{
		{Id: "t1", Name: "delete_file"},
		{Id: "t2", Name: "move_file"},
	}})
	s.Apply(event.Pending{PendingToolCalls: []model.PendingToolCall{}})

	if snap := s.Snapshot(); len(snap.Pending) != 0 {
		t.Fatalf("expected pending cleared, got %v", snap.Pending)
	}
}

func TestDoneSnapshotComposition(t *testing.T) {
	s := NewStore()
	base := []model.Message{
		model.NewUserMessage("m0"),
		{Role: model.RoleAssistant, Content: model.Content{Text: "m1"}},
	}
	s.BeginTurn(base, nil)

	s.Apply(event.AssistantStart{Id: "a"})
	s.Apply(event.ToolStart{ToolCallId: "t1", ToolName: "read_file"})
	s.Apply(event.Done{
		Messages: []model.Message{
			{Role: model.RoleAssistant, Content: model.Content{Text: "m2"}},
		},
	})

	snap := s.Snapshot()
	if len(snap.Messages) != 3 {
		t.Fatalf("expected base ++ done messages, got %v", snap.Messages)
	}
	for i, want := range []string{"m0", "m1", "m2"} {
		if got := snap.Messages[i].Content.Plain(); got != want {
			t.Fatalf("message %d: expected %q, got %q", i, want, got)
		}
	}
	if len(snap.Pending) != 0 || len(snap.RunningTools) != 0 {
		t.Fatalf("expected transient state cleared, got %+v", snap)
	}

	// a late delta for the finalized stream must change nothing
	s.Apply(event.AssistantDelta{Id: "a", Delta: "late"})
	if got := s.Snapshot().Messages[2].Content.Plain(); got != "m2" {
		t.Fatalf("late delta leaked into final state: %q", got)
	}
}

func TestBeginTurnMarksApprovedRunning(t *testing.T) {
	s := NewStore()
	s.BeginTurn(nil, []string{"t1", "t2"})

	snap := s.Snapshot()
	if len(snap.RunningTools) != 2 {
		t.Fatalf("unexpected running tools: %v", snap.RunningTools)
	}

	// a tool_start for the same id upgrades the display name
	s.Apply(event.ToolStart{ToolCallId: "t1", ToolName: "delete_file"})
	if got := s.Snapshot().RunningTools["t1"]; got != "delete_file" {
		t.Fatalf("expected display name set, got %q", got)
	}
}

func TestAppendUserMessageClearsPending(t *testing.T) {
	s := NewStore()
	s.Apply(event.Pending{PendingToolCalls: []model.PendingToolCall{{Id: "t1"}}})

	base := s.AppendUserMessage("hi")
	if len(base) != 1 || !base[0].Role.User() {
		t.Fatalf("unexpected base: %v", base)
	}
	if s.HasPending() {
		t.Fatal("expected pending cleared")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewStore()
	s.Apply(event.AssistantStart{Id: "a"})
	s.Apply(event.AssistantDelta{Id: "a", Delta: "original"})

	snap := s.Snapshot()
	snap.Messages[0].Content.Append(" mutated")
	snap.RunningTools["rogue"] = "x"

	fresh := s.Snapshot()
	if got := fresh.Messages[0].Content.Plain(); got != "original" {
		t.Fatalf("snapshot mutation leaked into store: %q", got)
	}
	if len(fresh.RunningTools) != 0 {
		t.Fatalf("snapshot map mutation leaked: %v", fresh.RunningTools)
	}
}

func TestSubscribersNotified(t *testing.T) {
	s := NewStore()
	var seen []int
	s.Subscribe(func(snap Snapshot) {
		seen = append(seen, len(snap.Messages))
	})

	s.Apply(event.AssistantStart{Id: "a"})
	s.Apply(event.ToolEnd{ToolCallId: "t1", Message: model.Message{Role: model.RoleTool}})

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("unexpected notifications: %v", seen)
	}
}
