package components

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/DrizzleTime/foxelbot/chat/model"
	"github.com/DrizzleTime/foxelbot/cmd/chat/ui/tui/styles"
)

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	s := strings.Repeat("é", 30) // 2 bytes per rune, every odd offset splits one
	got := truncate(s, 15)

	if !utf8.ValidString(got) {
		t.Fatalf("truncated string is not valid utf-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("missing ellipsis: %q", got)
	}
	if got := truncate("short", 500); got != "short" {
		t.Fatalf("short string must pass through untouched: %q", got)
	}
}

func TestAssistantToolCallArgumentsRendered(t *testing.T) {
	c := NewChatComponent(styles.DefaultTheme())

	msg := model.Message{
		Role: model.RoleAssistant,
		ToolCalls: []model.ToolCall{{
			Id: "t1",
			Function: model.ToolCallFunction{
				Name:      "move_file",
				Arguments: `{"from":"/a","to":"/b"}`,
			},
		}},
	}

	out := c.renderAssistantMessage(msg)
	if !strings.Contains(out, "move_file") {
		t.Fatalf("missing tool name: %q", out)
	}
	if !strings.Contains(out, "/a") {
		t.Fatalf("missing tool call arguments: %q", out)
	}
}

func TestAssistantToolCallBadArgumentsSkipped(t *testing.T) {
	c := NewChatComponent(styles.DefaultTheme())

	msg := model.Message{
		Role: model.RoleAssistant,
		ToolCalls: []model.ToolCall{{
			Id: "t1",
			Function: model.ToolCallFunction{
				Name:      "move_file",
				Arguments: `not json`,
			},
		}},
	}

	out := c.renderAssistantMessage(msg)
	if !strings.Contains(out, "move_file") {
		t.Fatalf("missing tool name: %q", out)
	}
	if strings.Contains(out, "not json") {
		t.Fatalf("unparseable arguments must not be rendered raw: %q", out)
	}
}
