package model

import (
	"encoding/json"
	"strings"
)

// one entry in the conversation log
type Message struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`

	// assistant messages only
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// tool messages only, correlates back to the originating tool call
	ToolCallId string `json:"tool_call_id,omitempty"`
}

func (m *Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: Content{Text: text}}
}

// Content is either a plain string or a list of structured blocks. Only text
// blocks are interpreted; every other block kind is carried through verbatim
// so the server round-trips it untouched.
type Content struct {
	Text  string
	Parts []json.RawMessage
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.Parts != nil {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

func (c *Content) UnmarshalJSON(data []byte) error {
	c.Text = ""
	c.Parts = nil

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		c.Text = text
		return nil
	}

	return json.Unmarshal(data, &c.Parts)
}

// Append extends streamed plain-text content with a delta.
func (c *Content) Append(delta string) {
	c.Text += delta
}

// Plain flattens content to renderable text. Non-text blocks are skipped.
func (c Content) Plain() string {
	if c.Parts == nil {
		return c.Text
	}

	var sb strings.Builder
	for _, part := range c.Parts {
		var block struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}
		if err := json.Unmarshal(part, &block); err != nil {
			continue
		}
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}
