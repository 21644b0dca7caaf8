package model

import "encoding/json"

type ToolCallType string

const (
	ToolCallTypeFunction ToolCallType = "function"
)

type ToolCall struct {
	Id       string           `json:"id"`
	Type     ToolCallType     `json:"type,omitempty"`
	Function ToolCallFunction `json:"function"`
}

type ToolCallFunction struct {
	// the name of the function to call
	Name string `json:"name"`

	// JSON-encoded arguments object, parsed lazily
	Arguments string `json:"arguments"`
}

func (f *ToolCallFunction) ParseArguments() (map[string]any, error) {
	args := make(map[string]any)
	if f.Arguments == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(f.Arguments), &args); err != nil {
		return nil, err
	}
	return args, nil
}

// PendingToolCall is a tool invocation proposed by the server that still
// needs an explicit user decision before it runs.
type PendingToolCall struct {
	Id                   string         `json:"id"`
	Name                 string         `json:"name"`
	Arguments            map[string]any `json:"arguments"`
	RequiresConfirmation bool           `json:"requires_confirmation"`
}
