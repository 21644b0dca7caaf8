package event

import (
	"encoding/json"
	"fmt"

	"github.com/DrizzleTime/foxelbot/chat/model"
)

// wire event names
const (
	NameAssistantStart = "assistant_start"
	NameAssistantDelta = "assistant_delta"
	NameAssistantEnd   = "assistant_end"
	NameToolStart      = "tool_start"
	NameToolEnd        = "tool_end"
	NamePending        = "pending"
	NameDone           = "done"
)

// Event is the closed set of stream events. Event names outside the known
// set decode into Unknown instead of being silently misread.
type Event interface {
	Name() string
}

type AssistantStart struct {
	Id string `json:"id"`
}

type AssistantDelta struct {
	Id    string `json:"id"`
	Delta string `json:"delta"`
}

type AssistantEnd struct {
	Id      string        `json:"id"`
	Message model.Message `json:"message"`
}

type ToolStart struct {
	ToolCallId string `json:"tool_call_id"`
	ToolName   string `json:"name"`
}

type ToolEnd struct {
	ToolCallId string        `json:"tool_call_id"`
	ToolName   string        `json:"name"`
	Message    model.Message `json:"message"`
}

type Pending struct {
	PendingToolCalls []model.PendingToolCall `json:"pending_tool_calls"`
}

// Done is the authoritative end-of-turn snapshot. It supersedes anything
// assembled incrementally during the same turn.
type Done struct {
	Messages         []model.Message         `json:"messages"`
	PendingToolCalls []model.PendingToolCall `json:"pending_tool_calls"`
}

type Unknown struct {
	Event string
	Data  json.RawMessage
}

func (AssistantStart) Name() string { return NameAssistantStart }
func (AssistantDelta) Name() string { return NameAssistantDelta }
func (AssistantEnd) Name() string   { return NameAssistantEnd }
func (ToolStart) Name() string      { return NameToolStart }
func (ToolEnd) Name() string        { return NameToolEnd }
func (Pending) Name() string        { return NamePending }
func (Done) Name() string           { return NameDone }
func (u Unknown) Name() string      { return u.Event }

// Decode unmarshals one frame payload into its typed event.
func Decode(name string, data []byte) (Event, error) {
	var (
		ev  Event
		err error
	)

	switch name {
	case NameAssistantStart:
		ev, err = unmarshalEvent[AssistantStart](data)
	case NameAssistantDelta:
		ev, err = unmarshalEvent[AssistantDelta](data)
	case NameAssistantEnd:
		ev, err = unmarshalEvent[AssistantEnd](data)
	case NameToolStart:
		ev, err = unmarshalEvent[ToolStart](data)
	case NameToolEnd:
		ev, err = unmarshalEvent[ToolEnd](data)
	case NamePending:
		ev, err = unmarshalEvent[Pending](data)
	case NameDone:
		ev, err = unmarshalEvent[Done](data)
	default:
		ev = Unknown{Event: name, Data: json.RawMessage(data)}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode %s event: %w", name, err)
	}

	return ev, nil
}

func unmarshalEvent[T Event](data []byte) (Event, error) {
	var ev T
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return ev, nil
}
