package event

import (
	"testing"
)

func TestDecodeKnownEvents(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{NameAssistantStart, `{"id":"a"}`},
		{NameAssistantDelta, `{"id":"a","delta":"Hi"}`},
		{NameAssistantEnd, `{"id":"a","message":{"role":"assistant","content":"Hi"}}`},
		{NameToolStart, `{"tool_call_id":"t1","name":"read_file"}`},
		{NameToolEnd, `{"tool_call_id":"t1","name":"read_file","message":{"role":"tool","content":"ok","tool_call_id":"t1"}}`},
		{NamePending, `{"pending_tool_calls":[{"id":"t1","name":"delete_file","arguments":{"path":"/a"},"requires_confirmation":true}]}`},
		{NameDone, `{"messages":[],"pending_tool_calls":[]}`},
	}

	for _, c := range cases {
		ev, err := Decode(c.name, []byte(c.data))
		if err != nil {
			t.Fatalf("decode %s: %v", c.name, err)
		}
		if ev.Name() != c.name {
			t.Fatalf("decode %s: got event %s", c.name, ev.Name())
		}
	}
}

func TestDecodeFieldValues(t *testing.T) {
	ev, err := Decode(NameAssistantDelta, []byte(`{"id":"a","delta":"He"}`))
	if err != nil {
		t.Fatal(err)
	}
	delta, ok := ev.(AssistantDelta)
	if !ok {
		t.Fatalf("unexpected event type %T", ev)
	}
	if delta.Id != "a" || delta.Delta != "He" {
		t.Fatalf("unexpected payload: %+v", delta)
	}
}

func TestDecodeUnknownEvent(t *testing.T) {
	ev, err := Decode("heartbeat", []byte(`{"ts":1}`))
	if err != nil {
		t.Fatal(err)
	}
	unknown, ok := ev.(Unknown)
	if !ok {
		t.Fatalf("expected Unknown, got %T", ev)
	}
	if unknown.Event != "heartbeat" || string(unknown.Data) != `{"ts":1}` {
		t.Fatalf("unexpected payload: %+v", unknown)
	}
}

func TestDecodeMismatchedPayload(t *testing.T) {
	if _, err := Decode(NameAssistantDelta, []byte(`{"id":"a","delta":42}`)); err == nil {
		t.Fatal("expected an error for a wrongly typed delta")
	}
}
