package sse

import (
	"fmt"
	"reflect"
	"testing"
)

type capturedFrame struct {
	event string
	data  string
}

func decodeAll(t *testing.T, raw string, chunkSize int) []capturedFrame {
	t.Helper()

	var frames []capturedFrame
	d := NewDecoder(func(event string, data []byte) {
		frames = append(frames, capturedFrame{event: event, data: string(data)})
	})

	for i := 0; i < len(raw); i += chunkSize {
		end := min(i+chunkSize, len(raw))
		if _, err := d.Write([]byte(raw[i:end])); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	if err := d.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	return frames
}

const sampleStream = "event: assistant_start\ndata: {\"id\":\"a\"}\n\n" +
	"event: assistant_delta\ndata: {\"id\":\"a\",\"delta\":\"He\"}\n\n" +
	"event: assistant_delta\ndata: {\"id\":\"a\",\"delta\":\"llo\"}\n\n"

func TestDecodeFrames(t *testing.T) {
	frames := decodeAll(t, sampleStream, len(sampleStream))
	want := []capturedFrame{
		{"assistant_start", `{"id":"a"}`},
		{"assistant_delta", `{"id":"a","delta":"He"}`},
		{"assistant_delta", `{"id":"a","delta":"llo"}`},
	}
	if !reflect.DeepEqual(frames, want) {
		t.Fatalf("got %v, want %v", frames, want)
	}
}

func TestChunkBoundaryIndependence(t *testing.T) {
	whole := decodeAll(t, sampleStream, len(sampleStream))
	for size := 1; size < len(sampleStream); size++ {
		t.Run(fmt.Sprintf("chunk_%d", size), func(t *testing.T) {
			if got := decodeAll(t, sampleStream, size); !reflect.DeepEqual(got, whole) {
				t.Fatalf("chunk size %d: got %v, want %v", size, got, whole)
			}
		})
	}
}

func TestMultipleDataLinesJoined(t *testing.T) {
	raw := "event: done\ndata: [1,\ndata: 2]\n\n"
	frames := decodeAll(t, raw, len(raw))
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	if frames[0].data != "[1,\n2]" {
		t.Fatalf("unexpected data: %q", frames[0].data)
	}
}

func TestDefaultEventName(t *testing.T) {
	raw := "data: {}\n\n"
	frames := decodeAll(t, raw, len(raw))
	if len(frames) != 1 || frames[0].event != "message" {
		t.Fatalf("unexpected frames: %v", frames)
	}
}

func TestMalformedJSONFrameDropped(t *testing.T) {
	raw := "event: assistant_delta\ndata: {broken\n\n" +
		"event: assistant_delta\ndata: {\"id\":\"a\",\"delta\":\"ok\"}\n\n"
	frames := decodeAll(t, raw, len(raw))
	if len(frames) != 1 {
		t.Fatalf("expected the malformed frame to be dropped, got %v", frames)
	}
	if frames[0].data != `{"id":"a","delta":"ok"}` {
		t.Fatalf("unexpected surviving frame: %v", frames[0])
	}
}

func TestEmptyFramesDropped(t *testing.T) {
	// no data at all, explicitly empty event name, comment-only frame
	raw := "event: ping\n\n" +
		"event:\ndata: {}\n\n" +
		": keepalive\n\n"
	if frames := decodeAll(t, raw, len(raw)); len(frames) != 0 {
		t.Fatalf("expected no frames, got %v", frames)
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	raw := "id: 42\nretry: 1000\nevent: pending\ndata: {\"pending_tool_calls\":[]}\n\n"
	frames := decodeAll(t, raw, len(raw))
	if len(frames) != 1 || frames[0].event != "pending" {
		t.Fatalf("unexpected frames: %v", frames)
	}
}

func TestEOFFlushesTail(t *testing.T) {
	// final frame not terminated by a blank line before the stream ends
	raw := "event: done\ndata: {\"messages\":[]}"
	frames := decodeAll(t, raw, len(raw))
	if len(frames) != 1 || frames[0].event != "done" {
		t.Fatalf("unexpected frames: %v", frames)
	}
}

func TestCRLFBoundaries(t *testing.T) {
	raw := "event: assistant_start\r\ndata: {\"id\":\"a\"}\r\n\r\n"
	frames := decodeAll(t, raw, len(raw))
	if len(frames) != 1 || frames[0].data != `{"id":"a"}` {
		t.Fatalf("unexpected frames: %v", frames)
	}
}
