package sse

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/DrizzleTime/foxelbot/pkg/xstring"
)

// default event name when a frame carries no "event:" line
const defaultEventName = "message"

// FrameFunc receives one decoded frame. data is always valid JSON.
type FrameFunc func(event string, data []byte)

// Decoder incrementally splits an event-stream body into frames.
//
// Chunks may split a frame anywhere, including mid-line. A frame ends at a
// blank line; complete frames are flushed to the callback as soon as the
// boundary shows up, leftover bytes stay buffered for the next Write.
// Recognized fields are "event:" and "data:"; everything else (comments,
// "id:", "retry:") is ignored. Frames whose data payload is not valid JSON
// are dropped without stopping the stream.
type Decoder struct {
	buf     []byte
	onFrame FrameFunc
}

func NewDecoder(onFrame FrameFunc) *Decoder {
	return &Decoder{
		buf:     make([]byte, 0, 4096),
		onFrame: onFrame,
	}
}

var _ io.WriteCloser = (*Decoder)(nil) // usable with io.Copy

func (d *Decoder) Write(p []byte) (int, error) {
	d.buf = append(d.buf, p...)

	for {
		idx, skip := blankLineIndex(d.buf)
		if idx < 0 {
			break
		}
		frame := d.buf[:idx]
		d.buf = d.buf[idx+skip:]
		d.emit(frame)
	}

	return len(p), nil
}

// Close flushes whatever is still buffered, as if a final blank line arrived.
func (d *Decoder) Close() error {
	if len(bytes.TrimSpace(d.buf)) > 0 {
		d.emit(d.buf)
	}
	d.buf = nil
	return nil
}

// blankLineIndex finds the first blank line in buf. It returns the offset of
// the frame text before the boundary and how many bytes the boundary itself
// spans, or (-1, 0) when no complete boundary is buffered yet.
func blankLineIndex(buf []byte) (int, int) {
	lf := bytes.Index(buf, []byte("\n\n"))
	crlf := bytes.Index(buf, []byte("\n\r\n"))

	switch {
	case lf < 0 && crlf < 0:
		return -1, 0
	case crlf < 0 || (lf >= 0 && lf < crlf):
		return lf, 2
	default:
		return crlf, 3
	}
}

func (d *Decoder) emit(frame []byte) {
	name := defaultEventName
	var dataLines []string

	for line := range strings.Lines(xstring.FromBytes(frame)) {
		line = strings.TrimRight(line, "\r\n")
		if value, ok := strings.CutPrefix(line, "event:"); ok {
			name = strings.TrimPrefix(value, " ")
		} else if value, ok := strings.CutPrefix(line, "data:"); ok {
			dataLines = append(dataLines, strings.TrimPrefix(value, " "))
		}
	}

	data := strings.Join(dataLines, "\n")
	if name == "" || data == "" {
		return
	}

	// one malformed payload must not kill the whole stream
	if !json.Valid(xstring.ToBytes(data)) {
		return
	}

	d.onFrame(name, xstring.ToBytes(data))
}
