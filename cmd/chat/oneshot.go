package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/DrizzleTime/foxelbot/chat"
	"github.com/DrizzleTime/foxelbot/chat/model"
)

// streamPrinter turns store snapshots back into incremental stdout output:
// completed messages print once, the message still streaming prints only the
// suffix that appeared since the last snapshot.
type streamPrinter struct {
	mu       sync.Mutex
	rendered int // messages fully printed
	partial  int // bytes printed of messages[rendered]
}

func (p *streamPrinter) observe(snap chat.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := p.rendered; i < len(snap.Messages); i++ {
		text := renderMessage(snap.Messages[i])

		if i == len(snap.Messages)-1 {
			// still streaming, print only what is new
			if len(text) > p.partial {
				fmt.Print(text[p.partial:])
				p.partial = len(text)
			}
			return
		}

		if len(text) > p.partial {
			fmt.Print(text[p.partial:])
		}
		if len(text) > 0 {
			fmt.Println()
		}
		p.rendered++
		p.partial = 0
	}
}

func (p *streamPrinter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.partial > 0 {
		fmt.Println()
	}
}

func renderMessage(m model.Message) string {
	switch {
	case m.Role.Tool():
		return fmt.Sprintf("(tool %s: %s)", m.ToolCallId, firstLine(m.Content.Plain()))
	case m.Role.Assistant():
		return m.Content.Plain()
	default:
		return ""
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// runOnce sends a single message and streams the reply to stdout. Tool calls
// execute without confirmation, there is nobody to ask.
func runOnce(ctx context.Context, conv *chat.Conversation, message string) error {
	printer := &streamPrinter{}
	conv.Store().Subscribe(printer.observe)

	if err := conv.SendUserTurn(ctx, message); err != nil {
		return err
	}
	printer.finish()

	return nil
}
