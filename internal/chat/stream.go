package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
)

const doneMarker = "[DONE]"

// StreamWriter writes chat events as server-sent events.
type StreamWriter struct {
	w       io.Writer
	flusher http.Flusher
}

func NewStreamWriter(w http.ResponseWriter) *StreamWriter {
	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	return &StreamWriter{w: w, flusher: flusher}
}

func (s *StreamWriter) Send(event Event) error {
	data, err := sonic.ConfigStd.Marshal(event)
	if err != nil {
		return err
	}
	return s.write(string(data))
}

func (s *StreamWriter) Done() error {
	return s.write(doneMarker)
}

func (s *StreamWriter) write(data string) error {
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}

// ReadStream decodes a chat event stream, calling fn for each event until the
// terminating [DONE] marker. Cancelling ctx stops processing; pass a reader
// bound to the same context so a blocked read is released too.
func ReadStream(ctx context.Context, r io.Reader, fn func(Event) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxStreamLine)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, dataPrefix))
		if payload == doneMarker {
			return nil
		}
		var event Event
		if err := sonic.UnmarshalString(payload, &event); err != nil {
			return fmt.Errorf("decode chat event: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}

type BlockKind string

const (
	KindText BlockKind = "text"
	KindTool BlockKind = "tool"
)

type ToolCall struct {
	ID     string
	Name   string
	Input  any
	Result string
	Error  string
}

func (t ToolCall) Done() bool {
	return t.Result != "" || t.Error != ""
}

type Block struct {
	Kind BlockKind
	Text string
	Tool *ToolCall
}

// Transcript folds a chat event stream into interleaved text and tool blocks.
type Transcript struct {
	Blocks []Block
	Err    string
}

func (t *Transcript) Apply(event Event) {
	switch event.Type {
	case EventTextDelta:
		if n := len(t.Blocks); n > 0 && t.Blocks[n-1].Kind == KindText {
			t.Blocks[n-1].Text += event.Text
			return
		}
		t.Blocks = append(t.Blocks, Block{Kind: KindText, Text: event.Text})
	case EventToolUseStart:
		t.Blocks = append(t.Blocks, Block{Kind: KindTool, Tool: &ToolCall{ID: event.ID, Name: event.Name}})
	case EventToolExecuting:
		t.tool(event).Input = event.Input
	case EventToolResult:
		t.tool(event).Result = event.Result
	case EventToolError:
		t.tool(event).Error = event.Error
	case EventError:
		t.Err = event.Error
	}
}

// tool finds the call by id, adding it when the start event was missed.
func (t *Transcript) tool(event Event) *ToolCall {
	for i := len(t.Blocks) - 1; i >= 0; i-- {
		if t.Blocks[i].Kind == KindTool && t.Blocks[i].Tool.ID == event.ID {
			return t.Blocks[i].Tool
		}
	}
	call := &ToolCall{ID: event.ID, Name: event.Name}
	t.Blocks = append(t.Blocks, Block{Kind: KindTool, Tool: call})
	return call
}

func (t *Transcript) Text() string {
	var b strings.Builder
	for _, block := range t.Blocks {
		if block.Kind == KindText {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}
