package chat

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"baby-tracker-go/internal/config"
	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	apiVersion      = "2023-06-01"
	maxErrorBody    = 4 << 10
	maxStreamLine   = 1 << 20
	dataPrefix      = "data:"
	messagesPath    = "/v1/messages"
	defaultMaxToken = 2048
)

type ToolSpec struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	InputSchema mcp.ToolInputSchema `json:"input_schema"`
}

func toolSpecs(tools []mcp.Tool) []ToolSpec {
	specs := make([]ToolSpec, 0, len(tools))
	for _, tool := range tools {
		specs = append(specs, ToolSpec{Name: tool.Name, Description: tool.Description, InputSchema: tool.InputSchema})
	}
	return specs
}

type MessagesRequest struct {
	Model     string     `json:"model"`
	MaxTokens int        `json:"max_tokens"`
	System    string     `json:"system,omitempty"`
	Messages  []Message  `json:"messages"`
	Tools     []ToolSpec `json:"tools,omitempty"`
	Stream    bool       `json:"stream"`
}

// Delta is reported while a turn streams: either a text fragment or the start
// of a tool call.
type Delta struct {
	Text    string
	ToolUse *ContentBlock
}

// Turn is one fully received assistant response.
type Turn struct {
	Content    []ContentBlock
	StopReason string
}

func (t Turn) ToolUses() []ContentBlock {
	var uses []ContentBlock
	for _, block := range t.Content {
		if block.Type == BlockToolUse {
			uses = append(uses, block)
		}
	}
	return uses
}

// message drops empty text blocks, which the API rejects on replay.
func (t Turn) message() Message {
	content := make([]ContentBlock, 0, len(t.Content))
	for _, block := range t.Content {
		if block.Type == BlockText && strings.TrimSpace(block.Text) == "" {
			continue
		}
		content = append(content, block)
	}
	return Message{Role: RoleAssistant, Content: content}
}

type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return "model stream error: " + e.Message
	}
	return fmt.Sprintf("model API returned %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL   string
	apiKey    string
	maxTokens int
	http      *http.Client
}

func NewClient(cfg config.AIConfig) *Client {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxToken
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		maxTokens: maxTokens,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

// Stream sends req and decodes the event stream until the message stops.
func (c *Client) Stream(ctx context.Context, req MessagesRequest, onDelta func(Delta) error) (Turn, error) {
	req.Stream = true
	if req.MaxTokens <= 0 {
		req.MaxTokens = c.maxTokens
	}
	body, err := sonic.ConfigStd.Marshal(req)
	if err != nil {
		return Turn{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return Turn{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Turn{}, fmt.Errorf("call model API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Turn{}, &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	return decodeStream(resp.Body, onDelta)
}

type streamEvent struct {
	Type         string        `json:"type"`
	Index        int           `json:"index"`
	ContentBlock *ContentBlock `json:"content_block"`
	Delta        *streamDelta  `json:"delta"`
	Error        *streamError  `json:"error"`
}

type streamDelta struct {
	Type        string `json:"type"`
	Text        string `json:"text"`
	PartialJSON string `json:"partial_json"`
	StopReason  string `json:"stop_reason"`
}

type streamError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func errorMessage(raw []byte) string {
	var payload struct {
		Error *streamError `json:"error"`
	}
	if err := sonic.Unmarshal(raw, &payload); err == nil && payload.Error != nil {
		return payload.Error.Message
	}
	return strings.TrimSpace(string(raw))
}

func decodeStream(r io.Reader, onDelta func(Delta) error) (Turn, error) {
	var (
		turn    Turn
		partial = make(map[int]*strings.Builder)
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxStreamLine)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		var event streamEvent
		if err := sonic.UnmarshalString(strings.TrimSpace(strings.TrimPrefix(line, dataPrefix)), &event); err != nil {
			return Turn{}, fmt.Errorf("decode stream event: %w", err)
		}

		switch event.Type {
		case "content_block_start":
			if event.ContentBlock == nil {
				continue
			}
			for len(turn.Content) <= event.Index {
				turn.Content = append(turn.Content, ContentBlock{})
			}
			turn.Content[event.Index] = *event.ContentBlock
			if event.ContentBlock.Type == BlockToolUse {
				partial[event.Index] = &strings.Builder{}
				block := *event.ContentBlock
				if err := onDelta(Delta{ToolUse: &block}); err != nil {
					return Turn{}, err
				}
			}
		case "content_block_delta":
			if event.Delta == nil || event.Index >= len(turn.Content) {
				continue
			}
			switch event.Delta.Type {
			case "text_delta":
				turn.Content[event.Index].Text += event.Delta.Text
				if err := onDelta(Delta{Text: event.Delta.Text}); err != nil {
					return Turn{}, err
				}
			case "input_json_delta":
				if builder, ok := partial[event.Index]; ok {
					builder.WriteString(event.Delta.PartialJSON)
				}
			}
		case "content_block_stop":
			builder, ok := partial[event.Index]
			if !ok || event.Index >= len(turn.Content) {
				continue
			}
			input := map[string]any{}
			if raw := strings.TrimSpace(builder.String()); raw != "" {
				if err := sonic.UnmarshalString(raw, &input); err != nil {
					return Turn{}, fmt.Errorf("decode tool input: %w", err)
				}
			}
			turn.Content[event.Index].Input = input
		case "message_delta":
			if event.Delta != nil && event.Delta.StopReason != "" {
				turn.StopReason = event.Delta.StopReason
			}
		case "error":
			message := "unknown error"
			if event.Error != nil {
				message = event.Error.Message
			}
			return Turn{}, &APIError{Message: message}
		case "message_stop":
			return turn, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return Turn{}, fmt.Errorf("read stream: %w", err)
	}
	return turn, nil
}
