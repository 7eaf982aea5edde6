// Package chat runs assistant conversations against a streaming Messages API
// and relays them to clients as server-sent events.
package chat

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	BlockText       = "text"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"

	StopToolUse = "tool_use"
)

// ContentBlock is one element of a message's content array. Input stays an
// interface so an empty tool input still encodes as {}.
type ContentBlock struct {
	Type      string `json:"type"`
	Text      string `json:"text,omitempty"`
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Input     any    `json:"input,omitempty"`
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
	IsError   bool   `json:"is_error,omitempty"`
}

type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

func textMessage(role, text string) Message {
	return Message{Role: role, Content: []ContentBlock{{Type: BlockText, Text: text}}}
}

// HistoryMessage is a prior turn as the web client keeps it.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	ChildID             string           `json:"childId"`
	Message             string           `json:"message"`
	Model               string           `json:"model,omitempty"`
	ConversationHistory []HistoryMessage `json:"conversationHistory,omitempty"`
}

type EventType string

const (
	EventTextDelta     EventType = "text_delta"
	EventToolUseStart  EventType = "tool_use_start"
	EventToolExecuting EventType = "tool_executing"
	EventToolResult    EventType = "tool_result"
	EventToolError     EventType = "tool_error"
	EventError         EventType = "error"
)

// Event is one server-sent event of the chat stream.
type Event struct {
	Type   EventType `json:"type"`
	Text   string    `json:"text,omitempty"`
	ID     string    `json:"id,omitempty"`
	Name   string    `json:"name,omitempty"`
	Input  any       `json:"input,omitempty"`
	Result string    `json:"result,omitempty"`
	Error  string    `json:"error,omitempty"`
}
