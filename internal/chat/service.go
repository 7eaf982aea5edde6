package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"baby-tracker-go/internal/assistant"
	"baby-tracker-go/internal/config"
	"baby-tracker-go/internal/domain/errs"
	"baby-tracker-go/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultMaxToolRounds = 5

var (
	ErrMessageRequired = errs.New(errs.KindBadRequest, "message is required")
	ErrChildRequired   = errs.New(errs.KindBadRequest, "childId is required")
	ErrToolRoundLimit  = errs.New(errs.KindBadRequest, "the assistant needed too many tool rounds; try a narrower question")
)

type LLM interface {
	Stream(ctx context.Context, req MessagesRequest, onDelta func(Delta) error) (Turn, error)
}

type Tools interface {
	Tools() []mcp.Tool
	Execute(ctx context.Context, name string, arguments map[string]any) assistant.Result
}

type Service struct {
	llm      LLM
	tools    Tools
	ai       config.AIConfig
	timeline config.TimelineConfig
	log      logger.Logger
	now      func() time.Time
}

func NewService(llm LLM, tools Tools, ai config.AIConfig, timeline config.TimelineConfig, log logger.Logger) *Service {
	if ai.MaxToolRounds <= 0 {
		ai.MaxToolRounds = defaultMaxToolRounds
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		llm:      llm,
		tools:    tools,
		ai:       ai,
		timeline: timeline,
		log:      log,
		now:      time.Now,
	}
}

// Model returns the requested model when it is allowed, otherwise the default.
func (s *Service) Model(requested string) string {
	requested = strings.TrimSpace(requested)
	if requested != "" && s.ai.ModelAllowed(requested) {
		return requested
	}
	return s.ai.DefaultModel
}

func (s *Service) Validate(req Request) error {
	if strings.TrimSpace(req.Message) == "" {
		return ErrMessageRequired
	}
	if strings.TrimSpace(req.ChildID) == "" {
		return ErrChildRequired
	}
	return nil
}

// Run streams one user message through the model, executing requested tools
// for the actor in ctx until the model answers without tools. Every step is
// reported through emit.
func (s *Service) Run(ctx context.Context, req Request, emit func(Event) error) error {
	if err := s.Validate(req); err != nil {
		return err
	}

	messages := appendTurn(history(req.ConversationHistory), RoleUser, req.Message)
	base := MessagesRequest{
		Model:     s.Model(req.Model),
		MaxTokens: s.ai.MaxTokens,
		System:    s.systemPrompt(req.ChildID),
		Tools:     toolSpecs(s.tools.Tools()),
	}

	for round := 0; ; round++ {
		request := base
		request.Messages = messages
		turn, err := s.llm.Stream(ctx, request, func(delta Delta) error {
			if delta.ToolUse != nil {
				return emit(Event{Type: EventToolUseStart, ID: delta.ToolUse.ID, Name: delta.ToolUse.Name})
			}
			return emit(Event{Type: EventTextDelta, Text: delta.Text})
		})
		if err != nil {
			return err
		}

		uses := turn.ToolUses()
		if turn.StopReason != StopToolUse || len(uses) == 0 {
			return nil
		}
		if round >= s.ai.MaxToolRounds {
			return ErrToolRoundLimit
		}

		messages = append(messages, turn.message())
		results := make([]ContentBlock, 0, len(uses))
		for _, use := range uses {
			result, err := s.execute(ctx, use, emit)
			if err != nil {
				return err
			}
			results = append(results, result)
		}
		messages = append(messages, Message{Role: RoleUser, Content: results})
	}
}

func (s *Service) execute(ctx context.Context, use ContentBlock, emit func(Event) error) (ContentBlock, error) {
	input, _ := use.Input.(map[string]any)
	if input == nil {
		input = map[string]any{}
	}
	if err := emit(Event{Type: EventToolExecuting, ID: use.ID, Name: use.Name, Input: input}); err != nil {
		return ContentBlock{}, err
	}

	result := s.tools.Execute(ctx, use.Name, input)
	event := Event{Type: EventToolResult, ID: use.ID, Name: use.Name, Result: result.Text}
	if result.IsError {
		event = Event{Type: EventToolError, ID: use.ID, Name: use.Name, Error: result.Text}
	}
	if err := emit(event); err != nil {
		return ContentBlock{}, err
	}
	return ContentBlock{Type: BlockToolResult, ToolUseID: use.ID, Content: result.Text, IsError: result.IsError}, nil
}

// history keeps well-formed user and assistant turns. The replay must start
// with a user turn and alternate roles, so leading assistant turns are dropped
// and consecutive turns of one role are merged.
func history(turns []HistoryMessage) []Message {
	messages := make([]Message, 0, len(turns)+1)
	for _, turn := range turns {
		role := strings.ToLower(strings.TrimSpace(turn.Role))
		if role != RoleUser && role != RoleAssistant {
			continue
		}
		if len(messages) == 0 && role == RoleAssistant {
			continue
		}
		messages = appendTurn(messages, role, turn.Content)
	}
	return messages
}

func appendTurn(messages []Message, role, text string) []Message {
	text = strings.TrimSpace(text)
	if text == "" {
		return messages
	}
	if n := len(messages); n > 0 && messages[n-1].Role == role {
		messages[n-1].Content[0].Text += "\n\n" + text
		return messages
	}
	return append(messages, textMessage(role, text))
}

func (s *Service) systemPrompt(childID string) string {
	loc := s.timeline.Location()
	now := s.now().In(loc)
	return fmt.Sprintf(`You help parents track their baby's sleep, feedings, diapers, pumping, medicine, growth, temperature and activities.
The current child has id %s; pass it as childId to every tool.
The current time is %s (%s). A logical day starts at %02d:00 local time.
Use the tools to read or record data instead of guessing, confirm what you recorded, and keep answers short.
You are not a doctor: for fever, dehydration or other worrying signs suggest contacting a pediatrician.`,
		childID, now.Format(time.RFC3339), loc.String(), s.timeline.DayStartHour)
}
