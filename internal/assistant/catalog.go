// Package assistant exposes the tracking domain to language models as a fixed
// catalog of MCP tools, resources and prompts.
package assistant

import (
	"context"
	"fmt"
	"sort"
	"time"

	"baby-tracker-go/internal/domain/child"
	"baby-tracker-go/internal/domain/errs"
	"baby-tracker-go/internal/domain/household"
	"baby-tracker-go/internal/domain/timeline"
	"baby-tracker-go/internal/domain/tracking"
	"baby-tracker-go/internal/metrics"
	"baby-tracker-go/pkg/logger"
	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
)

type Authorizer interface {
	Authorize(ctx context.Context, userID string, target household.Target, min household.Role) (household.Membership, error)
}

type ChildDirectory interface {
	GetChild(ctx context.Context, m household.Membership, childID string) (*child.Child, error)
	ListChildrenForUser(ctx context.Context, userID string) ([]child.Child, error)
}

type Deps struct {
	Access   Authorizer
	Children ChildDirectory
	Tracking *tracking.Service
	Timeline *timeline.Service
	Metrics  *metrics.Metrics
	Log      logger.Logger
}

type accessLevel int

const (
	// accessUser tools act on the user's own data and take no childId.
	accessUser accessLevel = iota
	accessRead
	accessWrite
)

type call struct {
	args       args
	actorID    string
	childID    string
	membership household.Membership
}

type runFunc func(ctx context.Context, c call) (any, error)

type tool struct {
	definition mcp.Tool
	access     accessLevel
	run        runFunc
}

// Result is the textual outcome of a tool call. Failures are reported as
// "Error: <message>" with IsError set; they are never returned as Go errors.
type Result struct {
	Text    string
	IsError bool
}

type Catalog struct {
	deps  Deps
	tools map[string]tool
	now   func() time.Time
}

func NewCatalog(deps Deps) *Catalog {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	c := &Catalog{
		deps:  deps,
		tools: make(map[string]tool),
		now:   time.Now,
	}
	c.registerChildTools()
	c.registerSleepTools()
	c.registerFeedingTools()
	c.registerCareTools()
	c.registerActivityTools()
	c.registerTimelineTools()
	return c
}

func (c *Catalog) register(definition mcp.Tool, access accessLevel, run runFunc) {
	if _, exists := c.tools[definition.Name]; exists {
		panic(fmt.Sprintf("assistant: tool %q registered twice", definition.Name))
	}
	c.tools[definition.Name] = tool{definition: definition, access: access, run: run}
}

func (c *Catalog) Has(name string) bool {
	_, ok := c.tools[name]
	return ok
}

// Tools returns every definition sorted by name.
func (c *Catalog) Tools() []mcp.Tool {
	definitions := make([]mcp.Tool, 0, len(c.tools))
	for _, t := range c.tools {
		definitions = append(definitions, t.definition)
	}
	sort.Slice(definitions, func(i, j int) bool {
		return definitions[i].Name < definitions[j].Name
	})
	return definitions
}

// Handle adapts Execute to the mcp-go tool handler signature.
func (c *Catalog) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := c.Execute(ctx, req.Params.Name, req.GetArguments())
	if result.IsError {
		return mcp.NewToolResultError(result.Text), nil
	}
	return mcp.NewToolResultText(result.Text), nil
}

// Execute dispatches by exact tool name on behalf of the actor in ctx.
func (c *Catalog) Execute(ctx context.Context, name string, arguments map[string]any) Result {
	payload, err := c.execute(ctx, name, arguments)
	c.deps.Metrics.ToolCall(name, err)
	if err != nil {
		if errs.KindOf(err) == errs.KindInternal {
			c.deps.Log.InternalError("assistant.tool: execution failed", err, "tool", name)
		} else {
			c.deps.Log.BusinessError("assistant.tool: rejected", err, "tool", name)
		}
		return Result{Text: "Error: " + errs.Message(err), IsError: true}
	}

	text, err := encode(payload)
	if err != nil {
		c.deps.Log.InternalError("assistant.tool: encode result", err, "tool", name)
		return Result{Text: "Error: internal error", IsError: true}
	}
	return Result{Text: text}
}

func (c *Catalog) execute(ctx context.Context, name string, arguments map[string]any) (any, error) {
	t, ok := c.tools[name]
	if !ok {
		return nil, errs.Errorf(errs.KindNotFound, "unknown tool %q", name)
	}

	actorID, ok := ActorFrom(ctx)
	if !ok {
		return nil, ErrNoActor
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = arguments

	current := call{
		args:    args{req: req, loc: c.deps.Timeline.Location()},
		actorID: actorID,
	}
	if t.access == accessUser {
		return t.run(ctx, current)
	}

	childID, err := current.args.requiredString("childId")
	if err != nil {
		return nil, err
	}
	min := household.RoleViewer
	if t.access == accessWrite {
		min = household.RoleCaregiver
	}
	membership, err := c.deps.Access.Authorize(ctx, actorID, household.Target{ChildID: childID}, min)
	if err != nil {
		return nil, err
	}

	current.childID = childID
	current.membership = membership
	return t.run(ctx, current)
}

func encode(payload any) (string, error) {
	if text, ok := payload.(string); ok {
		return text, nil
	}
	return sonic.ConfigStd.MarshalToString(payload)
}

// message wraps a mutation result with a one-line confirmation for the model.
func message(text string, record any) map[string]any {
	return map[string]any{"message": text, "record": record}
}

// queryFilter turns from/to/days/limit arguments into a list filter. Without
// from, the window reaches back the given number of days from now.
func (c *Catalog) queryFilter(a args) (tracking.Filter, error) {
	from, err := a.optionalTime("from")
	if err != nil {
		return tracking.Filter{}, err
	}
	to, err := a.optionalTime("to")
	if err != nil {
		return tracking.Filter{}, err
	}
	if from == nil {
		days := a.intOr("days", defaultQueryDays)
		if days < 1 {
			return tracking.Filter{}, errs.BadRequestf("days must be at least 1")
		}
		start := c.now().AddDate(0, 0, -days)
		from = &start
	}
	if to != nil && !to.After(*from) {
		return tracking.Filter{}, errs.BadRequestf("to must be after from")
	}

	limit := a.intOr("limit", defaultQueryLimit)
	if limit < 1 || limit > maxQueryLimit {
		limit = defaultQueryLimit
	}
	return tracking.Filter{From: from, To: to, Limit: limit}, nil
}

func queryOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("childId", mcp.Required(), mcp.Description("ID of the child")),
		mcp.WithString("from", mcp.Description("Window start, ISO 8601. Defaults to `days` ago")),
		mcp.WithString("to", mcp.Description("Window end, ISO 8601. Defaults to now")),
		mcp.WithNumber("days", mcp.Description("Days to look back when from is omitted (default 1)")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of records (default 50)")),
	}
}

func childOption() mcp.ToolOption {
	return mcp.WithString("childId", mcp.Required(), mcp.Description("ID of the child"))
}

func notesOption() mcp.ToolOption {
	return mcp.WithString("notes", mcp.Description("Optional free-form notes"))
}

func timeOption(name, description string) mcp.ToolOption {
	return mcp.WithString(name, mcp.Description(description+", ISO 8601. Defaults to now"))
}
