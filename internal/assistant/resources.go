package assistant

import (
	"context"
	"net/url"
	"strings"
	"time"

	"baby-tracker-go/internal/domain/errs"
	"baby-tracker-go/internal/domain/household"
	"baby-tracker-go/internal/domain/timeline"
	"baby-tracker-go/internal/domain/tracking"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	resourceScheme = "app"
	jsonMIME       = "application/json"
)

var sleepPeriods = map[string]int{
	"day":   1,
	"week":  7,
	"month": 30,
}

func (c *Catalog) Resources() []mcp.Resource {
	return []mcp.Resource{
		mcp.NewResource("app://children", "children",
			mcp.WithResourceDescription("Children in the households you belong to"),
			mcp.WithMIMEType(jsonMIME)),
	}
}

func (c *Catalog) ResourceTemplates() []mcp.ResourceTemplate {
	return []mcp.ResourceTemplate{
		mcp.NewResourceTemplate("app://children/{id}", "child",
			mcp.WithTemplateDescription("A child's profile and age"),
			mcp.WithTemplateMIMEType(jsonMIME)),
		mcp.NewResourceTemplate("app://children/{id}/today", "child-today",
			mcp.WithTemplateDescription("Summary of the current logical day"),
			mcp.WithTemplateMIMEType(jsonMIME)),
		mcp.NewResourceTemplate("app://children/{id}/sleep{?period}", "child-sleep",
			mcp.WithTemplateDescription("Sleep sessions over the last day, week or month"),
			mcp.WithTemplateMIMEType(jsonMIME)),
	}
}

// ReadResource serves both the static resource and every template.
func (c *Catalog) ReadResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload, err := c.readResource(ctx, req.Params.URI)
	if err != nil {
		return nil, err
	}
	text, err := encode(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: req.Params.URI, MIMEType: jsonMIME, Text: text},
	}, nil
}

func (c *Catalog) readResource(ctx context.Context, uri string) (any, error) {
	actorID, ok := ActorFrom(ctx)
	if !ok {
		return nil, ErrNoActor
	}
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != resourceScheme || parsed.Host != "children" {
		return nil, errs.Errorf(errs.KindNotFound, "unknown resource %q", uri)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 1 && segments[0] == "" {
		children, err := c.deps.Children.ListChildrenForUser(ctx, actorID)
		if err != nil {
			return nil, err
		}
		views := make([]childView, 0, len(children))
		for _, ch := range children {
			views = append(views, c.childView(ch))
		}
		return views, nil
	}

	childID := segments[0]
	membership, err := c.deps.Access.Authorize(ctx, actorID, household.Target{ChildID: childID}, household.RoleViewer)
	if err != nil {
		return nil, err
	}

	switch {
	case len(segments) == 1:
		ch, err := c.deps.Children.GetChild(ctx, membership, childID)
		if err != nil {
			return nil, err
		}
		return c.childView(*ch), nil
	case len(segments) == 2 && segments[1] == "today":
		return c.deps.Timeline.Day(ctx, membership, childID, c.now())
	case len(segments) == 2 && segments[1] == "sleep":
		return c.sleepPeriod(ctx, membership, childID, parsed.Query().Get("period"))
	}
	return nil, errs.Errorf(errs.KindNotFound, "unknown resource %q", uri)
}

func (c *Catalog) sleepPeriod(ctx context.Context, m household.Membership, childID, period string) (any, error) {
	if period == "" {
		period = "day"
	}
	days, ok := sleepPeriods[period]
	if !ok {
		return nil, errs.BadRequestf("period must be day, week or month")
	}
	now := c.now()
	from := now.AddDate(0, 0, -days)
	records, err := c.deps.Tracking.ListSleep(ctx, m, childID, tracking.Filter{From: &from, To: &now, Limit: maxQueryLimit})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"period":  period,
		"from":    from.UTC().Format(time.RFC3339),
		"records": records,
		"summary": timeline.Summarize(timeline.Records{Sleep: records}),
	}, nil
}
