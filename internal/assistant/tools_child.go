package assistant

import (
	"context"

	"baby-tracker-go/internal/domain/child"
	"github.com/mark3labs/mcp-go/mcp"
)

type childView struct {
	child.Child
	Age string `json:"age"`
}

func (c *Catalog) childView(ch child.Child) childView {
	return childView{Child: ch, Age: child.AgeString(ch.BirthDate, c.now())}
}

func (c *Catalog) registerChildTools() {
	c.register(mcp.NewTool("list-children",
		mcp.WithDescription("List every child in the households you belong to, with their IDs and ages. Call this first to find a childId."),
	), accessUser, func(ctx context.Context, cl call) (any, error) {
		children, err := c.deps.Children.ListChildrenForUser(ctx, cl.actorID)
		if err != nil {
			return nil, err
		}
		views := make([]childView, 0, len(children))
		for _, ch := range children {
			views = append(views, c.childView(ch))
		}
		return map[string]any{"children": views}, nil
	})

	c.register(mcp.NewTool("get-child",
		mcp.WithDescription("Get a child's profile, age and the most recent record of each category."),
		childOption(),
	), accessRead, func(ctx context.Context, cl call) (any, error) {
		ch, err := c.deps.Children.GetChild(ctx, cl.membership, cl.childID)
		if err != nil {
			return nil, err
		}
		snapshot, err := c.deps.Timeline.LastActivity(ctx, cl.membership, cl.childID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"child": c.childView(*ch), "lastActivity": snapshot}, nil
	})
}
