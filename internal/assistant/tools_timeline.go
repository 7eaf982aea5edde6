package assistant

import (
	"context"
	"strings"
	"time"

	"baby-tracker-go/internal/domain/timeline"
	"baby-tracker-go/internal/domain/tracking"
	"baby-tracker-go/pkg/timefmt"
	"github.com/mark3labs/mcp-go/mcp"
)

func (c *Catalog) registerTimelineTools() {
	c.register(mcp.NewTool("get-daily-summary",
		mcp.WithDescription("Summarize one logical day (starting at the configured day start hour): sleep, feedings, diapers and more."),
		childOption(),
		mcp.WithString("date", mcp.Description("Day as yyyy-MM-dd. Defaults to the current logical day")),
	), accessRead, func(ctx context.Context, cl call) (any, error) {
		at, err := c.dayArg(cl.args, "date")
		if err != nil {
			return nil, err
		}
		summary, err := c.deps.Timeline.Day(ctx, cl.membership, cl.childID, at)
		if err != nil {
			return nil, err
		}
		return summary, nil
	})

	c.register(mcp.NewTool("get-timeline",
		append(queryOptions(), mcp.WithDescription("All records of every category in a window, newest first and grouped by date."))...,
	), accessRead, func(ctx context.Context, cl call) (any, error) {
		filter, err := c.queryFilter(cl.args)
		if err != nil {
			return nil, err
		}
		window := timeline.Window{Start: *filter.From, End: c.now()}
		if filter.To != nil {
			window.End = *filter.To
		}
		result, err := c.deps.Timeline.List(ctx, cl.membership, cl.childID, window)
		if err != nil {
			return nil, err
		}
		total := len(result.Entries)
		if total > filter.Limit {
			result.Entries = result.Entries[:filter.Limit]
			result.Groups = timeline.GroupByDate(result.Entries, c.deps.Timeline.Location())
		}
		return map[string]any{
			"window":    window,
			"total":     total,
			"entries":   result.Entries,
			"groups":    result.Groups,
			"truncated": total > len(result.Entries),
		}, nil
	})

	c.register(mcp.NewTool("get-last-activity",
		mcp.WithDescription("The most recent record of each category, how long ago it happened, and anything still running."),
		childOption(),
	), accessRead, func(ctx context.Context, cl call) (any, error) {
		snapshot, err := c.deps.Timeline.LastActivity(ctx, cl.membership, cl.childID)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"lastActivity": snapshot,
			"ago":          agoStrings(snapshot, c.now()),
		}, nil
	})
}

// dayArg resolves a date argument to an instant inside that logical day.
func (c *Catalog) dayArg(a args, key string) (time.Time, error) {
	if !a.has(key) {
		return c.now(), nil
	}
	loc := c.deps.Timeline.Location()
	value := strings.TrimSpace(a.req.GetString(key, ""))
	if date, err := time.ParseInLocation(time.DateOnly, value, loc); err == nil {
		return time.Date(date.Year(), date.Month(), date.Day(), c.deps.Timeline.DayStartHour(), 0, 0, 0, loc), nil
	}
	return parseInstant(value, loc)
}

func agoStrings(s timeline.Snapshot, now time.Time) map[tracking.Category]string {
	ago := make(map[tracking.Category]string)
	mark := func(category tracking.Category, at time.Time) {
		ago[category] = timefmt.TimeSince(at, now)
	}
	if s.Sleep != nil {
		at := s.Sleep.StartTime
		if s.Sleep.EndTime != nil {
			at = *s.Sleep.EndTime
		}
		mark(tracking.CategorySleep, at)
	}
	if s.Feeding != nil {
		mark(tracking.CategoryFeeding, s.Feeding.StartTime)
	}
	if s.Diaper != nil {
		mark(tracking.CategoryDiaper, s.Diaper.Time)
	}
	if s.Pumping != nil {
		mark(tracking.CategoryPumping, s.Pumping.StartTime)
	}
	if s.Medicine != nil {
		mark(tracking.CategoryMedicine, s.Medicine.Time)
	}
	if s.Growth != nil {
		mark(tracking.CategoryGrowth, s.Growth.Date)
	}
	if s.Temperature != nil {
		mark(tracking.CategoryTemperature, s.Temperature.Time)
	}
	if s.Activity != nil {
		mark(tracking.CategoryActivity, s.Activity.StartTime)
	}
	return ago
}
