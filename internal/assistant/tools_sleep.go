package assistant

import (
	"context"

	"baby-tracker-go/internal/domain/timeline"
	"baby-tracker-go/internal/domain/tracking"
	"baby-tracker-go/pkg/timefmt"
	"github.com/mark3labs/mcp-go/mcp"
)

func (c *Catalog) registerSleepTools() {
	c.register(mcp.NewTool("start-sleep",
		mcp.WithDescription("Start a sleep session. Fails if one is already running."),
		childOption(),
		mcp.WithString("sleepType", mcp.Enum(string(tracking.SleepNap), string(tracking.SleepNight)), mcp.Description("NAP or NIGHT (default NAP)")),
		timeOption("startTime", "When the child fell asleep"),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		startTime, err := cl.args.optionalTime("startTime")
		if err != nil {
			return nil, err
		}
		sleepType := tracking.SleepNap
		if value := enumOf[tracking.SleepType](cl.args, "sleepType"); value != nil {
			sleepType = *value
		}
		record, err := c.deps.Tracking.StartSleep(ctx, cl.membership, cl.childID, tracking.StartSleepInput{
			SleepType: sleepType,
			StartTime: startTime,
			Notes:     cl.args.optionalString("notes"),
		})
		if err != nil {
			return nil, err
		}
		return message("Sleep started", record), nil
	})

	c.register(mcp.NewTool("end-sleep",
		mcp.WithDescription("End the running sleep session."),
		childOption(),
		timeOption("endTime", "When the child woke up"),
		mcp.WithNumber("quality", mcp.Description("Sleep quality from 1 to 5")),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		endTime, err := cl.args.optionalTime("endTime")
		if err != nil {
			return nil, err
		}
		record, err := c.deps.Tracking.EndSleep(ctx, cl.membership, cl.childID, tracking.EndSleepInput{
			EndTime: endTime,
			Quality: cl.args.optionalInt("quality"),
			Notes:   cl.args.optionalString("notes"),
		})
		if err != nil {
			return nil, err
		}
		return message("Sleep ended after "+timefmt.Duration(record.Duration()), record), nil
	})

	c.register(mcp.NewTool("log-sleep",
		mcp.WithDescription("Record a completed sleep session after the fact."),
		childOption(),
		mcp.WithString("sleepType", mcp.Required(), mcp.Enum(string(tracking.SleepNap), string(tracking.SleepNight))),
		mcp.WithString("startTime", mcp.Required(), mcp.Description("Start, ISO 8601")),
		mcp.WithString("endTime", mcp.Required(), mcp.Description("End, ISO 8601")),
		mcp.WithNumber("quality", mcp.Description("Sleep quality from 1 to 5")),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		startTime, err := cl.args.requiredTime("startTime")
		if err != nil {
			return nil, err
		}
		endTime, err := cl.args.requiredTime("endTime")
		if err != nil {
			return nil, err
		}
		sleepType := tracking.SleepType("")
		if value := enumOf[tracking.SleepType](cl.args, "sleepType"); value != nil {
			sleepType = *value
		}
		record, err := c.deps.Tracking.LogSleep(ctx, cl.membership, cl.childID, tracking.LogSleepInput{
			SleepType: sleepType,
			StartTime: startTime,
			EndTime:   endTime,
			Quality:   cl.args.optionalInt("quality"),
			Notes:     cl.args.optionalString("notes"),
		})
		if err != nil {
			return nil, err
		}
		return message("Logged "+timefmt.Duration(record.Duration())+" of sleep", record), nil
	})

	options := append(queryOptions(),
		mcp.WithDescription("List sleep sessions overlapping a window, with totals. Running sessions are included unless completedOnly is set; they never count towards totals."),
		mcp.WithBoolean("completedOnly", mcp.Description("Only return finished sessions")),
	)
	c.register(mcp.NewTool("query-sleep-records", options...), accessRead, func(ctx context.Context, cl call) (any, error) {
		filter, err := c.queryFilter(cl.args)
		if err != nil {
			return nil, err
		}
		filter.CompletedOnly = cl.args.boolean("completedOnly")
		records, err := c.deps.Tracking.ListSleep(ctx, cl.membership, cl.childID, filter)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"records": records,
			"summary": timeline.Summarize(timeline.Records{Sleep: records}),
		}, nil
	})
}
