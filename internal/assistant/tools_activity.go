package assistant

import (
	"context"

	"baby-tracker-go/internal/domain/timeline"
	"baby-tracker-go/internal/domain/tracking"
	"baby-tracker-go/pkg/timefmt"
	"github.com/mark3labs/mcp-go/mcp"
)

var activityTypes = []string{
	string(tracking.ActivityTummyTime),
	string(tracking.ActivityBath),
	string(tracking.ActivityOutdoor),
	string(tracking.ActivityPlay),
	string(tracking.ActivityReading),
	string(tracking.ActivityOther),
}

func (c *Catalog) registerActivityTools() {
	c.register(mcp.NewTool("start-activity",
		mcp.WithDescription("Start an activity. Activities of different types may run at the same time."),
		childOption(),
		mcp.WithString("activityType", mcp.Required(), mcp.Enum(activityTypes...)),
		timeOption("startTime", "When the activity started"),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		startTime, err := cl.args.optionalTime("startTime")
		if err != nil {
			return nil, err
		}
		activityType := enumOf[tracking.ActivityType](cl.args, "activityType")
		if activityType == nil {
			return nil, missing("activityType")
		}
		record, err := c.deps.Tracking.StartActivity(ctx, cl.membership, cl.childID, tracking.StartActivityInput{
			ActivityType: *activityType,
			StartTime:    startTime,
			Notes:        cl.args.optionalString("notes"),
		})
		if err != nil {
			return nil, err
		}
		return message("Started "+string(record.ActivityType), record), nil
	})

	c.register(mcp.NewTool("end-activity",
		mcp.WithDescription("End the running activity of the given type."),
		childOption(),
		mcp.WithString("activityType", mcp.Required(), mcp.Enum(activityTypes...)),
		timeOption("endTime", "When the activity ended"),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		endTime, err := cl.args.optionalTime("endTime")
		if err != nil {
			return nil, err
		}
		activityType := enumOf[tracking.ActivityType](cl.args, "activityType")
		if activityType == nil {
			return nil, missing("activityType")
		}
		record, err := c.deps.Tracking.EndActivity(ctx, cl.membership, cl.childID, tracking.EndActivityInput{
			ActivityType: *activityType,
			EndTime:      endTime,
			Notes:        cl.args.optionalString("notes"),
		})
		if err != nil {
			return nil, err
		}
		var elapsed string
		if record.EndTime != nil {
			elapsed = timefmt.Duration(record.EndTime.Sub(record.StartTime))
		}
		return message("Ended "+string(record.ActivityType)+" after "+elapsed, record), nil
	})

	options := append(queryOptions(),
		mcp.WithDescription("List activities overlapping a window, with total time."),
	)
	c.register(mcp.NewTool("query-activity-records", options...), accessRead, func(ctx context.Context, cl call) (any, error) {
		filter, err := c.queryFilter(cl.args)
		if err != nil {
			return nil, err
		}
		records, err := c.deps.Tracking.ListActivities(ctx, cl.membership, cl.childID, filter)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"records": records,
			"summary": timeline.Summarize(timeline.Records{Activities: records}),
		}, nil
	})
}
