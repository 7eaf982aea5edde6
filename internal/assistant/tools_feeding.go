package assistant

import (
	"context"
	"fmt"

	"baby-tracker-go/internal/domain/timeline"
	"baby-tracker-go/internal/domain/tracking"
	"github.com/mark3labs/mcp-go/mcp"
)

func sideOption(description string) mcp.ToolOption {
	return mcp.WithString("side",
		mcp.Enum(string(tracking.SideLeft), string(tracking.SideRight), string(tracking.SideBoth)),
		mcp.Description(description))
}

func (c *Catalog) registerFeedingTools() {
	c.register(mcp.NewTool("start-breastfeeding",
		mcp.WithDescription("Start a breastfeeding session on one side. Fails if one is already running."),
		childOption(),
		mcp.WithString("side", mcp.Required(),
			mcp.Enum(string(tracking.SideLeft), string(tracking.SideRight)),
			mcp.Description("Side to start on")),
		timeOption("startTime", "When the feeding started"),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		startTime, err := cl.args.optionalTime("startTime")
		if err != nil {
			return nil, err
		}
		side := tracking.Side("")
		if value := enumOf[tracking.Side](cl.args, "side"); value != nil {
			side = *value
		}
		record, err := c.deps.Tracking.StartBreastfeeding(ctx, cl.membership, cl.childID, tracking.StartBreastfeedingInput{
			Side:      side,
			StartTime: startTime,
		})
		if err != nil {
			return nil, err
		}
		return message("Breastfeeding started on "+string(side)+" side", record), nil
	})

	c.register(mcp.NewTool("switch-breastfeeding-side",
		mcp.WithDescription("Switch the running breastfeeding session to the other side, crediting the elapsed time to the current side."),
		childOption(),
		timeOption("at", "When the switch happened"),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		at, err := cl.args.optionalTime("at")
		if err != nil {
			return nil, err
		}
		record, err := c.deps.Tracking.SwitchBreastSide(ctx, cl.membership, cl.childID, tracking.SwitchSideInput{At: at})
		if err != nil {
			return nil, err
		}
		text := "Switched side"
		if record.Side != nil {
			text = "Switched to " + string(*record.Side) + " side"
		}
		return message(text, record), nil
	})

	c.register(mcp.NewTool("end-breastfeeding",
		mcp.WithDescription("End the running breastfeeding session."),
		childOption(),
		timeOption("endTime", "When the feeding ended"),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		endTime, err := cl.args.optionalTime("endTime")
		if err != nil {
			return nil, err
		}
		record, err := c.deps.Tracking.EndBreastfeeding(ctx, cl.membership, cl.childID, tracking.EndBreastfeedingInput{
			EndTime: endTime,
			Notes:   cl.args.optionalString("notes"),
		})
		if err != nil {
			return nil, err
		}
		left, right := record.BreastSeconds()
		return message(fmt.Sprintf("Breastfeeding ended: left %dm, right %dm", left/60, right/60), record), nil
	})

	c.register(mcp.NewTool("log-bottle-feeding",
		mcp.WithDescription("Record a bottle feeding."),
		childOption(),
		mcp.WithNumber("amountMl", mcp.Required(), mcp.Description("Amount in millilitres")),
		mcp.WithString("contentType",
			mcp.Enum(string(tracking.BottleBreastMilk), string(tracking.BottleFormula), string(tracking.BottleMixed), string(tracking.BottleOther)),
			mcp.Description("What the bottle contained")),
		timeOption("time", "When the feeding happened"),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		at, err := cl.args.optionalTime("time")
		if err != nil {
			return nil, err
		}
		amount := cl.args.optionalFloat("amountMl")
		if amount == nil {
			return nil, missing("amountMl")
		}
		record, err := c.deps.Tracking.LogBottle(ctx, cl.membership, cl.childID, tracking.LogBottleInput{
			Time:        at,
			AmountMl:    *amount,
			ContentType: enumOf[tracking.BottleContent](cl.args, "contentType"),
			Notes:       cl.args.optionalString("notes"),
		})
		if err != nil {
			return nil, err
		}
		return message(fmt.Sprintf("Logged %.0f ml bottle", *amount), record), nil
	})

	c.register(mcp.NewTool("log-solids",
		mcp.WithDescription("Record a solid food meal."),
		childOption(),
		mcp.WithArray("foodItems", mcp.Required(), mcp.WithStringItems(), mcp.Description("Foods eaten")),
		timeOption("time", "When the meal happened"),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		at, err := cl.args.optionalTime("time")
		if err != nil {
			return nil, err
		}
		record, err := c.deps.Tracking.LogSolids(ctx, cl.membership, cl.childID, tracking.LogSolidsInput{
			Time:      at,
			FoodItems: cl.args.stringList("foodItems"),
			Notes:     cl.args.optionalString("notes"),
		})
		if err != nil {
			return nil, err
		}
		return message("Logged solids", record), nil
	})

	options := append(queryOptions(),
		mcp.WithDescription("List feedings overlapping a window, with totals."),
		mcp.WithString("feedingType",
			mcp.Enum(string(tracking.FeedingBreast), string(tracking.FeedingBottle), string(tracking.FeedingSolids)),
			mcp.Description("Only return this type of feeding")),
	)
	c.register(mcp.NewTool("query-feeding-records", options...), accessRead, func(ctx context.Context, cl call) (any, error) {
		filter, err := c.queryFilter(cl.args)
		if err != nil {
			return nil, err
		}
		records, err := c.deps.Tracking.ListFeedings(ctx, cl.membership, cl.childID, filter)
		if err != nil {
			return nil, err
		}
		if feedingType := enumOf[tracking.FeedingType](cl.args, "feedingType"); feedingType != nil {
			kept := records[:0]
			for _, record := range records {
				if record.FeedingType == *feedingType {
					kept = append(kept, record)
				}
			}
			records = kept
		}
		return map[string]any{
			"records": records,
			"summary": timeline.Summarize(timeline.Records{Feedings: records}),
		}, nil
	})
}
