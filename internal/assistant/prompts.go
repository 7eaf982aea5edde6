package assistant

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"baby-tracker-go/internal/domain/errs"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultPatternDays = 7

func (c *Catalog) Prompts() []mcp.Prompt {
	return []mcp.Prompt{
		mcp.NewPrompt("analyze-sleep-patterns",
			mcp.WithPromptDescription("Look for trends in a child's sleep over recent days"),
			mcp.WithArgument("childId", mcp.ArgumentDescription("ID of the child"), mcp.RequiredArgument()),
			mcp.WithArgument("days", mcp.ArgumentDescription("Days to analyze (default 7)")),
		),
		mcp.NewPrompt("daily-summary",
			mcp.WithPromptDescription("Write a short caregiver-friendly recap of one day"),
			mcp.WithArgument("childId", mcp.ArgumentDescription("ID of the child"), mcp.RequiredArgument()),
			mcp.WithArgument("date", mcp.ArgumentDescription("Day as yyyy-MM-dd (default today)")),
		),
	}
}

func (c *Catalog) GetPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	arguments := req.Params.Arguments
	childID := arguments["childId"]
	if childID == "" {
		return nil, missing("childId")
	}

	var description, text string
	switch req.Params.Name {
	case "analyze-sleep-patterns":
		days := defaultPatternDays
		if raw := arguments["days"]; raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				return nil, errs.BadRequestf("days must be a positive integer")
			}
			days = parsed
		}
		description = "Sleep pattern analysis"
		text = fmt.Sprintf("Call query-sleep-records for child %s with days=%d and completedOnly=true. "+
			"Describe total sleep per day, the split between naps and night sleep, typical nap times and the "+
			"longest stretch. Point out anything that changed over the period and keep it practical for tired parents.",
			childID, days)
	case "daily-summary":
		date := arguments["date"]
		if date == "" {
			date = c.now().In(c.deps.Timeline.Location()).Format(time.DateOnly)
		}
		description = "Daily summary"
		text = fmt.Sprintf("Call get-daily-summary for child %s with date %s. "+
			"Write a short recap covering sleep, feedings, diapers and anything unusual such as a raised temperature or skipped medicine.",
			childID, date)
	default:
		return nil, errs.Errorf(errs.KindNotFound, "unknown prompt %q", req.Params.Name)
	}

	return &mcp.GetPromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{Role: mcp.RoleUser, Content: mcp.NewTextContent(text)},
		},
	}, nil
}
