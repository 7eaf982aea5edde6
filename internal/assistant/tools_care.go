package assistant

import (
	"context"
	"fmt"

	"baby-tracker-go/internal/domain/errs"
	"baby-tracker-go/internal/domain/timeline"
	"baby-tracker-go/internal/domain/tracking"
	"baby-tracker-go/pkg/timefmt"
	"github.com/mark3labs/mcp-go/mcp"
)

func (c *Catalog) registerCareTools() {
	c.registerDiaperTools()
	c.registerPumpingTools()
	c.registerMedicineTools()
	c.registerMeasurementTools()
}

func (c *Catalog) registerDiaperTools() {
	c.register(mcp.NewTool("log-diaper",
		mcp.WithDescription("Record a diaper change."),
		childOption(),
		mcp.WithString("diaperType", mcp.Required(),
			mcp.Enum(string(tracking.DiaperWet), string(tracking.DiaperDirty), string(tracking.DiaperBoth), string(tracking.DiaperDry))),
		mcp.WithString("color", mcp.Description("Stool color")),
		mcp.WithString("consistency", mcp.Description("Stool consistency")),
		mcp.WithString("amount", mcp.Enum(string(tracking.AmountSmall), string(tracking.AmountMedium), string(tracking.AmountLarge))),
		timeOption("time", "When the change happened"),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		at, err := cl.args.optionalTime("time")
		if err != nil {
			return nil, err
		}
		diaperType := enumOf[tracking.DiaperType](cl.args, "diaperType")
		if diaperType == nil {
			return nil, missing("diaperType")
		}
		record, err := c.deps.Tracking.LogDiaper(ctx, cl.membership, cl.childID, tracking.LogDiaperInput{
			Time:        at,
			DiaperType:  *diaperType,
			Color:       cl.args.optionalString("color"),
			Consistency: cl.args.optionalString("consistency"),
			Amount:      enumOf[tracking.DiaperAmount](cl.args, "amount"),
			Notes:       cl.args.optionalString("notes"),
		})
		if err != nil {
			return nil, err
		}
		return message("Logged "+string(record.DiaperType)+" diaper", record), nil
	})

	c.register(mcp.NewTool("query-diaper-records",
		append(queryOptions(), mcp.WithDescription("List diaper changes in a window, with wet and dirty counts."))...,
	), accessRead, func(ctx context.Context, cl call) (any, error) {
		filter, err := c.queryFilter(cl.args)
		if err != nil {
			return nil, err
		}
		records, err := c.deps.Tracking.ListDiapers(ctx, cl.membership, cl.childID, filter)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"records": records,
			"summary": timeline.Summarize(timeline.Records{Diapers: records}),
		}, nil
	})
}

func (c *Catalog) registerPumpingTools() {
	c.register(mcp.NewTool("start-pumping",
		mcp.WithDescription("Start a pumping session. Fails if one is already running."),
		childOption(),
		sideOption("Side being pumped"),
		timeOption("startTime", "When pumping started"),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		startTime, err := cl.args.optionalTime("startTime")
		if err != nil {
			return nil, err
		}
		record, err := c.deps.Tracking.StartPumping(ctx, cl.membership, cl.childID, tracking.StartPumpingInput{
			StartTime: startTime,
			Side:      enumOf[tracking.Side](cl.args, "side"),
		})
		if err != nil {
			return nil, err
		}
		return message("Pumping started", record), nil
	})

	c.register(mcp.NewTool("end-pumping",
		mcp.WithDescription("End the running pumping session."),
		childOption(),
		mcp.WithNumber("amountMl", mcp.Description("Amount pumped in millilitres")),
		timeOption("endTime", "When pumping ended"),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		endTime, err := cl.args.optionalTime("endTime")
		if err != nil {
			return nil, err
		}
		record, err := c.deps.Tracking.EndPumping(ctx, cl.membership, cl.childID, tracking.EndPumpingInput{
			EndTime:  endTime,
			AmountMl: cl.args.optionalFloat("amountMl"),
			Notes:    cl.args.optionalString("notes"),
		})
		if err != nil {
			return nil, err
		}
		var elapsed string
		if record.EndTime != nil {
			elapsed = timefmt.Duration(record.EndTime.Sub(record.StartTime))
		}
		return message("Pumping ended after "+elapsed, record), nil
	})

	c.register(mcp.NewTool("query-pumping-records",
		append(queryOptions(), mcp.WithDescription("List pumping sessions overlapping a window, with total volume."))...,
	), accessRead, func(ctx context.Context, cl call) (any, error) {
		filter, err := c.queryFilter(cl.args)
		if err != nil {
			return nil, err
		}
		records, err := c.deps.Tracking.ListPumping(ctx, cl.membership, cl.childID, filter)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"records": records,
			"summary": timeline.Summarize(timeline.Records{Pumping: records}),
		}, nil
	})
}

func (c *Catalog) registerMedicineTools() {
	c.register(mcp.NewTool("log-medicine",
		mcp.WithDescription("Record a medicine dose, given or skipped. Identify the medicine by medicineId or by its name."),
		childOption(),
		mcp.WithString("medicineId", mcp.Description("ID of the medicine")),
		mcp.WithString("medicineName", mcp.Description("Name of the medicine, case-insensitive")),
		mcp.WithString("dosageGiven", mcp.Description("Dosage given. Defaults to the medicine's dosage")),
		mcp.WithBoolean("skipped", mcp.Description("The dose was skipped")),
		timeOption("time", "When the dose was given"),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		at, err := cl.args.optionalTime("time")
		if err != nil {
			return nil, err
		}
		input := tracking.LogDoseInput{
			Time:        at,
			DosageGiven: cl.args.optionalString("dosageGiven"),
			Skipped:     cl.args.boolean("skipped"),
			Notes:       cl.args.optionalString("notes"),
		}
		if id := cl.args.optionalString("medicineId"); id != nil {
			input.MedicineID = *id
		}
		if name := cl.args.optionalString("medicineName"); name != nil {
			input.MedicineName = *name
		}
		if input.MedicineID == "" && input.MedicineName == "" {
			return nil, errs.BadRequestf("medicineId or medicineName is required")
		}
		record, err := c.deps.Tracking.LogMedicineDose(ctx, cl.membership, cl.childID, input)
		if err != nil {
			return nil, err
		}
		verb := "Gave"
		if record.Skipped {
			verb = "Skipped"
		}
		return message(verb+" "+record.MedicineName, record), nil
	})

	options := append(queryOptions(),
		mcp.WithDescription("List medicine doses in a window, and the child's active medicines."),
	)
	c.register(mcp.NewTool("query-medicine-records", options...), accessRead, func(ctx context.Context, cl call) (any, error) {
		filter, err := c.queryFilter(cl.args)
		if err != nil {
			return nil, err
		}
		records, err := c.deps.Tracking.ListMedicineDoses(ctx, cl.membership, cl.childID, filter)
		if err != nil {
			return nil, err
		}
		medicines, err := c.deps.Tracking.ListMedicines(ctx, cl.membership, cl.childID, true)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"records":   records,
			"medicines": medicines,
			"summary":   timeline.Summarize(timeline.Records{Medicines: records}),
		}, nil
	})
}

func (c *Catalog) registerMeasurementTools() {
	c.register(mcp.NewTool("log-growth",
		mcp.WithDescription("Record a growth measurement. At least one of weight, height or head circumference is needed."),
		childOption(),
		mcp.WithNumber("weightKg", mcp.Description("Weight in kilograms")),
		mcp.WithNumber("heightCm", mcp.Description("Height in centimetres")),
		mcp.WithNumber("headCircumferenceCm", mcp.Description("Head circumference in centimetres")),
		timeOption("date", "When the measurement was taken"),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		date, err := cl.args.optionalTime("date")
		if err != nil {
			return nil, err
		}
		record, err := c.deps.Tracking.LogGrowth(ctx, cl.membership, cl.childID, tracking.LogGrowthInput{
			Date:                date,
			WeightKg:            cl.args.optionalFloat("weightKg"),
			HeightCm:            cl.args.optionalFloat("heightCm"),
			HeadCircumferenceCm: cl.args.optionalFloat("headCircumferenceCm"),
			Notes:               cl.args.optionalString("notes"),
		})
		if err != nil {
			return nil, err
		}
		return message("Logged growth measurement", record), nil
	})

	growthOptions := append(queryOptions(), mcp.WithDescription("List growth measurements in a window. Use a large days value for trends."))
	c.register(mcp.NewTool("query-growth-records", growthOptions...), accessRead, func(ctx context.Context, cl call) (any, error) {
		filter, err := c.queryFilter(cl.args)
		if err != nil {
			return nil, err
		}
		records, err := c.deps.Tracking.ListGrowth(ctx, cl.membership, cl.childID, filter)
		if err != nil {
			return nil, err
		}
		return map[string]any{"records": records}, nil
	})

	c.register(mcp.NewTool("log-temperature",
		mcp.WithDescription("Record a body temperature reading."),
		childOption(),
		mcp.WithNumber("temperatureCelsius", mcp.Required(), mcp.Description("Temperature in degrees Celsius")),
		timeOption("time", "When the temperature was taken"),
		notesOption(),
	), accessWrite, func(ctx context.Context, cl call) (any, error) {
		at, err := cl.args.optionalTime("time")
		if err != nil {
			return nil, err
		}
		celsius := cl.args.optionalFloat("temperatureCelsius")
		if celsius == nil {
			return nil, missing("temperatureCelsius")
		}
		record, err := c.deps.Tracking.LogTemperature(ctx, cl.membership, cl.childID, tracking.LogTemperatureInput{
			Time:               at,
			TemperatureCelsius: *celsius,
			Notes:              cl.args.optionalString("notes"),
		})
		if err != nil {
			return nil, err
		}
		return message(fmt.Sprintf("Logged %.1f°C", record.TemperatureCelsius), record), nil
	})

	temperatureOptions := append(queryOptions(), mcp.WithDescription("List temperature readings in a window, with the latest and highest values."))
	c.register(mcp.NewTool("query-temperature-records", temperatureOptions...), accessRead, func(ctx context.Context, cl call) (any, error) {
		filter, err := c.queryFilter(cl.args)
		if err != nil {
			return nil, err
		}
		records, err := c.deps.Tracking.ListTemperatures(ctx, cl.membership, cl.childID, filter)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"records": records,
			"summary": timeline.Summarize(timeline.Records{Temperatures: records}),
		}, nil
	})
}
