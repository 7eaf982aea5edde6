package timeline

import "time"

type DaySummary struct {
	Date    string  `json:"date"`
	Window  Window  `json:"window"`
	Records Records `json:"records"`
	Stats   Stats   `json:"stats"`
}

func newDaySummary(window Window, records Records) DaySummary {
	return DaySummary{
		Date:    window.Start.Format(time.DateOnly),
		Window:  window,
		Records: records,
		Stats:   Summarize(records),
	}
}

// WeekWindow covers the seven logical days beginning with the one containing weekStart.
func WeekWindow(weekStart time.Time, dayStartHour int) Window {
	first := DayBoundaries(weekStart, dayStartHour)
	return Window{Start: first.Start, End: first.Start.Add(DaysInWeek * day)}
}

// OrganizeWeek partitions a week of records into seven logical days. Every
// record lands in exactly one day: the one holding its start or point time.
// Intervals that began before the week are attributed to its first day, so a
// night's sleep belongs wholly to the evening it started. This differs from
// Day, which uses the spanning rule: an interval crossing the day-start hour
// shows in both days there but in only the first day here.
func OrganizeWeek(records Records, weekStart time.Time, dayStartHour int) []DaySummary {
	week := WeekWindow(weekStart, dayStartHour)

	buckets := make([]Records, DaysInWeek)
	for i := range buckets {
		buckets[i] = emptyRecords()
	}

	for _, r := range records.Sleep {
		if i, ok := bucketOf(week, r.StartTime); ok {
			buckets[i].Sleep = append(buckets[i].Sleep, r)
		}
	}
	for _, r := range records.Feedings {
		if i, ok := bucketOf(week, r.StartTime); ok {
			buckets[i].Feedings = append(buckets[i].Feedings, r)
		}
	}
	for _, r := range records.Diapers {
		if i, ok := bucketOf(week, r.Time); ok {
			buckets[i].Diapers = append(buckets[i].Diapers, r)
		}
	}
	for _, r := range records.Pumping {
		if i, ok := bucketOf(week, r.StartTime); ok {
			buckets[i].Pumping = append(buckets[i].Pumping, r)
		}
	}
	for _, r := range records.Medicines {
		if i, ok := bucketOf(week, r.Time); ok {
			buckets[i].Medicines = append(buckets[i].Medicines, r)
		}
	}
	for _, r := range records.Growth {
		if i, ok := bucketOf(week, r.Date); ok {
			buckets[i].Growth = append(buckets[i].Growth, r)
		}
	}
	for _, r := range records.Temperatures {
		if i, ok := bucketOf(week, r.Time); ok {
			buckets[i].Temperatures = append(buckets[i].Temperatures, r)
		}
	}
	for _, r := range records.Activities {
		if i, ok := bucketOf(week, r.StartTime); ok {
			buckets[i].Activities = append(buckets[i].Activities, r)
		}
	}

	days := make([]DaySummary, 0, DaysInWeek)
	for i := range buckets {
		start := week.Start.Add(time.Duration(i) * day)
		days = append(days, newDaySummary(Window{Start: start, End: start.Add(day)}, buckets[i]))
	}
	return days
}

func bucketOf(week Window, at time.Time) (int, bool) {
	if !at.Before(week.End) {
		return 0, false
	}
	if at.Before(week.Start) {
		return 0, true
	}
	return int(at.Sub(week.Start) / day), true
}
