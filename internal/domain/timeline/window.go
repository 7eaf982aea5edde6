package timeline

import (
	"time"

	"baby-tracker-go/internal/domain/errs"
)

const (
	DefaultDayStartHour = 8
	day                 = 24 * time.Hour
	DaysInWeek          = 7
)

// Window is the half-open range [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return errs.BadRequestf("window start and end are required")
	}
	if !w.End.After(w.Start) {
		return errs.BadRequestf("window end must be after start")
	}
	return nil
}

func (w Window) ContainsPoint(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// OverlapsInterval applies the spanning rule: the interval starts inside, ends
// inside, covers the whole window, or is still running and began before End.
func (w Window) OverlapsInterval(start time.Time, end *time.Time) bool {
	if w.ContainsPoint(start) {
		return true
	}
	if end == nil {
		return start.Before(w.End)
	}
	if w.ContainsPoint(*end) {
		return true
	}
	return start.Before(w.Start) && !end.Before(w.End)
}

// DayBoundaries returns the logical day containing t. A logical day starts at
// dayStartHour in t's location, so instants before that hour belong to the
// previous calendar day.
func DayBoundaries(t time.Time, dayStartHour int) Window {
	start := time.Date(t.Year(), t.Month(), t.Day(), dayStartHour, 0, 0, 0, t.Location())
	if t.Before(start) {
		start = time.Date(t.Year(), t.Month(), t.Day()-1, dayStartHour, 0, 0, 0, t.Location())
	}
	return Window{Start: start, End: start.Add(day)}
}

// DayStart returns dayStartHour on date's calendar day, read in date's
// location. The wall-clock hour holds on days where the UTC offset changes.
func DayStart(date time.Time, dayStartHour int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), dayStartHour, 0, 0, 0, date.Location())
}

// NormalizeToTimelinePosition places t on a 24 hour axis that begins at dayStartHour.
// The result is in [0, 24).
func NormalizeToTimelinePosition(t time.Time, dayStartHour int) float64 {
	hours := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	position := hours - float64(dayStartHour)
	if position < 0 {
		position += 24
	}
	if position >= 24 {
		position -= 24
	}
	return position
}

// DateKey formats the calendar date of t in loc as yyyy-MM-dd.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}
