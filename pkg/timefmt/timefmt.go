// Package timefmt renders durations and instants the way the app shows them to people.
package timefmt

import (
	"fmt"
	"time"
)

const ongoing = "ongoing"

// Duration prints the largest units first and drops zero leading units:
// "2h 30m", "5m 30s", "45s". Negative values print as "0s".
func Duration(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

func DurationPrecise(start, end time.Time) string {
	return Duration(end.Sub(start))
}

// TimeSince describes how long ago t was relative to now. Instants in the
// future collapse to "just now".
func TimeSince(t, now time.Time) string {
	elapsed := now.Sub(t)
	if elapsed < time.Minute {
		return "just now"
	}

	minutes := int64(elapsed / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh %dm ago", hours, minutes%60)
	}
	days := hours / 24
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}

// TimeRange prints "start - end", or "start - ongoing" while end is unknown.
func TimeRange(start time.Time, end *time.Time, layout string) string {
	if end == nil {
		return start.Format(layout) + " - " + ongoing
	}
	return start.Format(layout) + " - " + end.Format(layout)
}
