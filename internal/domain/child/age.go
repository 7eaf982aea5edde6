package child

import (
	"fmt"
	"strings"
	"time"
)

type Age struct {
	Months int
	Days   int
}

// AgeAt counts whole calendar months since birth, then the days left over.
// A birth on the 31st reaches its monthly anniversary on the last day of shorter months.
func AgeAt(birth, now time.Time) Age {
	birth = dateOnly(birth)
	now = dateOnly(now)
	if now.Before(birth) {
		return Age{}
	}

	months := (now.Year()-birth.Year())*12 + int(now.Month()-birth.Month())
	if addMonths(birth, months).After(now) {
		months--
	}
	anchor := addMonths(birth, months)
	days := int(now.Sub(anchor).Hours() / 24)

	return Age{Months: months, Days: days}
}

func (a Age) Years() int {
	return a.Months / 12
}

// String renders "1 year, 2 months", "3 months, 12 days" or "2 days".
func (a Age) String() string {
	parts := make([]string, 0, 2)
	years := a.Months / 12
	months := a.Months % 12

	if years > 0 {
		parts = append(parts, plural(years, "year"))
		if months > 0 {
			parts = append(parts, plural(months, "month"))
		}
		return strings.Join(parts, ", ")
	}
	if months > 0 {
		parts = append(parts, plural(months, "month"))
		if a.Days > 0 {
			parts = append(parts, plural(a.Days, "day"))
		}
		return strings.Join(parts, ", ")
	}
	return plural(a.Days, "day")
}

func AgeString(birth, now time.Time) string {
	return AgeAt(birth, now).String()
}

func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
