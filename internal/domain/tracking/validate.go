package tracking

import (
	"strings"
	"time"

	"baby-tracker-go/internal/domain/errs"
)

const (
	minTemperatureCelsius = 25.0
	maxTemperatureCelsius = 45.0
)

func (t SleepType) Valid() bool {
	return t == SleepNap || t == SleepNight
}

func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight || s == SideBoth
}

func (c BottleContent) Valid() bool {
	switch c {
	case BottleBreastMilk, BottleFormula, BottleMixed, BottleOther:
		return true
	}
	return false
}

func (t DiaperType) Valid() bool {
	switch t {
	case DiaperWet, DiaperDirty, DiaperBoth, DiaperDry:
		return true
	}
	return false
}

func (a DiaperAmount) Valid() bool {
	return a == AmountSmall || a == AmountMedium || a == AmountLarge
}

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTummyTime, ActivityBath, ActivityOutdoor, ActivityPlay, ActivityReading, ActivityOther:
		return true
	}
	return false
}

func validateInterval(start time.Time, end *time.Time) error {
	if start.IsZero() {
		return errs.BadRequestf("start time is required")
	}
	if end != nil && end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}

func validateQuality(quality *int) error {
	if quality != nil && (*quality < 1 || *quality > 5) {
		return errs.BadRequestf("quality must be between 1 and 5")
	}
	return nil
}

func validateAmount(field string, amount *float64) error {
	if amount != nil && *amount < 0 {
		return errs.BadRequestf("%s must not be negative", field)
	}
	return nil
}

func validateOptionalSide(side *Side) error {
	if side != nil && !side.Valid() {
		return errs.BadRequestf("side must be LEFT, RIGHT or BOTH")
	}
	return nil
}

func validateSleepType(t SleepType) error {
	if !t.Valid() {
		return errs.BadRequestf("sleep type must be NAP or NIGHT")
	}
	return nil
}

func validateActivityType(t ActivityType) error {
	if !t.Valid() {
		return errs.BadRequestf("unknown activity type %q", t)
	}
	return nil
}

func validateTemperature(celsius float64) error {
	if celsius < minTemperatureCelsius || celsius > maxTemperatureCelsius {
		return errs.BadRequestf("temperature must be between %.0f and %.0f °C", minTemperatureCelsius, maxTemperatureCelsius)
	}
	return nil
}

func cleanText(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// instant truncates to whole seconds in UTC, the stored precision.
func instant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func instantPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := instant(*t)
	return &v
}
