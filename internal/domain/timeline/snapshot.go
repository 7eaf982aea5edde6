package timeline

import (
	"errors"

	"baby-tracker-go/internal/domain/tracking"
)

// Snapshot holds the newest completed record of each category and every
// session that is still running.
type Snapshot struct {
	Sleep       *tracking.SleepRecord       `json:"sleep,omitempty"`
	Feeding     *tracking.FeedingRecord     `json:"feeding,omitempty"`
	Diaper      *tracking.DiaperRecord      `json:"diaper,omitempty"`
	Pumping     *tracking.PumpingRecord     `json:"pumping,omitempty"`
	Medicine    *tracking.MedicineRecord    `json:"medicine,omitempty"`
	Growth      *tracking.GrowthRecord      `json:"growth,omitempty"`
	Temperature *tracking.TemperatureRecord `json:"temperature,omitempty"`
	Activity    *tracking.ActivityRecord    `json:"activity,omitempty"`

	ActiveSleep         *tracking.SleepRecord     `json:"activeSleep,omitempty"`
	ActiveBreastfeeding *tracking.FeedingRecord   `json:"activeBreastfeeding,omitempty"`
	ActivePumping       *tracking.PumpingRecord   `json:"activePumping,omitempty"`
	ActiveActivities    []tracking.ActivityRecord `json:"activeActivities"`
}

// optional turns the repository's "nothing there" sentinel into a nil record.
func optional[T any](record *T, err, missing error) (*T, error) {
	if errors.Is(err, missing) {
		return nil, nil
	}
	return record, err
}
