package timeline

import (
	"time"

	"baby-tracker-go/internal/domain/tracking"
	"baby-tracker-go/pkg/timefmt"
)

// Stats aggregates a set of records. Running sessions are counted in the
// *Ongoing flags but never contribute to totals.
type Stats struct {
	SleepCount   int    `json:"sleepCount"`
	NapCount     int    `json:"napCount"`
	NightCount   int    `json:"nightCount"`
	SleepSeconds int64  `json:"sleepSeconds"`
	NapSeconds   int64  `json:"napSeconds"`
	NightSeconds int64  `json:"nightSeconds"`
	SleepTotal   string `json:"sleepTotal"`
	SleepOngoing bool   `json:"sleepOngoing"`

	FeedingCount       int     `json:"feedingCount"`
	BreastCount        int     `json:"breastCount"`
	BottleCount        int     `json:"bottleCount"`
	SolidsCount        int     `json:"solidsCount"`
	BottleMl           float64 `json:"bottleMl"`
	BreastLeftSeconds  int64   `json:"breastLeftSeconds"`
	BreastRightSeconds int64   `json:"breastRightSeconds"`
	FeedingOngoing     bool    `json:"feedingOngoing"`

	DiaperCount int `json:"diaperCount"`
	WetCount    int `json:"wetCount"`
	DirtyCount  int `json:"dirtyCount"`

	PumpingCount   int     `json:"pumpingCount"`
	PumpingMl      float64 `json:"pumpingMl"`
	PumpingOngoing bool    `json:"pumpingOngoing"`

	MedicineGiven   int `json:"medicineGiven"`
	MedicineSkipped int `json:"medicineSkipped"`

	LatestWeightKg     *float64 `json:"latestWeightKg,omitempty"`
	LatestTemperatureC *float64 `json:"latestTemperatureC,omitempty"`
	MaxTemperatureC    *float64 `json:"maxTemperatureC,omitempty"`

	ActivityCount   int    `json:"activityCount"`
	ActivitySeconds int64  `json:"activitySeconds"`
	ActivityTotal   string `json:"activityTotal"`
}

func Summarize(records Records) Stats {
	var stats Stats

	for _, r := range records.Sleep {
		if r.Open() {
			stats.SleepOngoing = true
			continue
		}
		seconds := int64(r.Duration() / time.Second)
		stats.SleepCount++
		stats.SleepSeconds += seconds
		switch r.SleepType {
		case tracking.SleepNap:
			stats.NapCount++
			stats.NapSeconds += seconds
		case tracking.SleepNight:
			stats.NightCount++
			stats.NightSeconds += seconds
		}
	}
	stats.SleepTotal = timefmt.Duration(time.Duration(stats.SleepSeconds) * time.Second)

	for _, r := range records.Feedings {
		if r.Open() {
			stats.FeedingOngoing = true
			continue
		}
		stats.FeedingCount++
		switch r.FeedingType {
		case tracking.FeedingBreast:
			stats.BreastCount++
			left, right := r.BreastSeconds()
			stats.BreastLeftSeconds += int64(left)
			stats.BreastRightSeconds += int64(right)
		case tracking.FeedingBottle:
			stats.BottleCount++
			if r.AmountMl != nil {
				stats.BottleMl += *r.AmountMl
			}
		case tracking.FeedingSolids:
			stats.SolidsCount++
		}
	}

	for _, r := range records.Diapers {
		stats.DiaperCount++
		if r.IsWet() {
			stats.WetCount++
		}
		if r.IsDirty() {
			stats.DirtyCount++
		}
	}

	for _, r := range records.Pumping {
		if r.Open() {
			stats.PumpingOngoing = true
			continue
		}
		stats.PumpingCount++
		if r.AmountMl != nil {
			stats.PumpingMl += *r.AmountMl
		}
	}

	for _, r := range records.Medicines {
		if r.Skipped {
			stats.MedicineSkipped++
		} else {
			stats.MedicineGiven++
		}
	}

	var weighedAt time.Time
	for _, r := range records.Growth {
		if r.WeightKg != nil && (stats.LatestWeightKg == nil || r.Date.After(weighedAt)) {
			weight := *r.WeightKg
			stats.LatestWeightKg = &weight
			weighedAt = r.Date
		}
	}

	var measuredAt time.Time
	for _, r := range records.Temperatures {
		celsius := r.TemperatureCelsius
		if stats.LatestTemperatureC == nil || r.Time.After(measuredAt) {
			latest := celsius
			stats.LatestTemperatureC = &latest
			measuredAt = r.Time
		}
		if stats.MaxTemperatureC == nil || celsius > *stats.MaxTemperatureC {
			highest := celsius
			stats.MaxTemperatureC = &highest
		}
	}

	for _, r := range records.Activities {
		if r.Open() {
			continue
		}
		stats.ActivityCount++
		stats.ActivitySeconds += int64(r.EndTime.Sub(r.StartTime) / time.Second)
	}
	stats.ActivityTotal = timefmt.Duration(time.Duration(stats.ActivitySeconds) * time.Second)

	return stats
}
