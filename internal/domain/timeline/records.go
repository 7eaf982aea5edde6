package timeline

import (
	"slices"
	"time"

	"baby-tracker-go/internal/domain/tracking"
)

// Records holds one window's worth of records of every category.
type Records struct {
	Sleep        []tracking.SleepRecord       `json:"sleep"`
	Feedings     []tracking.FeedingRecord     `json:"feedings"`
	Diapers      []tracking.DiaperRecord      `json:"diapers"`
	Pumping      []tracking.PumpingRecord     `json:"pumping"`
	Medicines    []tracking.MedicineRecord    `json:"medicines"`
	Growth       []tracking.GrowthRecord      `json:"growth"`
	Temperatures []tracking.TemperatureRecord `json:"temperatures"`
	Activities   []tracking.ActivityRecord    `json:"activities"`
}

func emptyRecords() Records {
	return Records{
		Sleep:        []tracking.SleepRecord{},
		Feedings:     []tracking.FeedingRecord{},
		Diapers:      []tracking.DiaperRecord{},
		Pumping:      []tracking.PumpingRecord{},
		Medicines:    []tracking.MedicineRecord{},
		Growth:       []tracking.GrowthRecord{},
		Temperatures: []tracking.TemperatureRecord{},
		Activities:   []tracking.ActivityRecord{},
	}
}

func (r Records) Len() int {
	return len(r.Sleep) + len(r.Feedings) + len(r.Diapers) + len(r.Pumping) +
		len(r.Medicines) + len(r.Growth) + len(r.Temperatures) + len(r.Activities)
}

// Entry is a record tagged with its category and the instant it is ordered by:
// the start of an interval or the time of a point event.
type Entry struct {
	Category tracking.Category `json:"category"`
	Time     time.Time         `json:"time"`
	Record   any               `json:"record"`
}

type DateGroup struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}

// Merge flattens records into one sequence, newest first. Entries with the same
// time keep category order, then their order within the category.
func Merge(records Records) []Entry {
	entries := make([]Entry, 0, records.Len())
	for _, r := range records.Sleep {
		entries = append(entries, Entry{Category: tracking.CategorySleep, Time: r.StartTime, Record: r})
	}
	for _, r := range records.Feedings {
		entries = append(entries, Entry{Category: tracking.CategoryFeeding, Time: r.StartTime, Record: r})
	}
	for _, r := range records.Diapers {
		entries = append(entries, Entry{Category: tracking.CategoryDiaper, Time: r.Time, Record: r})
	}
	for _, r := range records.Pumping {
		entries = append(entries, Entry{Category: tracking.CategoryPumping, Time: r.StartTime, Record: r})
	}
	for _, r := range records.Medicines {
		entries = append(entries, Entry{Category: tracking.CategoryMedicine, Time: r.Time, Record: r})
	}
	for _, r := range records.Growth {
		entries = append(entries, Entry{Category: tracking.CategoryGrowth, Time: r.Date, Record: r})
	}
	for _, r := range records.Temperatures {
		entries = append(entries, Entry{Category: tracking.CategoryTemperature, Time: r.Time, Record: r})
	}
	for _, r := range records.Activities {
		entries = append(entries, Entry{Category: tracking.CategoryActivity, Time: r.StartTime, Record: r})
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Time.Compare(a.Time)
	})
	return entries
}

// GroupByDate splits sorted entries by their calendar date in loc. Groups keep
// the order in which their dates first appear.
func GroupByDate(entries []Entry, loc *time.Location) []DateGroup {
	groups := make([]DateGroup, 0)
	index := make(map[string]int)
	for _, entry := range entries {
		key := DateKey(entry.Time, loc)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup{Date: key})
		}
		groups[i].Entries = append(groups[i].Entries, entry)
	}
	return groups
}
