package timeline

import (
	"testing"
	"time"

	"baby-tracker-go/internal/domain/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() Records {
	at := func(day, hour, minute int) time.Time {
		return time.Date(2024, 1, day, hour, minute, 0, 0, time.UTC)
	}
	end := at(15, 11, 30)

	return Records{
		Sleep: []tracking.SleepRecord{
			{ID: "s1", StartTime: at(15, 10, 0), EndTime: &end, SleepType: tracking.SleepNap},
		},
		Feedings: []tracking.FeedingRecord{
			{ID: "f1", StartTime: at(15, 9, 0), FeedingType: tracking.FeedingBottle},
			{ID: "f2", StartTime: at(14, 22, 0), FeedingType: tracking.FeedingBottle},
		},
		Diapers: []tracking.DiaperRecord{
			{ID: "d1", Time: at(15, 10, 0), DiaperType: tracking.DiaperWet},
		},
		Temperatures: []tracking.TemperatureRecord{
			{ID: "t1", Time: at(16, 1, 0), TemperatureCelsius: 37.2},
		},
	}
}

func TestMergeSortsNewestFirstAndKeepsTies(t *testing.T) {
	entries := Merge(sampleRecords())
	require.Len(t, entries, 5)

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Time.After(entries[i-1].Time), "entry %d out of order", i)
	}

	// Sleep and diaper share 10:00; sleep is fetched first.
	assert.Equal(t, tracking.CategoryTemperature, entries[0].Category)
	assert.Equal(t, tracking.CategorySleep, entries[1].Category)
	assert.Equal(t, tracking.CategoryDiaper, entries[2].Category)
}

func TestGroupByDatePartitionsEntries(t *testing.T) {
	entries := Merge(sampleRecords())
	groups := GroupByDate(entries, time.UTC)

	require.Len(t, groups, 3)
	assert.Equal(t, "2024-01-16", groups[0].Date)
	assert.Equal(t, "2024-01-15", groups[1].Date)
	assert.Equal(t, "2024-01-14", groups[2].Date)

	var rebuilt []Entry
	for _, group := range groups {
		rebuilt = append(rebuilt, group.Entries...)
	}
	assert.Equal(t, entries, rebuilt)
}

func TestGroupByDateUsesLocalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	entries := Merge(sampleRecords())
	groups := GroupByDate(entries, loc)

	// 2024-01-16 01:00 UTC is still the 15th five hours west.
	assert.Equal(t, "2024-01-15", groups[0].Date)
}
