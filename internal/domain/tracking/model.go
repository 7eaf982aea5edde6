package tracking

import (
	"time"

	"gorm.io/gorm"
)

type Category string

const (
	CategorySleep       Category = "sleep"
	CategoryFeeding     Category = "feeding"
	CategoryDiaper      Category = "diaper"
	CategoryPumping     Category = "pumping"
	CategoryMedicine    Category = "medicine"
	CategoryGrowth      Category = "growth"
	CategoryTemperature Category = "temperature"
	CategoryActivity    Category = "activity"
)

type SleepType string

const (
	SleepNap   SleepType = "NAP"
	SleepNight SleepType = "NIGHT"
)

type FeedingType string

const (
	FeedingBreast FeedingType = "BREAST"
	FeedingBottle FeedingType = "BOTTLE"
	FeedingSolids FeedingType = "SOLIDS"
)

type Side string

const (
	SideLeft  Side = "LEFT"
	SideRight Side = "RIGHT"
	SideBoth  Side = "BOTH"
)

type BottleContent string

const (
	BottleBreastMilk BottleContent = "BREAST_MILK"
	BottleFormula    BottleContent = "FORMULA"
	BottleMixed      BottleContent = "MIXED"
	BottleOther      BottleContent = "OTHER"
)

type DiaperType string

const (
	DiaperWet   DiaperType = "WET"
	DiaperDirty DiaperType = "DIRTY"
	DiaperBoth  DiaperType = "BOTH"
	DiaperDry   DiaperType = "DRY"
)

type DiaperAmount string

const (
	AmountSmall  DiaperAmount = "SMALL"
	AmountMedium DiaperAmount = "MEDIUM"
	AmountLarge  DiaperAmount = "LARGE"
)

type ActivityType string

const (
	ActivityTummyTime ActivityType = "TUMMY_TIME"
	ActivityBath      ActivityType = "BATH"
	ActivityOutdoor   ActivityType = "OUTDOOR"
	ActivityPlay      ActivityType = "PLAY"
	ActivityReading   ActivityType = "READING"
	ActivityOther     ActivityType = "OTHER"
)

type SleepRecord struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID   string     `gorm:"type:uuid;index:idx_sleep_child_start,priority:1;not null" json:"childId"`
	StartTime time.Time  `gorm:"index:idx_sleep_child_start,priority:2;not null" json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	SleepType SleepType  `gorm:"type:varchar(16);not null" json:"sleepType"`
	Quality   *int       `json:"quality,omitempty"`
	Notes     *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy string     `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r SleepRecord) Open() bool {
	return r.EndTime == nil
}

// Duration is zero while the session is still running.
func (r SleepRecord) Duration() time.Duration {
	if r.EndTime == nil {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

type FeedingRecord struct {
	ID                   string         `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID              string         `gorm:"type:uuid;index:idx_feeding_child_start,priority:1;not null" json:"childId"`
	FeedingType          FeedingType    `gorm:"type:varchar(16);not null" json:"feedingType"`
	StartTime            time.Time      `gorm:"index:idx_feeding_child_start,priority:2;not null" json:"startTime"`
	EndTime              *time.Time     `json:"endTime,omitempty"`
	Side                 *Side          `gorm:"type:varchar(8)" json:"side,omitempty"`
	LeftDurationSeconds  *int           `json:"leftDurationSeconds,omitempty"`
	RightDurationSeconds *int           `json:"rightDurationSeconds,omitempty"`
	AmountMl             *float64       `gorm:"type:numeric(8,2)" json:"amountMl,omitempty"`
	BottleContentType    *BottleContent `gorm:"type:varchar(16)" json:"bottleContentType,omitempty"`
	FoodItems            []string       `gorm:"type:text;serializer:json" json:"foodItems,omitempty"`
	Notes                *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy            string         `gorm:"not null" json:"createdBy"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// AfterFind upgrades legacy breastfeeding rows to per-side durations on every read.
func (r *FeedingRecord) AfterFind(tx *gorm.DB) error {
	NormalizeFeeding(r)
	return nil
}

func (r FeedingRecord) Open() bool {
	return r.EndTime == nil
}

// BreastState is what a side switch or an end reads from an open session.
type BreastState struct {
	Side         Side
	LeftSeconds  int
	RightSeconds int
}

func (r FeedingRecord) BreastState() BreastState {
	state := BreastState{}
	if r.Side != nil {
		state.Side = *r.Side
	}
	state.LeftSeconds, state.RightSeconds = r.BreastSeconds()
	return state
}

func (r FeedingRecord) BreastSeconds() (left, right int) {
	if r.LeftDurationSeconds != nil {
		left = *r.LeftDurationSeconds
	}
	if r.RightDurationSeconds != nil {
		right = *r.RightDurationSeconds
	}
	return left, right
}

type DiaperRecord struct {
	ID          string        `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID     string        `gorm:"type:uuid;index:idx_diaper_child_time,priority:1;not null" json:"childId"`
	Time        time.Time     `gorm:"column:occurred_at;index:idx_diaper_child_time,priority:2;not null" json:"time"`
	DiaperType  DiaperType    `gorm:"type:varchar(8);not null" json:"diaperType"`
	Color       *string       `gorm:"type:varchar(32)" json:"color,omitempty"`
	Consistency *string       `gorm:"type:varchar(32)" json:"consistency,omitempty"`
	Amount      *DiaperAmount `gorm:"type:varchar(8)" json:"amount,omitempty"`
	Notes       *string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy   string        `gorm:"not null" json:"createdBy"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r DiaperRecord) IsWet() bool {
	return r.DiaperType == DiaperWet || r.DiaperType == DiaperBoth
}

func (r DiaperRecord) IsDirty() bool {
	return r.DiaperType == DiaperDirty || r.DiaperType == DiaperBoth
}

type PumpingRecord struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID   string     `gorm:"type:uuid;index:idx_pumping_child_start,priority:1;not null" json:"childId"`
	StartTime time.Time  `gorm:"index:idx_pumping_child_start,priority:2;not null" json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	AmountMl  *float64   `gorm:"type:numeric(8,2)" json:"amountMl,omitempty"`
	Side      *Side      `gorm:"type:varchar(8)" json:"side,omitempty"`
	Notes     *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy string     `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r PumpingRecord) Open() bool {
	return r.EndTime == nil
}

type Medicine struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID   string    `gorm:"type:uuid;index;not null" json:"childId"`
	Name      string    `gorm:"not null" json:"name"`
	Dosage    string    `gorm:"not null" json:"dosage"`
	Unit      *string   `gorm:"type:varchar(16)" json:"unit,omitempty"`
	Frequency *string   `gorm:"type:varchar(64)" json:"frequency,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	Notes     *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy string    `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type MedicineRecord struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID     string    `gorm:"type:uuid;index:idx_medicine_record_child_time,priority:1;not null" json:"childId"`
	MedicineID  string    `gorm:"type:uuid;index;not null" json:"medicineId"`
	Time        time.Time `gorm:"column:occurred_at;index:idx_medicine_record_child_time,priority:2;not null" json:"time"`
	DosageGiven *string   `gorm:"type:varchar(64)" json:"dosageGiven,omitempty"`
	Skipped     bool      `gorm:"not null;default:false" json:"skipped"`
	Notes       *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy   string    `gorm:"not null" json:"createdBy"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	MedicineName string `gorm:"->;-:migration" json:"medicineName,omitempty"`
}

type GrowthRecord struct {
	ID                  string    `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID             string    `gorm:"type:uuid;index:idx_growth_child_date,priority:1;not null" json:"childId"`
	Date                time.Time `gorm:"column:measured_at;index:idx_growth_child_date,priority:2;not null" json:"date"`
	WeightKg            *float64  `gorm:"type:numeric(6,3)" json:"weightKg,omitempty"`
	HeightCm            *float64  `gorm:"type:numeric(6,2)" json:"heightCm,omitempty"`
	HeadCircumferenceCm *float64  `gorm:"type:numeric(6,2)" json:"headCircumferenceCm,omitempty"`
	Notes               *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy           string    `gorm:"not null" json:"createdBy"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type TemperatureRecord struct {
	ID                 string    `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID            string    `gorm:"type:uuid;index:idx_temperature_child_time,priority:1;not null" json:"childId"`
	Time               time.Time `gorm:"column:occurred_at;index:idx_temperature_child_time,priority:2;not null" json:"time"`
	TemperatureCelsius float64   `gorm:"type:numeric(4,1);not null" json:"temperatureCelsius"`
	Notes              *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy          string    `gorm:"not null" json:"createdBy"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type ActivityRecord struct {
	ID           string       `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID      string       `gorm:"type:uuid;index:idx_activity_child_start,priority:1;not null" json:"childId"`
	ActivityType ActivityType `gorm:"type:varchar(16);not null" json:"activityType"`
	StartTime    time.Time    `gorm:"index:idx_activity_child_start,priority:2;not null" json:"startTime"`
	EndTime      *time.Time   `json:"endTime,omitempty"`
	Notes        *string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy    string       `gorm:"not null" json:"createdBy"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r ActivityRecord) Open() bool {
	return r.EndTime == nil
}

// Filter narrows a list query. Interval categories match with the spanning rule,
// point categories with [From, To).
type Filter struct {
	From          *time.Time
	To            *time.Time
	CompletedOnly bool
	Limit         int
}
