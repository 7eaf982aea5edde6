package tracking

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	// Sleep
	ListSleep(ctx context.Context, childID string, filter Filter) ([]SleepRecord, error)
	GetSleep(ctx context.Context, childID, recordID string) (*SleepRecord, error)
	OpenSleep(ctx context.Context, childID string) (*SleepRecord, error)
	LatestCompletedSleep(ctx context.Context, childID string) (*SleepRecord, error)
	CreateSleep(ctx context.Context, record *SleepRecord) error
	UpdateSleep(ctx context.Context, record *SleepRecord) error
	DeleteSleep(ctx context.Context, childID, recordID string) (bool, error)

	// Feeding
	ListFeedings(ctx context.Context, childID string, filter Filter) ([]FeedingRecord, error)
	GetFeeding(ctx context.Context, childID, recordID string) (*FeedingRecord, error)
	OpenBreastfeeding(ctx context.Context, childID string) (*FeedingRecord, error)
	LatestCompletedFeeding(ctx context.Context, childID string) (*FeedingRecord, error)
	CreateFeeding(ctx context.Context, record *FeedingRecord) error
	UpdateFeeding(ctx context.Context, record *FeedingRecord) error
	// UpdateOpenFeeding writes record only while the session is still open and
	// matches seen. Otherwise it returns ErrBreastfeedingChanged.
	UpdateOpenFeeding(ctx context.Context, record *FeedingRecord, seen BreastState) error
	DeleteFeeding(ctx context.Context, childID, recordID string) (bool, error)

	// Diaper
	ListDiapers(ctx context.Context, childID string, filter Filter) ([]DiaperRecord, error)
	GetDiaper(ctx context.Context, childID, recordID string) (*DiaperRecord, error)
	LatestDiaper(ctx context.Context, childID string) (*DiaperRecord, error)
	CreateDiaper(ctx context.Context, record *DiaperRecord) error
	UpdateDiaper(ctx context.Context, record *DiaperRecord) error
	DeleteDiaper(ctx context.Context, childID, recordID string) (bool, error)

	// Pumping
	ListPumping(ctx context.Context, childID string, filter Filter) ([]PumpingRecord, error)
	GetPumping(ctx context.Context, childID, recordID string) (*PumpingRecord, error)
	OpenPumping(ctx context.Context, childID string) (*PumpingRecord, error)
	LatestCompletedPumping(ctx context.Context, childID string) (*PumpingRecord, error)
	CreatePumping(ctx context.Context, record *PumpingRecord) error
	UpdatePumping(ctx context.Context, record *PumpingRecord) error
	DeletePumping(ctx context.Context, childID, recordID string) (bool, error)

	// Medicine definitions and doses
	ListMedicines(ctx context.Context, childID string, activeOnly bool) ([]Medicine, error)
	GetMedicine(ctx context.Context, childID, medicineID string) (*Medicine, error)
	FindMedicineByName(ctx context.Context, childID, name string) (*Medicine, error)
	CreateMedicine(ctx context.Context, medicine *Medicine) error
	UpdateMedicine(ctx context.Context, medicine *Medicine) error
	ListMedicineRecords(ctx context.Context, childID string, filter Filter) ([]MedicineRecord, error)
	LatestMedicineRecord(ctx context.Context, childID string) (*MedicineRecord, error)
	CreateMedicineRecord(ctx context.Context, record *MedicineRecord) error
	DeleteMedicineRecord(ctx context.Context, childID, recordID string) (bool, error)

	// Growth
	ListGrowth(ctx context.Context, childID string, filter Filter) ([]GrowthRecord, error)
	GetGrowth(ctx context.Context, childID, recordID string) (*GrowthRecord, error)
	LatestGrowth(ctx context.Context, childID string) (*GrowthRecord, error)
	CreateGrowth(ctx context.Context, record *GrowthRecord) error
	UpdateGrowth(ctx context.Context, record *GrowthRecord) error
	DeleteGrowth(ctx context.Context, childID, recordID string) (bool, error)

	// Temperature
	ListTemperatures(ctx context.Context, childID string, filter Filter) ([]TemperatureRecord, error)
	GetTemperature(ctx context.Context, childID, recordID string) (*TemperatureRecord, error)
	LatestTemperature(ctx context.Context, childID string) (*TemperatureRecord, error)
	CreateTemperature(ctx context.Context, record *TemperatureRecord) error
	UpdateTemperature(ctx context.Context, record *TemperatureRecord) error
	DeleteTemperature(ctx context.Context, childID, recordID string) (bool, error)

	// Activity
	ListActivities(ctx context.Context, childID string, filter Filter) ([]ActivityRecord, error)
	GetActivity(ctx context.Context, childID, recordID string) (*ActivityRecord, error)
	OpenActivity(ctx context.Context, childID string, activityType ActivityType) (*ActivityRecord, error)
	ListOpenActivities(ctx context.Context, childID string) ([]ActivityRecord, error)
	LatestCompletedActivity(ctx context.Context, childID string) (*ActivityRecord, error)
	CreateActivity(ctx context.Context, record *ActivityRecord) error
	UpdateActivity(ctx context.Context, record *ActivityRecord) error
	DeleteActivity(ctx context.Context, childID, recordID string) (bool, error)
}
