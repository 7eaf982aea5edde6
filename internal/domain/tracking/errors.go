package tracking

import "baby-tracker-go/internal/domain/errs"

var (
	ErrSleepNotFound          = errs.New(errs.KindNotFound, "sleep record not found")
	ErrFeedingNotFound        = errs.New(errs.KindNotFound, "feeding record not found")
	ErrDiaperNotFound         = errs.New(errs.KindNotFound, "diaper record not found")
	ErrPumpingNotFound        = errs.New(errs.KindNotFound, "pumping record not found")
	ErrMedicineNotFound       = errs.New(errs.KindNotFound, "medicine not found")
	ErrMedicineRecordNotFound = errs.New(errs.KindNotFound, "medicine record not found")
	ErrGrowthNotFound         = errs.New(errs.KindNotFound, "growth record not found")
	ErrTemperatureNotFound    = errs.New(errs.KindNotFound, "temperature record not found")
	ErrActivityNotFound       = errs.New(errs.KindNotFound, "activity record not found")

	ErrNoActiveSleep         = errs.New(errs.KindNotFound, "no active sleep session")
	ErrNoActiveBreastfeeding = errs.New(errs.KindNotFound, "no active breastfeeding session")
	ErrNoActivePumping       = errs.New(errs.KindNotFound, "no active pumping session")
	ErrNoActiveActivity      = errs.New(errs.KindNotFound, "no active activity of this type")

	ErrSleepInProgress          = errs.New(errs.KindConflict, "a sleep session is already in progress")
	ErrBreastfeedingInProgress  = errs.New(errs.KindConflict, "a breastfeeding session is already in progress")
	ErrPumpingInProgress        = errs.New(errs.KindConflict, "a pumping session is already in progress")
	ErrActivityInProgress       = errs.New(errs.KindConflict, "an activity of this type is already in progress")
	ErrBreastfeedingChanged     = errs.New(errs.KindConflict, "breastfeeding session changed, try again")
	ErrMedicineInactive         = errs.New(errs.KindBadRequest, "medicine is not active")
	ErrEndTimeRequired          = errs.New(errs.KindBadRequest, "end time is required")
	ErrEndBeforeStart           = errs.New(errs.KindBadRequest, "end time must not be before start time")
	ErrMeasurementRequired      = errs.New(errs.KindBadRequest, "at least one measurement is required")
	ErrFoodItemsRequired        = errs.New(errs.KindBadRequest, "at least one food item is required")
	ErrSwitchRequiresSingleSide = errs.New(errs.KindBadRequest, "side switching requires a LEFT or RIGHT session")
)
