package tracking

import (
	"context"

	domain "baby-tracker-go/internal/domain/tracking"
	"gorm.io/gorm"
)

// Sleep

func (r *PostgresRepository) ListSleep(ctx context.Context, childID string, filter domain.Filter) ([]domain.SleepRecord, error) {
	return list[domain.SleepRecord](ctx, r.db, childID, intervalColumns, filter)
}

func (r *PostgresRepository) GetSleep(ctx context.Context, childID, recordID string) (*domain.SleepRecord, error) {
	return get[domain.SleepRecord](ctx, r.db, childID, recordID, domain.ErrSleepNotFound)
}

func (r *PostgresRepository) OpenSleep(ctx context.Context, childID string) (*domain.SleepRecord, error) {
	return latest[domain.SleepRecord](ctx, r.db, "start_time", domain.ErrNoActiveSleep, forChild(childID), running)
}

func (r *PostgresRepository) LatestCompletedSleep(ctx context.Context, childID string) (*domain.SleepRecord, error) {
	return latest[domain.SleepRecord](ctx, r.db, "end_time", domain.ErrSleepNotFound, forChild(childID), completed)
}

func (r *PostgresRepository) CreateSleep(ctx context.Context, record *domain.SleepRecord) error {
	return create(ctx, r.db, record, domain.ErrSleepInProgress)
}

func (r *PostgresRepository) UpdateSleep(ctx context.Context, record *domain.SleepRecord) error {
	return update(ctx, r.db, record, domain.ErrSleepInProgress)
}

func (r *PostgresRepository) DeleteSleep(ctx context.Context, childID, recordID string) (bool, error) {
	return remove[domain.SleepRecord](ctx, r.db, childID, recordID)
}

// Feeding

func (r *PostgresRepository) ListFeedings(ctx context.Context, childID string, filter domain.Filter) ([]domain.FeedingRecord, error) {
	return list[domain.FeedingRecord](ctx, r.db, childID, intervalColumns, filter)
}

func (r *PostgresRepository) GetFeeding(ctx context.Context, childID, recordID string) (*domain.FeedingRecord, error) {
	return get[domain.FeedingRecord](ctx, r.db, childID, recordID, domain.ErrFeedingNotFound)
}

func (r *PostgresRepository) OpenBreastfeeding(ctx context.Context, childID string) (*domain.FeedingRecord, error) {
	breast := func(q *gorm.DB) *gorm.DB {
		return q.Where("feeding_type = ?", domain.FeedingBreast)
	}
	return latest[domain.FeedingRecord](ctx, r.db, "start_time", domain.ErrNoActiveBreastfeeding, forChild(childID), running, breast)
}

func (r *PostgresRepository) LatestCompletedFeeding(ctx context.Context, childID string) (*domain.FeedingRecord, error) {
	return latest[domain.FeedingRecord](ctx, r.db, "start_time", domain.ErrFeedingNotFound, forChild(childID), completed)
}

func (r *PostgresRepository) CreateFeeding(ctx context.Context, record *domain.FeedingRecord) error {
	return create(ctx, r.db, record, domain.ErrBreastfeedingInProgress)
}

func (r *PostgresRepository) UpdateFeeding(ctx context.Context, record *domain.FeedingRecord) error {
	return update(ctx, r.db, record, domain.ErrBreastfeedingInProgress)
}

func (r *PostgresRepository) UpdateOpenFeeding(ctx context.Context, record *domain.FeedingRecord, seen domain.BreastState) error {
	result := r.db.WithContext(ctx).
		Model(&domain.FeedingRecord{}).
		Where("id = ? AND child_id = ? AND end_time IS NULL", record.ID, record.ChildID).
		Where("COALESCE(side, '') = ?", string(seen.Side)).
		Where("COALESCE(left_duration_seconds, 0) = ? AND COALESCE(right_duration_seconds, 0) = ?", seen.LeftSeconds, seen.RightSeconds).
		Updates(map[string]any{
			"side":                   record.Side,
			"left_duration_seconds":  record.LeftDurationSeconds,
			"right_duration_seconds": record.RightDurationSeconds,
			"end_time":               record.EndTime,
			"notes":                  record.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBreastfeedingChanged
	}
	return nil
}

func (r *PostgresRepository) DeleteFeeding(ctx context.Context, childID, recordID string) (bool, error) {
	return remove[domain.FeedingRecord](ctx, r.db, childID, recordID)
}

// Diaper

func (r *PostgresRepository) ListDiapers(ctx context.Context, childID string, filter domain.Filter) ([]domain.DiaperRecord, error) {
	return list[domain.DiaperRecord](ctx, r.db, childID, occurredColumns, filter)
}

func (r *PostgresRepository) GetDiaper(ctx context.Context, childID, recordID string) (*domain.DiaperRecord, error) {
	return get[domain.DiaperRecord](ctx, r.db, childID, recordID, domain.ErrDiaperNotFound)
}

func (r *PostgresRepository) LatestDiaper(ctx context.Context, childID string) (*domain.DiaperRecord, error) {
	return latest[domain.DiaperRecord](ctx, r.db, "occurred_at", domain.ErrDiaperNotFound, forChild(childID))
}

func (r *PostgresRepository) CreateDiaper(ctx context.Context, record *domain.DiaperRecord) error {
	return create(ctx, r.db, record, nil)
}

func (r *PostgresRepository) UpdateDiaper(ctx context.Context, record *domain.DiaperRecord) error {
	return update(ctx, r.db, record, nil)
}

func (r *PostgresRepository) DeleteDiaper(ctx context.Context, childID, recordID string) (bool, error) {
	return remove[domain.DiaperRecord](ctx, r.db, childID, recordID)
}

// Pumping

func (r *PostgresRepository) ListPumping(ctx context.Context, childID string, filter domain.Filter) ([]domain.PumpingRecord, error) {
	return list[domain.PumpingRecord](ctx, r.db, childID, intervalColumns, filter)
}

func (r *PostgresRepository) GetPumping(ctx context.Context, childID, recordID string) (*domain.PumpingRecord, error) {
	return get[domain.PumpingRecord](ctx, r.db, childID, recordID, domain.ErrPumpingNotFound)
}

func (r *PostgresRepository) OpenPumping(ctx context.Context, childID string) (*domain.PumpingRecord, error) {
	return latest[domain.PumpingRecord](ctx, r.db, "start_time", domain.ErrNoActivePumping, forChild(childID), running)
}

func (r *PostgresRepository) LatestCompletedPumping(ctx context.Context, childID string) (*domain.PumpingRecord, error) {
	return latest[domain.PumpingRecord](ctx, r.db, "end_time", domain.ErrPumpingNotFound, forChild(childID), completed)
}

func (r *PostgresRepository) CreatePumping(ctx context.Context, record *domain.PumpingRecord) error {
	return create(ctx, r.db, record, domain.ErrPumpingInProgress)
}

func (r *PostgresRepository) UpdatePumping(ctx context.Context, record *domain.PumpingRecord) error {
	return update(ctx, r.db, record, domain.ErrPumpingInProgress)
}

func (r *PostgresRepository) DeletePumping(ctx context.Context, childID, recordID string) (bool, error) {
	return remove[domain.PumpingRecord](ctx, r.db, childID, recordID)
}

// Growth

func (r *PostgresRepository) ListGrowth(ctx context.Context, childID string, filter domain.Filter) ([]domain.GrowthRecord, error) {
	return list[domain.GrowthRecord](ctx, r.db, childID, measuredColumns, filter)
}

func (r *PostgresRepository) GetGrowth(ctx context.Context, childID, recordID string) (*domain.GrowthRecord, error) {
	return get[domain.GrowthRecord](ctx, r.db, childID, recordID, domain.ErrGrowthNotFound)
}

func (r *PostgresRepository) LatestGrowth(ctx context.Context, childID string) (*domain.GrowthRecord, error) {
	return latest[domain.GrowthRecord](ctx, r.db, "measured_at", domain.ErrGrowthNotFound, forChild(childID))
}

func (r *PostgresRepository) CreateGrowth(ctx context.Context, record *domain.GrowthRecord) error {
	return create(ctx, r.db, record, nil)
}

func (r *PostgresRepository) UpdateGrowth(ctx context.Context, record *domain.GrowthRecord) error {
	return update(ctx, r.db, record, nil)
}

func (r *PostgresRepository) DeleteGrowth(ctx context.Context, childID, recordID string) (bool, error) {
	return remove[domain.GrowthRecord](ctx, r.db, childID, recordID)
}

// Temperature

func (r *PostgresRepository) ListTemperatures(ctx context.Context, childID string, filter domain.Filter) ([]domain.TemperatureRecord, error) {
	return list[domain.TemperatureRecord](ctx, r.db, childID, occurredColumns, filter)
}

func (r *PostgresRepository) GetTemperature(ctx context.Context, childID, recordID string) (*domain.TemperatureRecord, error) {
	return get[domain.TemperatureRecord](ctx, r.db, childID, recordID, domain.ErrTemperatureNotFound)
}

func (r *PostgresRepository) LatestTemperature(ctx context.Context, childID string) (*domain.TemperatureRecord, error) {
	return latest[domain.TemperatureRecord](ctx, r.db, "occurred_at", domain.ErrTemperatureNotFound, forChild(childID))
}

func (r *PostgresRepository) CreateTemperature(ctx context.Context, record *domain.TemperatureRecord) error {
	return create(ctx, r.db, record, nil)
}

func (r *PostgresRepository) UpdateTemperature(ctx context.Context, record *domain.TemperatureRecord) error {
	return update(ctx, r.db, record, nil)
}

func (r *PostgresRepository) DeleteTemperature(ctx context.Context, childID, recordID string) (bool, error) {
	return remove[domain.TemperatureRecord](ctx, r.db, childID, recordID)
}

// Activity

func (r *PostgresRepository) ListActivities(ctx context.Context, childID string, filter domain.Filter) ([]domain.ActivityRecord, error) {
	return list[domain.ActivityRecord](ctx, r.db, childID, intervalColumns, filter)
}

func (r *PostgresRepository) GetActivity(ctx context.Context, childID, recordID string) (*domain.ActivityRecord, error) {
	return get[domain.ActivityRecord](ctx, r.db, childID, recordID, domain.ErrActivityNotFound)
}

func (r *PostgresRepository) OpenActivity(ctx context.Context, childID string, activityType domain.ActivityType) (*domain.ActivityRecord, error) {
	ofType := func(q *gorm.DB) *gorm.DB {
		return q.Where("activity_type = ?", activityType)
	}
	return latest[domain.ActivityRecord](ctx, r.db, "start_time", domain.ErrNoActiveActivity, forChild(childID), running, ofType)
}

func (r *PostgresRepository) ListOpenActivities(ctx context.Context, childID string) ([]domain.ActivityRecord, error) {
	records := make([]domain.ActivityRecord, 0)
	if err := r.db.WithContext(ctx).
		Where("child_id = ? AND end_time IS NULL", childID).
		Order("start_time desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) LatestCompletedActivity(ctx context.Context, childID string) (*domain.ActivityRecord, error) {
	return latest[domain.ActivityRecord](ctx, r.db, "end_time", domain.ErrActivityNotFound, forChild(childID), completed)
}

func (r *PostgresRepository) CreateActivity(ctx context.Context, record *domain.ActivityRecord) error {
	return create(ctx, r.db, record, domain.ErrActivityInProgress)
}

func (r *PostgresRepository) UpdateActivity(ctx context.Context, record *domain.ActivityRecord) error {
	return update(ctx, r.db, record, domain.ErrActivityInProgress)
}

func (r *PostgresRepository) DeleteActivity(ctx context.Context, childID, recordID string) (bool, error) {
	return remove[domain.ActivityRecord](ctx, r.db, childID, recordID)
}
