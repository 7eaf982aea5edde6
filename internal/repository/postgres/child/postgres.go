package child

import (
	"context"
	"errors"

	domain "baby-tracker-go/internal/domain/child"
	"baby-tracker-go/internal/domain/tracking"
	"gorm.io/gorm"
)

// recordModels are the tables keyed by child_id, removed together with the child.
var recordModels = []any{
	&tracking.SleepRecord{},
	&tracking.FeedingRecord{},
	&tracking.DiaperRecord{},
	&tracking.PumpingRecord{},
	&tracking.MedicineRecord{},
	&tracking.Medicine{},
	&tracking.GrowthRecord{},
	&tracking.TemperatureRecord{},
	&tracking.ActivityRecord{},
}

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetChild(ctx context.Context, childID string) (*domain.Child, error) {
	var child domain.Child
	err := r.db.WithContext(ctx).Where("id = ?", childID).Take(&child).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrChildNotFound
	}
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *PostgresRepository) ListChildren(ctx context.Context, householdID string) ([]domain.Child, error) {
	children := make([]domain.Child, 0)
	if err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("birth_date asc").
		Order("name asc").
		Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

func (r *PostgresRepository) ListChildrenForUser(ctx context.Context, userID string) ([]domain.Child, error) {
	children := make([]domain.Child, 0)
	if err := r.db.WithContext(ctx).
		Table("children").
		Select("children.*").
		Joins("join household_members on household_members.household_id = children.household_id").
		Where("household_members.user_id = ?", userID).
		Order("children.birth_date asc").
		Order("children.name asc").
		Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

func (r *PostgresRepository) CreateChild(ctx context.Context, child *domain.Child) error {
	return r.db.WithContext(ctx).Create(child).Error
}

func (r *PostgresRepository) UpdateChild(ctx context.Context, child *domain.Child) error {
	return r.db.WithContext(ctx).Save(child).Error
}

func (r *PostgresRepository) DeleteChild(ctx context.Context, childID string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteRecords(tx, []string{childID}); err != nil {
			return err
		}
		result := tx.Where("id = ?", childID).Delete(&domain.Child{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// DeleteHouseholdChildren removes every child of a household and their records.
// It runs on the caller's connection so it can join a wider transaction.
func DeleteHouseholdChildren(tx *gorm.DB, householdID string) error {
	var childIDs []string
	if err := tx.Model(&domain.Child{}).Where("household_id = ?", householdID).Pluck("id", &childIDs).Error; err != nil {
		return err
	}
	if len(childIDs) == 0 {
		return nil
	}
	if err := deleteRecords(tx, childIDs); err != nil {
		return err
	}
	return tx.Where("household_id = ?", householdID).Delete(&domain.Child{}).Error
}

func deleteRecords(tx *gorm.DB, childIDs []string) error {
	for _, model := range recordModels {
		if err := tx.Where("child_id IN ?", childIDs).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
