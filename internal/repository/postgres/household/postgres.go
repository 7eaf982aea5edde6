package household

import (
	"context"
	"errors"
	"time"

	domain "baby-tracker-go/internal/domain/household"
	childrepo "baby-tracker-go/internal/repository/postgres/child"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetHousehold(ctx context.Context, householdID string) (*domain.Household, error) {
	var household domain.Household
	err := r.db.WithContext(ctx).Where("id = ?", householdID).Take(&household).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrHouseholdNotFound
	}
	if err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *PostgresRepository) GetHouseholdByCode(ctx context.Context, code string) (*domain.Household, error) {
	var household domain.Household
	err := r.db.WithContext(ctx).Where("invite_code = ?", code).Take(&household).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrInviteCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *PostgresRepository) ListHouseholdsByUser(ctx context.Context, userID string) ([]domain.HouseholdWithRole, error) {
	type householdRow struct {
		domain.Household
		Role domain.Role `gorm:"column:role"`
	}

	var rows []householdRow
	if err := r.db.WithContext(ctx).
		Table("households").
		Select("households.*, household_members.role").
		Joins("join household_members on household_members.household_id = households.id").
		Where("household_members.user_id = ?", userID).
		Order("households.created_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]domain.HouseholdWithRole, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.HouseholdWithRole{Household: row.Household, Role: row.Role})
	}
	return result, nil
}

func (r *PostgresRepository) GetMember(ctx context.Context, householdID, userID string) (*domain.Member, error) {
	var member domain.Member
	err := r.db.WithContext(ctx).Where("household_id = ? AND user_id = ?", householdID, userID).Take(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, householdID string) ([]domain.MemberProfile, error) {
	type memberRow struct {
		UserID      string      `gorm:"column:user_id"`
		Role        domain.Role `gorm:"column:role"`
		JoinedAt    time.Time   `gorm:"column:joined_at"`
		Email       *string     `gorm:"column:email"`
		DisplayName *string     `gorm:"column:display_name"`
		AvatarURL   *string     `gorm:"column:avatar_url"`
	}

	var rows []memberRow
	if err := r.db.WithContext(ctx).
		Table("household_members").
		Select("household_members.user_id, household_members.role, household_members.joined_at, user_profiles.email, user_profiles.display_name, user_profiles.avatar_url").
		Joins("left join user_profiles on user_profiles.user_id = household_members.user_id").
		Where("household_members.household_id = ?", householdID).
		Order("household_members.joined_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]domain.MemberProfile, 0, len(rows))
	for _, row := range rows {
		members = append(members, domain.MemberProfile{
			UserID:      row.UserID,
			Role:        row.Role,
			JoinedAt:    row.JoinedAt,
			Email:       row.Email,
			DisplayName: row.DisplayName,
			AvatarURL:   row.AvatarURL,
		})
	}
	return members, nil
}

func (r *PostgresRepository) CreateHousehold(ctx context.Context, household *domain.Household) error {
	return r.db.WithContext(ctx).Create(household).Error
}

func (r *PostgresRepository) AddMember(ctx context.Context, member *domain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) UpdateHouseholdName(ctx context.Context, householdID, name string) error {
	return r.db.WithContext(ctx).Model(&domain.Household{}).Where("id = ?", householdID).Update("name", name).Error
}

func (r *PostgresRepository) UpdateInviteCode(ctx context.Context, householdID, code string) error {
	return r.db.WithContext(ctx).Model(&domain.Household{}).Where("id = ?", householdID).Update("invite_code", code).Error
}

func (r *PostgresRepository) UpdateMemberRole(ctx context.Context, householdID, userID string, role domain.Role) error {
	return r.db.WithContext(ctx).Model(&domain.Member{}).
		Where("household_id = ? AND user_id = ?", householdID, userID).
		Update("role", role).Error
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, householdID, userID string) error {
	return r.db.WithContext(ctx).Delete(&domain.Member{}, "household_id = ? AND user_id = ?", householdID, userID).Error
}

func (r *PostgresRepository) DeleteHousehold(ctx context.Context, householdID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := childrepo.DeleteHouseholdChildren(tx, householdID); err != nil {
			return err
		}
		if err := tx.Where("household_id = ?", householdID).Delete(&domain.Member{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", householdID).Delete(&domain.Household{}).Error
	})
}

func (r *PostgresRepository) CountMembers(ctx context.Context, householdID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Member{}).Where("household_id = ?", householdID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Household{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
