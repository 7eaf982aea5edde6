package household

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"baby-tracker-go/internal/domain/errs"
	"github.com/google/uuid"
)

const (
	inviteCodeLength   = 6
	inviteCodeAttempts = 10
)

type Service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, noopCache{})
}

// NewServiceWithCache shares the membership cache with Access so role changes take effect immediately.
func NewServiceWithCache(repo Repository, cache Cache) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{repo: repo, cache: cache}
}

func (s *Service) CreateHousehold(ctx context.Context, userID, name string) (*Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.BadRequestf("name is required")
	}

	var result Household
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		code, err := generateUniqueCode(ctx, tx)
		if err != nil {
			return err
		}

		household := Household{
			ID:         uuid.NewString(),
			Name:       name,
			InviteCode: code,
			CreatedBy:  userID,
		}
		if err := tx.CreateHousehold(ctx, &household); err != nil {
			return err
		}

		member := Member{
			HouseholdID: household.ID,
			UserID:      userID,
			Role:        RoleOwner,
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			return err
		}

		result = household
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) ListHouseholds(ctx context.Context, userID string) ([]HouseholdWithRole, error) {
	return s.repo.ListHouseholdsByUser(ctx, userID)
}

func (s *Service) GetHousehold(ctx context.Context, m Membership) (*Household, error) {
	if err := m.Require(RoleViewer); err != nil {
		return nil, err
	}
	return s.repo.GetHousehold(ctx, m.HouseholdID)
}

func (s *Service) UpdateHousehold(ctx context.Context, m Membership, name string) (*Household, error) {
	if err := m.Require(RoleAdmin); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.BadRequestf("name is required")
	}

	household, err := s.repo.GetHousehold(ctx, m.HouseholdID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateHouseholdName(ctx, household.ID, name); err != nil {
		return nil, err
	}

	household.Name = name
	return household, nil
}

// DeleteHousehold requires the owner to type the household name as confirmation.
func (s *Service) DeleteHousehold(ctx context.Context, m Membership, confirmation string) error {
	if err := m.Require(RoleOwner); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		household, err := tx.GetHousehold(ctx, m.HouseholdID)
		if err != nil {
			return err
		}
		if strings.TrimSpace(confirmation) != household.Name {
			return ErrConfirmationMismatch
		}
		return tx.DeleteHousehold(ctx, household.ID)
	})
	if err != nil {
		return err
	}

	s.cache.Clear()
	return nil
}

func (s *Service) JoinHousehold(ctx context.Context, userID, code string) (*Household, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errs.BadRequestf("code is required")
	}

	var result Household
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		household, err := tx.GetHouseholdByCode(ctx, code)
		if err != nil {
			return err
		}

		if _, err := tx.GetMember(ctx, household.ID, userID); err == nil {
			return ErrAlreadyMember
		} else if !errs.IsNotFound(err) {
			return err
		}

		member := Member{
			HouseholdID: household.ID,
			UserID:      userID,
			Role:        RoleCaregiver,
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			return err
		}

		result = *household
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) RegenerateInviteCode(ctx context.Context, m Membership) (string, error) {
	if err := m.Require(RoleAdmin); err != nil {
		return "", err
	}

	var code string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		generated, err := generateUniqueCode(ctx, tx)
		if err != nil {
			return err
		}
		code = generated
		return tx.UpdateInviteCode(ctx, m.HouseholdID, code)
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *Service) ListMembers(ctx context.Context, m Membership) ([]MemberProfile, error) {
	if err := m.Require(RoleViewer); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, m.HouseholdID)
}

// UpdateMemberRole is owner-only. Promoting someone to OWNER hands over ownership
// and demotes the acting owner to ADMIN.
func (s *Service) UpdateMemberRole(ctx context.Context, m Membership, targetUserID string, role Role) error {
	if err := m.Require(RoleOwner); err != nil {
		return err
	}
	if !role.Valid() {
		return ErrInvalidRole
	}
	if targetUserID == m.UserID {
		return ErrCannotChangeOwnRole
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetMember(ctx, m.HouseholdID, targetUserID); err != nil {
			return err
		}
		if err := tx.UpdateMemberRole(ctx, m.HouseholdID, targetUserID, role); err != nil {
			return err
		}
		if role == RoleOwner {
			return tx.UpdateMemberRole(ctx, m.HouseholdID, m.UserID, RoleAdmin)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Delete(m.HouseholdID, targetUserID)
	s.cache.Delete(m.HouseholdID, m.UserID)
	return nil
}

func (s *Service) RemoveMember(ctx context.Context, m Membership, targetUserID string) error {
	if err := m.Require(RoleAdmin); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		target, err := tx.GetMember(ctx, m.HouseholdID, targetUserID)
		if err != nil {
			return err
		}
		if target.Role == RoleOwner {
			return ErrCannotRemoveOwner
		}
		if target.Role == RoleAdmin && m.Role != RoleOwner {
			return ErrInsufficientRole
		}
		return tx.DeleteMember(ctx, m.HouseholdID, targetUserID)
	})
	if err != nil {
		return err
	}

	s.cache.Delete(m.HouseholdID, targetUserID)
	return nil
}

// LeaveHousehold removes the acting member. A sole owner leaving deletes the household.
func (s *Service) LeaveHousehold(ctx context.Context, m Membership) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if m.Role == RoleOwner {
			count, err := tx.CountMembers(ctx, m.HouseholdID)
			if err != nil {
				return err
			}
			if count > 1 {
				return ErrOwnerMustTransfer
			}
			return tx.DeleteHousehold(ctx, m.HouseholdID)
		}
		return tx.DeleteMember(ctx, m.HouseholdID, m.UserID)
	})
	if err != nil {
		return err
	}

	s.cache.Delete(m.HouseholdID, m.UserID)
	return nil
}

func generateUniqueCode(ctx context.Context, repo Repository) (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := generateCode(inviteCodeLength)
		if err != nil {
			return "", err
		}

		taken, err := repo.IsCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGenerationFailed
}

func generateCode(length int) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	max := big.NewInt(int64(len(alphabet)))

	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[n.Int64()])
	}

	return builder.String(), nil
}
