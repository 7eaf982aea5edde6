package child

import (
	"context"
	"strings"
	"time"

	"baby-tracker-go/internal/domain/household"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// HouseholdIDForChild lets household access checks resolve a child-only target.
func (s *Service) HouseholdIDForChild(ctx context.Context, childID string) (string, error) {
	child, err := s.repo.GetChild(ctx, childID)
	if err != nil {
		return "", err
	}
	return child.HouseholdID, nil
}

func (s *Service) CreateChild(ctx context.Context, m household.Membership, input CreateChildInput) (*Child, error) {
	if err := m.Require(household.RoleCaregiver); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := s.validateBirthDate(input.BirthDate); err != nil {
		return nil, err
	}
	if input.Gender != nil && !input.Gender.Valid() {
		return nil, ErrInvalidGender
	}

	child := Child{
		ID:          uuid.NewString(),
		HouseholdID: m.HouseholdID,
		Name:        name,
		BirthDate:   dateOnly(input.BirthDate),
		Gender:      input.Gender,
		Notes:       trimOptional(input.Notes),
		CreatedBy:   m.UserID,
	}
	if err := s.repo.CreateChild(ctx, &child); err != nil {
		return nil, err
	}

	return &child, nil
}

func (s *Service) GetChild(ctx context.Context, m household.Membership, childID string) (*Child, error) {
	if err := m.Require(household.RoleViewer); err != nil {
		return nil, err
	}
	return s.getScoped(ctx, m, childID)
}

func (s *Service) ListChildren(ctx context.Context, m household.Membership) ([]Child, error) {
	if err := m.Require(household.RoleViewer); err != nil {
		return nil, err
	}
	return s.repo.ListChildren(ctx, m.HouseholdID)
}

// ListChildrenForUser returns every child across all households the user belongs to.
func (s *Service) ListChildrenForUser(ctx context.Context, userID string) ([]Child, error) {
	return s.repo.ListChildrenForUser(ctx, userID)
}

func (s *Service) UpdateChild(ctx context.Context, m household.Membership, childID string, input UpdateChildInput) (*Child, error) {
	if err := m.Require(household.RoleCaregiver); err != nil {
		return nil, err
	}

	child, err := s.getScoped(ctx, m, childID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		child.Name = name
	}
	if input.BirthDate != nil {
		if err := s.validateBirthDate(*input.BirthDate); err != nil {
			return nil, err
		}
		child.BirthDate = dateOnly(*input.BirthDate)
	}
	if input.Gender != nil {
		if !input.Gender.Valid() {
			return nil, ErrInvalidGender
		}
		child.Gender = input.Gender
	}
	if input.Notes != nil {
		child.Notes = trimOptional(input.Notes)
	}
	child.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateChild(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *Service) DeleteChild(ctx context.Context, m household.Membership, childID string) error {
	if err := m.Require(household.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.getScoped(ctx, m, childID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteChild(ctx, childID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrChildNotFound
	}
	return nil
}

// Age reports the child's current age.
func (s *Service) Age(child *Child) Age {
	return AgeAt(child.BirthDate, s.now())
}

func (s *Service) getScoped(ctx context.Context, m household.Membership, childID string) (*Child, error) {
	child, err := s.repo.GetChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child.HouseholdID != m.HouseholdID {
		return nil, ErrChildNotFound
	}
	return child, nil
}

func (s *Service) validateBirthDate(birth time.Time) error {
	if birth.IsZero() {
		return ErrBirthDateRequired
	}
	if dateOnly(birth).After(dateOnly(s.now())) {
		return ErrBirthInFuture
	}
	return nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
