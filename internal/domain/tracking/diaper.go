package tracking

import (
	"context"
	"time"

	"baby-tracker-go/internal/domain/errs"
	"baby-tracker-go/internal/domain/household"
)

type LogDiaperInput struct {
	Time        *time.Time
	DiaperType  DiaperType
	Color       *string
	Consistency *string
	Amount      *DiaperAmount
	Notes       *string
}

type UpdateDiaperInput struct {
	Time        *time.Time
	DiaperType  *DiaperType
	Color       *string
	Consistency *string
	Amount      *DiaperAmount
	Notes       *string
}

func (s *Service) LogDiaper(ctx context.Context, m household.Membership, childID string, input LogDiaperInput) (*DiaperRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateDiaper(&input.DiaperType, input.Amount); err != nil {
		return nil, err
	}

	record := DiaperRecord{
		ID:          newID(),
		ChildID:     childID,
		Time:        s.at(input.Time),
		DiaperType:  input.DiaperType,
		Color:       cleanText(input.Color),
		Consistency: cleanText(input.Consistency),
		Amount:      input.Amount,
		Notes:       cleanText(input.Notes),
		CreatedBy:   m.UserID,
	}
	if err := s.repo.CreateDiaper(ctx, &record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryDiaper, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) UpdateDiaper(ctx context.Context, m household.Membership, childID, recordID string, input UpdateDiaperInput) (*DiaperRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateDiaper(input.DiaperType, input.Amount); err != nil {
		return nil, err
	}

	record, err := s.repo.GetDiaper(ctx, childID, recordID)
	if err != nil {
		return nil, err
	}
	if input.Time != nil {
		record.Time = instant(*input.Time)
	}
	if input.DiaperType != nil {
		record.DiaperType = *input.DiaperType
	}
	if input.Color != nil {
		record.Color = cleanText(input.Color)
	}
	if input.Consistency != nil {
		record.Consistency = cleanText(input.Consistency)
	}
	if input.Amount != nil {
		record.Amount = input.Amount
	}
	if input.Notes != nil {
		record.Notes = cleanText(input.Notes)
	}
	record.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateDiaper(ctx, record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryDiaper, ActionUpdated, record.ID, record)
	return record, nil
}

func (s *Service) DeleteDiaper(ctx context.Context, m household.Membership, childID, recordID string) error {
	if err := canWrite(m); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteDiaper(ctx, childID, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrDiaperNotFound
	}

	s.publish(m, childID, CategoryDiaper, ActionDeleted, recordID, nil)
	return nil
}

func (s *Service) ListDiapers(ctx context.Context, m household.Membership, childID string, filter Filter) ([]DiaperRecord, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	return s.repo.ListDiapers(ctx, childID, normalizeFilter(filter))
}

func validateDiaper(diaperType *DiaperType, amount *DiaperAmount) error {
	if diaperType != nil && !diaperType.Valid() {
		return errs.BadRequestf("diaper type must be WET, DIRTY, BOTH or DRY")
	}
	if amount != nil && !amount.Valid() {
		return errs.BadRequestf("amount must be SMALL, MEDIUM or LARGE")
	}
	return nil
}
