package tracking

import (
	"context"
	"time"

	"baby-tracker-go/internal/domain/household"
)

type LogGrowthInput struct {
	Date                *time.Time
	WeightKg            *float64
	HeightCm            *float64
	HeadCircumferenceCm *float64
	Notes               *string
}

type UpdateGrowthInput LogGrowthInput

func (s *Service) LogGrowth(ctx context.Context, m household.Membership, childID string, input LogGrowthInput) (*GrowthRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if input.WeightKg == nil && input.HeightCm == nil && input.HeadCircumferenceCm == nil {
		return nil, ErrMeasurementRequired
	}
	if err := validateMeasurements(input.WeightKg, input.HeightCm, input.HeadCircumferenceCm); err != nil {
		return nil, err
	}

	record := GrowthRecord{
		ID:                  newID(),
		ChildID:             childID,
		Date:                s.at(input.Date),
		WeightKg:            input.WeightKg,
		HeightCm:            input.HeightCm,
		HeadCircumferenceCm: input.HeadCircumferenceCm,
		Notes:               cleanText(input.Notes),
		CreatedBy:           m.UserID,
	}
	if err := s.repo.CreateGrowth(ctx, &record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryGrowth, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) UpdateGrowth(ctx context.Context, m household.Membership, childID, recordID string, input UpdateGrowthInput) (*GrowthRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateMeasurements(input.WeightKg, input.HeightCm, input.HeadCircumferenceCm); err != nil {
		return nil, err
	}

	record, err := s.repo.GetGrowth(ctx, childID, recordID)
	if err != nil {
		return nil, err
	}
	if input.Date != nil {
		record.Date = instant(*input.Date)
	}
	if input.WeightKg != nil {
		record.WeightKg = input.WeightKg
	}
	if input.HeightCm != nil {
		record.HeightCm = input.HeightCm
	}
	if input.HeadCircumferenceCm != nil {
		record.HeadCircumferenceCm = input.HeadCircumferenceCm
	}
	if input.Notes != nil {
		record.Notes = cleanText(input.Notes)
	}
	record.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateGrowth(ctx, record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryGrowth, ActionUpdated, record.ID, record)
	return record, nil
}

func (s *Service) DeleteGrowth(ctx context.Context, m household.Membership, childID, recordID string) error {
	if err := canWrite(m); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteGrowth(ctx, childID, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGrowthNotFound
	}

	s.publish(m, childID, CategoryGrowth, ActionDeleted, recordID, nil)
	return nil
}

func (s *Service) ListGrowth(ctx context.Context, m household.Membership, childID string, filter Filter) ([]GrowthRecord, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	return s.repo.ListGrowth(ctx, childID, normalizeFilter(filter))
}

func validateMeasurements(weight, height, head *float64) error {
	if err := validateAmount("weightKg", weight); err != nil {
		return err
	}
	if err := validateAmount("heightCm", height); err != nil {
		return err
	}
	return validateAmount("headCircumferenceCm", head)
}
