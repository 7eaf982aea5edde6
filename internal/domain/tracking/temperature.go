package tracking

import (
	"context"
	"time"

	"baby-tracker-go/internal/domain/household"
)

type LogTemperatureInput struct {
	Time               *time.Time
	TemperatureCelsius float64
	Notes              *string
}

type UpdateTemperatureInput struct {
	Time               *time.Time
	TemperatureCelsius *float64
	Notes              *string
}

func (s *Service) LogTemperature(ctx context.Context, m household.Membership, childID string, input LogTemperatureInput) (*TemperatureRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateTemperature(input.TemperatureCelsius); err != nil {
		return nil, err
	}

	record := TemperatureRecord{
		ID:                 newID(),
		ChildID:            childID,
		Time:               s.at(input.Time),
		TemperatureCelsius: input.TemperatureCelsius,
		Notes:              cleanText(input.Notes),
		CreatedBy:          m.UserID,
	}
	if err := s.repo.CreateTemperature(ctx, &record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryTemperature, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) UpdateTemperature(ctx context.Context, m household.Membership, childID, recordID string, input UpdateTemperatureInput) (*TemperatureRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}

	record, err := s.repo.GetTemperature(ctx, childID, recordID)
	if err != nil {
		return nil, err
	}
	if input.Time != nil {
		record.Time = instant(*input.Time)
	}
	if input.TemperatureCelsius != nil {
		if err := validateTemperature(*input.TemperatureCelsius); err != nil {
			return nil, err
		}
		record.TemperatureCelsius = *input.TemperatureCelsius
	}
	if input.Notes != nil {
		record.Notes = cleanText(input.Notes)
	}
	record.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateTemperature(ctx, record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryTemperature, ActionUpdated, record.ID, record)
	return record, nil
}

func (s *Service) DeleteTemperature(ctx context.Context, m household.Membership, childID, recordID string) error {
	if err := canWrite(m); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteTemperature(ctx, childID, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTemperatureNotFound
	}

	s.publish(m, childID, CategoryTemperature, ActionDeleted, recordID, nil)
	return nil
}

func (s *Service) ListTemperatures(ctx context.Context, m household.Membership, childID string, filter Filter) ([]TemperatureRecord, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	return s.repo.ListTemperatures(ctx, childID, normalizeFilter(filter))
}
