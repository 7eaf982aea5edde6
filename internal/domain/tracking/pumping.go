package tracking

import (
	"context"
	"time"

	"baby-tracker-go/internal/domain/household"
)

type StartPumpingInput struct {
	StartTime *time.Time
	Side      *Side
}

type EndPumpingInput struct {
	EndTime  *time.Time
	AmountMl *float64
	Notes    *string
}

type LogPumpingInput struct {
	StartTime time.Time
	EndTime   time.Time
	AmountMl  *float64
	Side      *Side
	Notes     *string
}

type UpdatePumpingInput struct {
	StartTime *time.Time
	EndTime   *time.Time
	AmountMl  *float64
	Side      *Side
	Notes     *string
}

func (s *Service) StartPumping(ctx context.Context, m household.Membership, childID string, input StartPumpingInput) (*PumpingRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateOptionalSide(input.Side); err != nil {
		return nil, err
	}

	record := PumpingRecord{
		ID:        newID(),
		ChildID:   childID,
		StartTime: s.at(input.StartTime),
		Side:      input.Side,
		CreatedBy: m.UserID,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.OpenPumping(ctx, childID); err == nil {
			return ErrPumpingInProgress
		} else if !absent(err, ErrNoActivePumping) {
			return err
		}
		return tx.CreatePumping(ctx, &record)
	})
	if err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryPumping, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) EndPumping(ctx context.Context, m household.Membership, childID string, input EndPumpingInput) (*PumpingRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateAmount("amountMl", input.AmountMl); err != nil {
		return nil, err
	}

	record, err := s.repo.OpenPumping(ctx, childID)
	if err != nil {
		return nil, err
	}

	end := s.at(input.EndTime)
	if err := validateInterval(record.StartTime, &end); err != nil {
		return nil, err
	}
	record.EndTime = &end
	if input.AmountMl != nil {
		record.AmountMl = input.AmountMl
	}
	if notes := cleanText(input.Notes); notes != nil {
		record.Notes = notes
	}

	if err := s.repo.UpdatePumping(ctx, record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryPumping, ActionUpdated, record.ID, record)
	return record, nil
}

func (s *Service) LogPumping(ctx context.Context, m household.Membership, childID string, input LogPumpingInput) (*PumpingRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if input.EndTime.IsZero() {
		return nil, ErrEndTimeRequired
	}
	start, end := instant(input.StartTime), instant(input.EndTime)
	if err := validateInterval(start, &end); err != nil {
		return nil, err
	}
	if err := validateAmount("amountMl", input.AmountMl); err != nil {
		return nil, err
	}
	if err := validateOptionalSide(input.Side); err != nil {
		return nil, err
	}

	record := PumpingRecord{
		ID:        newID(),
		ChildID:   childID,
		StartTime: start,
		EndTime:   &end,
		AmountMl:  input.AmountMl,
		Side:      input.Side,
		Notes:     cleanText(input.Notes),
		CreatedBy: m.UserID,
	}
	if err := s.repo.CreatePumping(ctx, &record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryPumping, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) UpdatePumping(ctx context.Context, m household.Membership, childID, recordID string, input UpdatePumpingInput) (*PumpingRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateAmount("amountMl", input.AmountMl); err != nil {
		return nil, err
	}
	if err := validateOptionalSide(input.Side); err != nil {
		return nil, err
	}

	record, err := s.repo.GetPumping(ctx, childID, recordID)
	if err != nil {
		return nil, err
	}
	if input.StartTime != nil {
		record.StartTime = instant(*input.StartTime)
	}
	if input.EndTime != nil {
		record.EndTime = instantPtr(input.EndTime)
	}
	if err := validateInterval(record.StartTime, record.EndTime); err != nil {
		return nil, err
	}
	if input.AmountMl != nil {
		record.AmountMl = input.AmountMl
	}
	if input.Side != nil {
		record.Side = input.Side
	}
	if input.Notes != nil {
		record.Notes = cleanText(input.Notes)
	}
	record.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdatePumping(ctx, record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryPumping, ActionUpdated, record.ID, record)
	return record, nil
}

func (s *Service) DeletePumping(ctx context.Context, m household.Membership, childID, recordID string) error {
	if err := canWrite(m); err != nil {
		return err
	}
	deleted, err := s.repo.DeletePumping(ctx, childID, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPumpingNotFound
	}

	s.publish(m, childID, CategoryPumping, ActionDeleted, recordID, nil)
	return nil
}

func (s *Service) ActivePumping(ctx context.Context, m household.Membership, childID string) (*PumpingRecord, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	record, err := s.repo.OpenPumping(ctx, childID)
	if absent(err, ErrNoActivePumping) {
		return nil, nil
	}
	return record, err
}

func (s *Service) ListPumping(ctx context.Context, m household.Membership, childID string, filter Filter) ([]PumpingRecord, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	return s.repo.ListPumping(ctx, childID, normalizeFilter(filter))
}
