package tracking

import (
	"context"
	"time"

	"baby-tracker-go/internal/domain/household"
)

type StartSleepInput struct {
	SleepType SleepType
	StartTime *time.Time
	Notes     *string
}

type EndSleepInput struct {
	EndTime *time.Time
	Quality *int
	Notes   *string
}

type LogSleepInput struct {
	SleepType SleepType
	StartTime time.Time
	EndTime   time.Time
	Quality   *int
	Notes     *string
}

type UpdateSleepInput struct {
	SleepType *SleepType
	StartTime *time.Time
	EndTime   *time.Time
	Quality   *int
	Notes     *string
}

// StartSleep opens a session. Only one session per child may be open.
func (s *Service) StartSleep(ctx context.Context, m household.Membership, childID string, input StartSleepInput) (*SleepRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateSleepType(input.SleepType); err != nil {
		return nil, err
	}

	record := SleepRecord{
		ID:        newID(),
		ChildID:   childID,
		StartTime: s.at(input.StartTime),
		SleepType: input.SleepType,
		Notes:     cleanText(input.Notes),
		CreatedBy: m.UserID,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.OpenSleep(ctx, childID); err == nil {
			return ErrSleepInProgress
		} else if !absent(err, ErrNoActiveSleep) {
			return err
		}
		return tx.CreateSleep(ctx, &record)
	})
	if err != nil {
		return nil, err
	}

	s.publish(m, childID, CategorySleep, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) EndSleep(ctx context.Context, m household.Membership, childID string, input EndSleepInput) (*SleepRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateQuality(input.Quality); err != nil {
		return nil, err
	}

	record, err := s.repo.OpenSleep(ctx, childID)
	if err != nil {
		return nil, err
	}

	end := s.at(input.EndTime)
	if err := validateInterval(record.StartTime, &end); err != nil {
		return nil, err
	}
	record.EndTime = &end
	if input.Quality != nil {
		record.Quality = input.Quality
	}
	if notes := cleanText(input.Notes); notes != nil {
		record.Notes = notes
	}

	if err := s.repo.UpdateSleep(ctx, record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategorySleep, ActionUpdated, record.ID, record)
	return record, nil
}

// LogSleep records a session that has already finished.
func (s *Service) LogSleep(ctx context.Context, m household.Membership, childID string, input LogSleepInput) (*SleepRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateSleepType(input.SleepType); err != nil {
		return nil, err
	}
	if input.EndTime.IsZero() {
		return nil, ErrEndTimeRequired
	}
	start, end := instant(input.StartTime), instant(input.EndTime)
	if err := validateInterval(start, &end); err != nil {
		return nil, err
	}
	if err := validateQuality(input.Quality); err != nil {
		return nil, err
	}

	record := SleepRecord{
		ID:        newID(),
		ChildID:   childID,
		StartTime: start,
		EndTime:   &end,
		SleepType: input.SleepType,
		Quality:   input.Quality,
		Notes:     cleanText(input.Notes),
		CreatedBy: m.UserID,
	}
	if err := s.repo.CreateSleep(ctx, &record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategorySleep, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) UpdateSleep(ctx context.Context, m household.Membership, childID, recordID string, input UpdateSleepInput) (*SleepRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}

	record, err := s.repo.GetSleep(ctx, childID, recordID)
	if err != nil {
		return nil, err
	}

	if input.SleepType != nil {
		if err := validateSleepType(*input.SleepType); err != nil {
			return nil, err
		}
		record.SleepType = *input.SleepType
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
	if input.Quality != nil {
		if err := validateQuality(input.Quality); err != nil {
			return nil, err
		}
		record.Quality = input.Quality
	}
	if input.Notes != nil {
		record.Notes = cleanText(input.Notes)
	}
	record.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateSleep(ctx, record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategorySleep, ActionUpdated, record.ID, record)
	return record, nil
}

func (s *Service) DeleteSleep(ctx context.Context, m household.Membership, childID, recordID string) error {
	if err := canWrite(m); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteSleep(ctx, childID, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSleepNotFound
	}

	s.publish(m, childID, CategorySleep, ActionDeleted, recordID, nil)
	return nil
}

// ActiveSleep returns the open session, or nil when the child is awake.
func (s *Service) ActiveSleep(ctx context.Context, m household.Membership, childID string) (*SleepRecord, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	record, err := s.repo.OpenSleep(ctx, childID)
	if absent(err, ErrNoActiveSleep) {
		return nil, nil
	}
	return record, err
}

func (s *Service) ListSleep(ctx context.Context, m household.Membership, childID string, filter Filter) ([]SleepRecord, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	return s.repo.ListSleep(ctx, childID, normalizeFilter(filter))
}
