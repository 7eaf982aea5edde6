package tracking

import (
	"context"
	"time"

	"baby-tracker-go/internal/domain/household"
)

type StartActivityInput struct {
	ActivityType ActivityType
	StartTime    *time.Time
	Notes        *string
}

type EndActivityInput struct {
	ActivityType ActivityType
	EndTime      *time.Time
	Notes        *string
}

type LogActivityInput struct {
	ActivityType ActivityType
	StartTime    time.Time
	EndTime      *time.Time
	Notes        *string
}

type UpdateActivityInput struct {
	ActivityType *ActivityType
	StartTime    *time.Time
	EndTime      *time.Time
	Notes        *string
}

// StartActivity opens an activity. Different activity types may run at the same time.
func (s *Service) StartActivity(ctx context.Context, m household.Membership, childID string, input StartActivityInput) (*ActivityRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateActivityType(input.ActivityType); err != nil {
		return nil, err
	}

	record := ActivityRecord{
		ID:           newID(),
		ChildID:      childID,
		ActivityType: input.ActivityType,
		StartTime:    s.at(input.StartTime),
		Notes:        cleanText(input.Notes),
		CreatedBy:    m.UserID,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.OpenActivity(ctx, childID, input.ActivityType); err == nil {
			return ErrActivityInProgress
		} else if !absent(err, ErrNoActiveActivity) {
			return err
		}
		return tx.CreateActivity(ctx, &record)
	})
	if err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryActivity, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) EndActivity(ctx context.Context, m household.Membership, childID string, input EndActivityInput) (*ActivityRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateActivityType(input.ActivityType); err != nil {
		return nil, err
	}

	record, err := s.repo.OpenActivity(ctx, childID, input.ActivityType)
	if err != nil {
		return nil, err
	}

	end := s.at(input.EndTime)
	if err := validateInterval(record.StartTime, &end); err != nil {
		return nil, err
	}
	record.EndTime = &end
	if notes := cleanText(input.Notes); notes != nil {
		record.Notes = notes
	}

	if err := s.repo.UpdateActivity(ctx, record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryActivity, ActionUpdated, record.ID, record)
	return record, nil
}

// LogActivity records an activity after the fact. A nil end time logs an instant activity.
func (s *Service) LogActivity(ctx context.Context, m household.Membership, childID string, input LogActivityInput) (*ActivityRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if err := validateActivityType(input.ActivityType); err != nil {
		return nil, err
	}

	start := instant(input.StartTime)
	end := start
	if input.EndTime != nil {
		end = instant(*input.EndTime)
	}
	if err := validateInterval(start, &end); err != nil {
		return nil, err
	}

	record := ActivityRecord{
		ID:           newID(),
		ChildID:      childID,
		ActivityType: input.ActivityType,
		StartTime:    start,
		EndTime:      &end,
		Notes:        cleanText(input.Notes),
		CreatedBy:    m.UserID,
	}
	if err := s.repo.CreateActivity(ctx, &record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryActivity, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) UpdateActivity(ctx context.Context, m household.Membership, childID, recordID string, input UpdateActivityInput) (*ActivityRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}

	record, err := s.repo.GetActivity(ctx, childID, recordID)
	if err != nil {
		return nil, err
	}
	if input.ActivityType != nil {
		if err := validateActivityType(*input.ActivityType); err != nil {
			return nil, err
		}
		record.ActivityType = *input.ActivityType
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
	if input.Notes != nil {
		record.Notes = cleanText(input.Notes)
	}
	record.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateActivity(ctx, record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryActivity, ActionUpdated, record.ID, record)
	return record, nil
}

func (s *Service) DeleteActivity(ctx context.Context, m household.Membership, childID, recordID string) error {
	if err := canWrite(m); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteActivity(ctx, childID, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrActivityNotFound
	}

	s.publish(m, childID, CategoryActivity, ActionDeleted, recordID, nil)
	return nil
}

func (s *Service) ActiveActivities(ctx context.Context, m household.Membership, childID string) ([]ActivityRecord, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	return s.repo.ListOpenActivities(ctx, childID)
}

func (s *Service) ListActivities(ctx context.Context, m household.Membership, childID string, filter Filter) ([]ActivityRecord, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	return s.repo.ListActivities(ctx, childID, normalizeFilter(filter))
}
