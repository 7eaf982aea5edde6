package tracking

import (
	"context"
	"strings"
	"time"

	"baby-tracker-go/internal/domain/errs"
	"baby-tracker-go/internal/domain/household"
)

type StartBreastfeedingInput struct {
	Side      Side
	StartTime *time.Time
}

type SwitchSideInput struct {
	At *time.Time
}

type EndBreastfeedingInput struct {
	EndTime *time.Time
	Notes   *string
}

type LogBreastfeedingInput struct {
	StartTime    time.Time
	LeftSeconds  int
	RightSeconds int
	Notes        *string
}

type LogBottleInput struct {
	Time        *time.Time
	AmountMl    float64
	ContentType *BottleContent
	Notes       *string
}

type LogSolidsInput struct {
	Time      *time.Time
	FoodItems []string
	Notes     *string
}

type UpdateFeedingInput struct {
	StartTime         *time.Time
	EndTime           *time.Time
	Side              *Side
	LeftSeconds       *int
	RightSeconds      *int
	AmountMl          *float64
	BottleContentType *BottleContent
	FoodItems         []string
	Notes             *string
}

func (s *Service) StartBreastfeeding(ctx context.Context, m household.Membership, childID string, input StartBreastfeedingInput) (*FeedingRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if !input.Side.Valid() {
		return nil, errs.BadRequestf("side must be LEFT, RIGHT or BOTH")
	}

	side := input.Side
	record := FeedingRecord{
		ID:                   newID(),
		ChildID:              childID,
		FeedingType:          FeedingBreast,
		StartTime:            s.at(input.StartTime),
		Side:                 &side,
		LeftDurationSeconds:  intPtr(0),
		RightDurationSeconds: intPtr(0),
		CreatedBy:            m.UserID,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.OpenBreastfeeding(ctx, childID); err == nil {
			return ErrBreastfeedingInProgress
		} else if !absent(err, ErrNoActiveBreastfeeding) {
			return err
		}
		return tx.CreateFeeding(ctx, &record)
	})
	if err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryFeeding, ActionCreated, record.ID, record)
	return &record, nil
}

// SwitchBreastSide credits the time since the last switch to the current side
// and continues the session on the other one.
func (s *Service) SwitchBreastSide(ctx context.Context, m household.Membership, childID string, input SwitchSideInput) (*FeedingRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}

	var record *FeedingRecord
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		open, err := tx.OpenBreastfeeding(ctx, childID)
		if err != nil {
			return err
		}
		if open.Side == nil || *open.Side == SideBoth {
			return ErrSwitchRequiresSingleSide
		}

		at := s.at(input.At)
		if at.Before(open.StartTime) {
			return ErrEndBeforeStart
		}
		seen := open.BreastState()
		accumulateSegment(open, at)

		next := SideLeft
		if *open.Side == SideLeft {
			next = SideRight
		}
		open.Side = &next

		record = open
		return tx.UpdateOpenFeeding(ctx, open, seen)
	})
	if err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryFeeding, ActionUpdated, record.ID, record)
	return record, nil
}

func (s *Service) EndBreastfeeding(ctx context.Context, m household.Membership, childID string, input EndBreastfeedingInput) (*FeedingRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}

	var record *FeedingRecord
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		open, err := tx.OpenBreastfeeding(ctx, childID)
		if err != nil {
			return err
		}

		end := s.at(input.EndTime)
		if err := validateInterval(open.StartTime, &end); err != nil {
			return err
		}
		seen := open.BreastState()
		accumulateSegment(open, end)
		open.EndTime = &end

		left, right := open.BreastSeconds()
		if left > 0 && right > 0 {
			both := SideBoth
			open.Side = &both
		}
		if notes := cleanText(input.Notes); notes != nil {
			open.Notes = notes
		}

		record = open
		return tx.UpdateOpenFeeding(ctx, open, seen)
	})
	if err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryFeeding, ActionUpdated, record.ID, record)
	return record, nil
}

// accumulateSegment credits at - start - (left + right) to the side currently in use.
func accumulateSegment(record *FeedingRecord, at time.Time) {
	left, right := record.BreastSeconds()
	segment := int(at.Sub(record.StartTime).Seconds()) - left - right
	if segment < 0 {
		segment = 0
	}

	side := SideBoth
	if record.Side != nil {
		side = *record.Side
	}
	switch side {
	case SideLeft:
		left += segment
	case SideRight:
		right += segment
	default:
		left += segment - segment/2
		right += segment / 2
	}

	record.LeftDurationSeconds = intPtr(left)
	record.RightDurationSeconds = intPtr(right)
}

// LogBreastfeeding records a finished session from per-side totals.
func (s *Service) LogBreastfeeding(ctx context.Context, m household.Membership, childID string, input LogBreastfeedingInput) (*FeedingRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if input.StartTime.IsZero() {
		return nil, errs.BadRequestf("start time is required")
	}
	if input.LeftSeconds < 0 || input.RightSeconds < 0 {
		return nil, errs.BadRequestf("durations must not be negative")
	}
	if input.LeftSeconds+input.RightSeconds == 0 {
		return nil, errs.BadRequestf("at least one side duration is required")
	}

	start := instant(input.StartTime)
	end := start.Add(time.Duration(input.LeftSeconds+input.RightSeconds) * time.Second)
	side := SideBoth
	switch {
	case input.RightSeconds == 0:
		side = SideLeft
	case input.LeftSeconds == 0:
		side = SideRight
	}

	record := FeedingRecord{
		ID:                   newID(),
		ChildID:              childID,
		FeedingType:          FeedingBreast,
		StartTime:            start,
		EndTime:              &end,
		Side:                 &side,
		LeftDurationSeconds:  intPtr(input.LeftSeconds),
		RightDurationSeconds: intPtr(input.RightSeconds),
		Notes:                cleanText(input.Notes),
		CreatedBy:            m.UserID,
	}
	if err := s.repo.CreateFeeding(ctx, &record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryFeeding, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) LogBottle(ctx context.Context, m household.Membership, childID string, input LogBottleInput) (*FeedingRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	if input.AmountMl <= 0 {
		return nil, errs.BadRequestf("amountMl must be positive")
	}
	if input.ContentType != nil && !input.ContentType.Valid() {
		return nil, errs.BadRequestf("unknown bottle content type %q", *input.ContentType)
	}

	at := s.at(input.Time)
	amount := input.AmountMl
	record := FeedingRecord{
		ID:                newID(),
		ChildID:           childID,
		FeedingType:       FeedingBottle,
		StartTime:         at,
		EndTime:           &at,
		AmountMl:          &amount,
		BottleContentType: input.ContentType,
		Notes:             cleanText(input.Notes),
		CreatedBy:         m.UserID,
	}
	if err := s.repo.CreateFeeding(ctx, &record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryFeeding, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) LogSolids(ctx context.Context, m household.Membership, childID string, input LogSolidsInput) (*FeedingRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}
	items := cleanItems(input.FoodItems)
	if len(items) == 0 {
		return nil, ErrFoodItemsRequired
	}

	at := s.at(input.Time)
	record := FeedingRecord{
		ID:          newID(),
		ChildID:     childID,
		FeedingType: FeedingSolids,
		StartTime:   at,
		EndTime:     &at,
		FoodItems:   items,
		Notes:       cleanText(input.Notes),
		CreatedBy:   m.UserID,
	}
	if err := s.repo.CreateFeeding(ctx, &record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryFeeding, ActionCreated, record.ID, record)
	return &record, nil
}

func (s *Service) UpdateFeeding(ctx context.Context, m household.Membership, childID, recordID string, input UpdateFeedingInput) (*FeedingRecord, error) {
	if err := canWrite(m); err != nil {
		return nil, err
	}

	record, err := s.repo.GetFeeding(ctx, childID, recordID)
	if err != nil {
		return nil, err
	}

	if input.StartTime != nil {
		record.StartTime = instant(*input.StartTime)
		if record.FeedingType != FeedingBreast {
			point := record.StartTime
			record.EndTime = &point
		}
	}
	if input.EndTime != nil && record.FeedingType == FeedingBreast {
		record.EndTime = instantPtr(input.EndTime)
	}
	if err := validateInterval(record.StartTime, record.EndTime); err != nil {
		return nil, err
	}
	if err := validateOptionalSide(input.Side); err != nil {
		return nil, err
	}
	if input.Side != nil {
		record.Side = input.Side
	}
	if input.LeftSeconds != nil {
		if *input.LeftSeconds < 0 {
			return nil, errs.BadRequestf("durations must not be negative")
		}
		record.LeftDurationSeconds = input.LeftSeconds
	}
	if input.RightSeconds != nil {
		if *input.RightSeconds < 0 {
			return nil, errs.BadRequestf("durations must not be negative")
		}
		record.RightDurationSeconds = input.RightSeconds
	}
	if err := validateAmount("amountMl", input.AmountMl); err != nil {
		return nil, err
	}
	if input.AmountMl != nil {
		record.AmountMl = input.AmountMl
	}
	if input.BottleContentType != nil {
		if !input.BottleContentType.Valid() {
			return nil, errs.BadRequestf("unknown bottle content type %q", *input.BottleContentType)
		}
		record.BottleContentType = input.BottleContentType
	}
	if input.FoodItems != nil {
		record.FoodItems = cleanItems(input.FoodItems)
	}
	if input.Notes != nil {
		record.Notes = cleanText(input.Notes)
	}
	record.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateFeeding(ctx, record); err != nil {
		return nil, err
	}

	s.publish(m, childID, CategoryFeeding, ActionUpdated, record.ID, record)
	return record, nil
}

func (s *Service) DeleteFeeding(ctx context.Context, m household.Membership, childID, recordID string) error {
	if err := canWrite(m); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteFeeding(ctx, childID, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrFeedingNotFound
	}

	s.publish(m, childID, CategoryFeeding, ActionDeleted, recordID, nil)
	return nil
}

func (s *Service) ActiveBreastfeeding(ctx context.Context, m household.Membership, childID string) (*FeedingRecord, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	record, err := s.repo.OpenBreastfeeding(ctx, childID)
	if absent(err, ErrNoActiveBreastfeeding) {
		return nil, nil
	}
	return record, err
}

func (s *Service) ListFeedings(ctx context.Context, m household.Membership, childID string, filter Filter) ([]FeedingRecord, error) {
	if err := canRead(m); err != nil {
		return nil, err
	}
	return s.repo.ListFeedings(ctx, childID, normalizeFilter(filter))
}

func cleanItems(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
