package timeline

import (
	"context"
	"time"

	"baby-tracker-go/internal/domain/household"
	"baby-tracker-go/internal/domain/tracking"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo         tracking.Repository
	dayStartHour int
	location     *time.Location
	now          func() time.Time
}

func NewService(repo tracking.Repository, dayStartHour int, location *time.Location) *Service {
	if dayStartHour < 0 || dayStartHour > 23 {
		dayStartHour = DefaultDayStartHour
	}
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:         repo,
		dayStartHour: dayStartHour,
		location:     location,
		now:          time.Now,
	}
}

func (s *Service) DayStartHour() int {
	return s.dayStartHour
}

func (s *Service) Location() *time.Location {
	return s.location
}

// DayWindow returns the logical day containing t in the configured location.
func (s *Service) DayWindow(t time.Time) Window {
	if t.IsZero() {
		t = s.now()
	}
	return DayBoundaries(t.In(s.location), s.dayStartHour)
}

// FetchWindow loads every category for the window. The eight queries run
// concurrently and the first failure cancels the rest.
func (s *Service) FetchWindow(ctx context.Context, m household.Membership, childID string, window Window) (Records, error) {
	if err := m.Require(household.RoleViewer); err != nil {
		return Records{}, err
	}
	if err := window.Validate(); err != nil {
		return Records{}, err
	}
	return s.fetch(ctx, childID, tracking.Filter{From: &window.Start, To: &window.End})
}

func (s *Service) fetch(ctx context.Context, childID string, filter tracking.Filter) (Records, error) {
	var records Records
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		records.Sleep, err = s.repo.ListSleep(ctx, childID, filter)
		return err
	})
	group.Go(func() (err error) {
		records.Feedings, err = s.repo.ListFeedings(ctx, childID, filter)
		return err
	})
	group.Go(func() (err error) {
		records.Diapers, err = s.repo.ListDiapers(ctx, childID, filter)
		return err
	})
	group.Go(func() (err error) {
		records.Pumping, err = s.repo.ListPumping(ctx, childID, filter)
		return err
	})
	group.Go(func() (err error) {
		records.Medicines, err = s.repo.ListMedicineRecords(ctx, childID, filter)
		return err
	})
	group.Go(func() (err error) {
		records.Growth, err = s.repo.ListGrowth(ctx, childID, filter)
		return err
	})
	group.Go(func() (err error) {
		records.Temperatures, err = s.repo.ListTemperatures(ctx, childID, filter)
		return err
	})
	group.Go(func() (err error) {
		records.Activities, err = s.repo.ListActivities(ctx, childID, filter)
		return err
	})

	if err := group.Wait(); err != nil {
		return Records{}, err
	}
	return records, nil
}

func (s *Service) Day(ctx context.Context, m household.Membership, childID string, t time.Time) (DaySummary, error) {
	window := s.DayWindow(t)
	records, err := s.FetchWindow(ctx, m, childID, window)
	if err != nil {
		return DaySummary{}, err
	}
	return newDaySummary(window, records), nil
}

// Week fetches seven logical days with one query per category and splits the
// result per day.
func (s *Service) Week(ctx context.Context, m household.Membership, childID string, weekStart time.Time) ([]DaySummary, error) {
	if weekStart.IsZero() {
		weekStart = s.now()
	}
	weekStart = weekStart.In(s.location)

	records, err := s.FetchWindow(ctx, m, childID, WeekWindow(weekStart, s.dayStartHour))
	if err != nil {
		return nil, err
	}
	return OrganizeWeek(records, weekStart, s.dayStartHour), nil
}

type ListResult struct {
	Entries []Entry     `json:"entries"`
	Groups  []DateGroup `json:"groups"`
}

func (s *Service) List(ctx context.Context, m household.Membership, childID string, window Window) (ListResult, error) {
	records, err := s.FetchWindow(ctx, m, childID, window)
	if err != nil {
		return ListResult{}, err
	}
	entries := Merge(records)
	return ListResult{Entries: entries, Groups: GroupByDate(entries, s.location)}, nil
}

func (s *Service) Summary(ctx context.Context, m household.Membership, childID string, window Window) (Stats, error) {
	records, err := s.FetchWindow(ctx, m, childID, window)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(records), nil
}

// LastActivity queries the newest record of each category directly instead of
// scanning a window.
func (s *Service) LastActivity(ctx context.Context, m household.Membership, childID string) (Snapshot, error) {
	if err := m.Require(household.RoleViewer); err != nil {
		return Snapshot{}, err
	}

	var snapshot Snapshot
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		record, err := s.repo.LatestCompletedSleep(ctx, childID)
		snapshot.Sleep, err = optional(record, err, tracking.ErrSleepNotFound)
		return err
	})
	group.Go(func() (err error) {
		record, err := s.repo.OpenSleep(ctx, childID)
		snapshot.ActiveSleep, err = optional(record, err, tracking.ErrNoActiveSleep)
		return err
	})
	group.Go(func() (err error) {
		record, err := s.repo.LatestCompletedFeeding(ctx, childID)
		snapshot.Feeding, err = optional(record, err, tracking.ErrFeedingNotFound)
		return err
	})
	group.Go(func() (err error) {
		record, err := s.repo.OpenBreastfeeding(ctx, childID)
		snapshot.ActiveBreastfeeding, err = optional(record, err, tracking.ErrNoActiveBreastfeeding)
		return err
	})
	group.Go(func() (err error) {
		record, err := s.repo.LatestDiaper(ctx, childID)
		snapshot.Diaper, err = optional(record, err, tracking.ErrDiaperNotFound)
		return err
	})
	group.Go(func() (err error) {
		record, err := s.repo.LatestCompletedPumping(ctx, childID)
		snapshot.Pumping, err = optional(record, err, tracking.ErrPumpingNotFound)
		return err
	})
	group.Go(func() (err error) {
		record, err := s.repo.OpenPumping(ctx, childID)
		snapshot.ActivePumping, err = optional(record, err, tracking.ErrNoActivePumping)
		return err
	})
	group.Go(func() (err error) {
		record, err := s.repo.LatestMedicineRecord(ctx, childID)
		snapshot.Medicine, err = optional(record, err, tracking.ErrMedicineRecordNotFound)
		return err
	})
	group.Go(func() (err error) {
		record, err := s.repo.LatestGrowth(ctx, childID)
		snapshot.Growth, err = optional(record, err, tracking.ErrGrowthNotFound)
		return err
	})
	group.Go(func() (err error) {
		record, err := s.repo.LatestTemperature(ctx, childID)
		snapshot.Temperature, err = optional(record, err, tracking.ErrTemperatureNotFound)
		return err
	})
	group.Go(func() (err error) {
		record, err := s.repo.LatestCompletedActivity(ctx, childID)
		snapshot.Activity, err = optional(record, err, tracking.ErrActivityNotFound)
		return err
	})
	group.Go(func() (err error) {
		snapshot.ActiveActivities, err = s.repo.ListOpenActivities(ctx, childID)
		return err
	})

	if err := group.Wait(); err != nil {
		return Snapshot{}, err
	}
	if snapshot.ActiveActivities == nil {
		snapshot.ActiveActivities = []tracking.ActivityRecord{}
	}
	return snapshot, nil
}
