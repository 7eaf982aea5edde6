package tracking

import (
	"errors"
	"time"

	"baby-tracker-go/internal/domain/household"
	"github.com/google/uuid"
)

type Service struct {
	repo      Repository
	publisher Publisher
	now       func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithPublisher(repo, nil)
}

// NewServiceWithPublisher announces every successful mutation to publisher.
func NewServiceWithPublisher(repo Repository, publisher Publisher) *Service {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher, now: time.Now}
}

// Repository exposes the underlying store for read-side aggregation.
func (s *Service) Repository() Repository {
	return s.repo
}

func (s *Service) publish(m household.Membership, childID string, category Category, action Action, recordID string, record any) {
	s.publisher.Publish(Event{
		ChildID:  childID,
		Category: category,
		Action:   action,
		RecordID: recordID,
		ActorID:  m.UserID,
		At:       s.now().UTC(),
		Record:   record,
	})
}

// at resolves an optional client-provided instant, defaulting to now.
func (s *Service) at(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return instant(s.now())
	}
	return instant(*t)
}

func canRead(m household.Membership) error {
	return m.Require(household.RoleViewer)
}

func canWrite(m household.Membership) error {
	return m.Require(household.RoleCaregiver)
}

func newID() string {
	return uuid.NewString()
}

// absent reports whether err is the given "nothing open" sentinel.
func absent(err, sentinel error) bool {
	return errors.Is(err, sentinel)
}

func normalizeFilter(filter Filter) Filter {
	if filter.From != nil {
		from := instant(*filter.From)
		filter.From = &from
	}
	if filter.To != nil {
		to := instant(*filter.To)
		filter.To = &to
	}
	return filter
}
