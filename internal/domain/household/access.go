package household

import (
	"context"
	"errors"
	"strings"
	"time"
)

const defaultMembershipTTL = 30 * time.Second

type Target struct {
	HouseholdID string
	ChildID     string
}

type Membership struct {
	HouseholdID string
	UserID      string
	Role        Role
}

func (m Membership) Require(min Role) error {
	if !m.Role.AtLeast(min) {
		return ErrInsufficientRole
	}
	return nil
}

func (m Membership) CanWrite() bool {
	return m.Role.AtLeast(RoleCaregiver)
}

// Access resolves the acting user's membership for a household, reached either
// directly or through one of its children.
type Access struct {
	repo     Repository
	children ChildLocator
	cache    Cache
	ttl      time.Duration
}

func NewAccess(repo Repository, children ChildLocator) *Access {
	return NewAccessWithCache(repo, children, noopCache{}, 0)
}

func NewAccessWithCache(repo Repository, children ChildLocator, cache Cache, ttl time.Duration) *Access {
	if cache == nil {
		cache = noopCache{}
	}
	if ttl <= 0 {
		ttl = defaultMembershipTTL
	}
	return &Access{
		repo:     repo,
		children: children,
		cache:    cache,
		ttl:      ttl,
	}
}

func (a *Access) Resolve(ctx context.Context, userID string, target Target) (Membership, error) {
	householdID := strings.TrimSpace(target.HouseholdID)
	childID := strings.TrimSpace(target.ChildID)

	if householdID == "" {
		if childID == "" {
			return Membership{}, ErrTargetRequired
		}
		resolved, err := a.children.HouseholdIDForChild(ctx, childID)
		if err != nil {
			return Membership{}, err
		}
		householdID = resolved
	}

	if cached, ok := a.cache.Get(householdID, userID); ok {
		return cached, nil
	}

	member, err := a.repo.GetMember(ctx, householdID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return Membership{}, ErrNotMember
		}
		return Membership{}, err
	}

	membership := Membership{
		HouseholdID: member.HouseholdID,
		UserID:      member.UserID,
		Role:        member.Role,
	}
	a.cache.Set(membership, a.ttl)
	return membership, nil
}

// Authorize resolves the membership and checks it against the minimum role of the action.
func (a *Access) Authorize(ctx context.Context, userID string, target Target, min Role) (Membership, error) {
	membership, err := a.Resolve(ctx, userID, target)
	if err != nil {
		return Membership{}, err
	}
	if err := membership.Require(min); err != nil {
		return Membership{}, err
	}
	return membership, nil
}
