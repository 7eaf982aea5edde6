package household

import (
	"context"
	"errors"
	"testing"
	"time"

	"baby-tracker-go/internal/domain/errs"
)

type fakeChildLocator map[string]string

var errChildMissing = errs.New(errs.KindNotFound, "child not found")

func (f fakeChildLocator) HouseholdIDForChild(ctx context.Context, childID string) (string, error) {
	householdID, ok := f[childID]
	if !ok {
		return "", errChildMissing
	}
	return householdID, nil
}

type recordingCache struct {
	items map[string]Membership
	sets  int
}

func (c *recordingCache) Get(householdID, userID string) (Membership, bool) {
	m, ok := c.items[householdID+"/"+userID]
	return m, ok
}

func (c *recordingCache) Set(m Membership, ttl time.Duration) {
	c.sets++
	c.items[m.HouseholdID+"/"+m.UserID] = m
}

func (c *recordingCache) Delete(householdID, userID string) {
	delete(c.items, householdID+"/"+userID)
}

func (c *recordingCache) Clear() {
	c.items = map[string]Membership{}
}

func TestRoleOrdering(t *testing.T) {
	if !RoleOwner.AtLeast(RoleAdmin) || !RoleAdmin.AtLeast(RoleCaregiver) || !RoleCaregiver.AtLeast(RoleViewer) {
		t.Fatalf("expected OWNER > ADMIN > CAREGIVER > VIEWER")
	}
	if RoleViewer.AtLeast(RoleCaregiver) {
		t.Fatalf("viewer must not satisfy caregiver")
	}
	if Role("").AtLeast(RoleViewer) {
		t.Fatalf("empty role must not satisfy viewer")
	}
}

func TestResolveByHouseholdID(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"user-1": RoleAdmin})
	access := NewAccess(repo, fakeChildLocator{})

	m, err := access.Resolve(context.Background(), "user-1", Target{HouseholdID: "hh-01"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.Role != RoleAdmin || m.HouseholdID != "hh-01" {
		t.Fatalf("unexpected membership %+v", m)
	}
}

func TestResolveByChildID(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"user-1": RoleViewer})
	access := NewAccess(repo, fakeChildLocator{"child-1": "hh-01"})

	m, err := access.Resolve(context.Background(), "user-1", Target{ChildID: "child-1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.HouseholdID != "hh-01" {
		t.Fatalf("expected household hh-01, got %s", m.HouseholdID)
	}

	if _, err := access.Authorize(context.Background(), "user-1", Target{ChildID: "child-1"}, RoleCaregiver); !errors.Is(err, ErrInsufficientRole) {
		t.Fatalf("expected viewer blocked from writes, got %v", err)
	}
}

func TestResolveRejectsNonMember(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"user-1": RoleOwner})
	access := NewAccess(repo, fakeChildLocator{"child-1": "hh-01"})

	_, err := access.Resolve(context.Background(), "stranger", Target{ChildID: "child-1"})
	if !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
	if !errs.IsForbidden(err) {
		t.Fatalf("expected FORBIDDEN kind")
	}
}

func TestResolveUnknownChildAndEmptyTarget(t *testing.T) {
	access := NewAccess(newFakeHouseholdRepo(), fakeChildLocator{})

	if _, err := access.Resolve(context.Background(), "user-1", Target{ChildID: "missing"}); !errors.Is(err, errChildMissing) {
		t.Fatalf("expected child not found, got %v", err)
	}
	if _, err := access.Resolve(context.Background(), "user-1", Target{}); !errors.Is(err, ErrTargetRequired) {
		t.Fatalf("expected ErrTargetRequired, got %v", err)
	}
}

func TestResolveUsesCache(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"user-1": RoleCaregiver})
	cache := &recordingCache{items: map[string]Membership{}}
	access := NewAccessWithCache(repo, fakeChildLocator{}, cache, time.Minute)

	if _, err := access.Resolve(context.Background(), "user-1", Target{HouseholdID: "hh-01"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	delete(repo.members["hh-01"], "user-1")

	m, err := access.Resolve(context.Background(), "user-1", Target{HouseholdID: "hh-01"})
	if err != nil {
		t.Fatalf("expected cached membership, got %v", err)
	}
	if m.Role != RoleCaregiver || cache.sets != 1 {
		t.Fatalf("expected single cache fill, got %+v sets=%d", m, cache.sets)
	}
}

func TestServiceInvalidatesCacheOnRemoval(t *testing.T) {
	repo := newFakeHouseholdRepo()
	repo.seed("hh-01", "Home", map[string]Role{"owner": RoleOwner, "care": RoleCaregiver})
	cache := &recordingCache{items: map[string]Membership{}}
	access := NewAccessWithCache(repo, fakeChildLocator{}, cache, time.Minute)
	svc := NewServiceWithCache(repo, cache)

	if _, err := access.Resolve(context.Background(), "care", Target{HouseholdID: "hh-01"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.RemoveMember(context.Background(), Membership{HouseholdID: "hh-01", UserID: "owner", Role: RoleOwner}, "care"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := access.Resolve(context.Background(), "care", Target{HouseholdID: "hh-01"}); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected removed member to lose access, got %v", err)
	}
}
