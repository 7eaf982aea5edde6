package inmemory

import (
	"testing"
	"time"

	householddomain "baby-tracker-go/internal/domain/household"
)

func TestMembershipCacheRoundTrip(t *testing.T) {
	cache := NewInMemoryMembershipCache()
	membership := householddomain.Membership{HouseholdID: "h1", UserID: "u1", Role: householddomain.RoleAdmin}

	cache.Set(membership, time.Minute)

	got, ok := cache.Get("h1", "u1")
	if !ok || got != membership {
		t.Fatalf("expected cached membership, got %+v %v", got, ok)
	}
	if _, ok := cache.Get("h1", "u2"); ok {
		t.Fatalf("expected miss for other user")
	}

	cache.Delete("h1", "u1")
	if _, ok := cache.Get("h1", "u1"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestMembershipCacheExpires(t *testing.T) {
	cache := NewInMemoryMembershipCache()
	membership := householddomain.Membership{HouseholdID: "h1", UserID: "u1", Role: householddomain.RoleViewer}

	cache.Set(membership, time.Nanosecond)
	time.Sleep(time.Millisecond)

	if _, ok := cache.Get("h1", "u1"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if len(cache.items) != 0 {
		t.Fatalf("expected expired entry to be evicted")
	}
}

func TestMembershipCacheNonPositiveTTLDeletes(t *testing.T) {
	cache := NewInMemoryMembershipCache()
	membership := householddomain.Membership{HouseholdID: "h1", UserID: "u1", Role: householddomain.RoleOwner}

	cache.Set(membership, time.Minute)
	cache.Set(membership, 0)

	if _, ok := cache.Get("h1", "u1"); ok {
		t.Fatalf("expected entry to be removed")
	}

	cache.Set(membership, time.Minute)
	cache.Clear()
	if _, ok := cache.Get("h1", "u1"); ok {
		t.Fatalf("expected entry to be cleared")
	}
}
