package inmemory

import (
	"sync"
	"time"

	householddomain "baby-tracker-go/internal/domain/household"
)

type InMemoryMembershipCache struct {
	mu    sync.RWMutex
	items map[membershipKey]membershipItem
}

type membershipKey struct {
	householdID string
	userID      string
}

type membershipItem struct {
	value     householddomain.Membership
	expiresAt time.Time
}

func NewInMemoryMembershipCache() *InMemoryMembershipCache {
	return &InMemoryMembershipCache{
		items: make(map[membershipKey]membershipItem),
	}
}

func (c *InMemoryMembershipCache) Get(householdID, userID string) (householddomain.Membership, bool) {
	key := membershipKey{householdID: householdID, userID: userID}
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return householddomain.Membership{}, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[key]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return householddomain.Membership{}, false
	}

	return item.value, true
}

func (c *InMemoryMembershipCache) Set(membership householddomain.Membership, ttl time.Duration) {
	if ttl <= 0 {
		c.Delete(membership.HouseholdID, membership.UserID)
		return
	}

	c.mu.Lock()
	c.items[membershipKey{householdID: membership.HouseholdID, userID: membership.UserID}] = membershipItem{
		value:     membership,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *InMemoryMembershipCache) Delete(householdID, userID string) {
	c.mu.Lock()
	delete(c.items, membershipKey{householdID: householdID, userID: userID})
	c.mu.Unlock()
}

// Clear drops every entry. Used when a whole household disappears.
func (c *InMemoryMembershipCache) Clear() {
	c.mu.Lock()
	c.items = make(map[membershipKey]membershipItem)
	c.mu.Unlock()
}

var _ householddomain.Cache = (*InMemoryMembershipCache)(nil)
