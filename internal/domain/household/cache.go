package household

import "time"

type Cache interface {
	Get(householdID, userID string) (Membership, bool)
	Set(membership Membership, ttl time.Duration)
	Delete(householdID, userID string)
	Clear()
}

type noopCache struct{}

func (noopCache) Get(string, string) (Membership, bool) {
	return Membership{}, false
}

func (noopCache) Set(Membership, time.Duration) {}

func (noopCache) Delete(string, string) {}

func (noopCache) Clear() {}
