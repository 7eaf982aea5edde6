package household

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetHousehold(ctx context.Context, householdID string) (*Household, error)
	GetHouseholdByCode(ctx context.Context, code string) (*Household, error)
	ListHouseholdsByUser(ctx context.Context, userID string) ([]HouseholdWithRole, error)
	GetMember(ctx context.Context, householdID, userID string) (*Member, error)
	ListMembers(ctx context.Context, householdID string) ([]MemberProfile, error)
	CreateHousehold(ctx context.Context, household *Household) error
	AddMember(ctx context.Context, member *Member) error
	UpdateHouseholdName(ctx context.Context, householdID, name string) error
	UpdateInviteCode(ctx context.Context, householdID, code string) error
	UpdateMemberRole(ctx context.Context, householdID, userID string, role Role) error
	DeleteMember(ctx context.Context, householdID, userID string) error
	// DeleteHousehold removes the household with its members, children and their records.
	DeleteHousehold(ctx context.Context, householdID string) error
	CountMembers(ctx context.Context, householdID string) (int64, error)
	IsCodeTaken(ctx context.Context, code string) (bool, error)
}

// ChildLocator resolves the household that owns a child.
type ChildLocator interface {
	HouseholdIDForChild(ctx context.Context, childID string) (string, error)
}
