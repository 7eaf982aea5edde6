package household

import "time"

type Role string

const (
	RoleOwner     Role = "OWNER"
	RoleAdmin     Role = "ADMIN"
	RoleCaregiver Role = "CAREGIVER"
	RoleViewer    Role = "VIEWER"
)

var roleRank = map[Role]int{
	RoleOwner:     4,
	RoleAdmin:     3,
	RoleCaregiver: 2,
	RoleViewer:    1,
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants every privilege of min.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min] && r.Valid()
}

func ParseRole(value string) (Role, bool) {
	role := Role(value)
	return role, role.Valid()
}

type Household struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	InviteCode string    `gorm:"size:6;not null;uniqueIndex" json:"inviteCode"`
	CreatedBy  string    `gorm:"not null;index" json:"createdBy"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type Member struct {
	HouseholdID string    `gorm:"type:uuid;primaryKey" json:"householdId"`
	UserID      string    `gorm:"primaryKey;index" json:"userId"`
	Role        Role      `gorm:"type:varchar(16);not null" json:"role"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (Member) TableName() string {
	return "household_members"
}

type HouseholdWithRole struct {
	Household
	Role Role `json:"role"`
}

type MemberProfile struct {
	UserID      string    `json:"userId"`
	Role        Role      `json:"role"`
	JoinedAt    time.Time `json:"joinedAt"`
	Email       *string   `json:"email,omitempty"`
	DisplayName *string   `json:"displayName,omitempty"`
	AvatarURL   *string   `json:"avatarUrl,omitempty"`
}
