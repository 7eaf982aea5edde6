package child

import "time"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type Child struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdID string    `gorm:"type:uuid;index;not null" json:"householdId"`
	Name        string    `gorm:"not null" json:"name"`
	BirthDate   time.Time `gorm:"type:date;not null" json:"birthDate"`
	Gender      *Gender   `gorm:"type:varchar(16)" json:"gender,omitempty"`
	Notes       *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy   string    `gorm:"not null" json:"createdBy"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type CreateChildInput struct {
	Name      string
	BirthDate time.Time
	Gender    *Gender
	Notes     *string
}

// UpdateChildInput carries optional fields; nil leaves the stored value unchanged.
type UpdateChildInput struct {
	Name      *string
	BirthDate *time.Time
	Gender    *Gender
	Notes     *string
}
