package user

import "time"

type Profile struct {
	UserID      string    `gorm:"type:uuid;primaryKey" json:"userId"`
	Email       *string   `gorm:"type:text" json:"email,omitempty"`
	DisplayName *string   `gorm:"type:text" json:"displayName,omitempty"`
	AvatarURL   *string   `gorm:"type:text" json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Profile) TableName() string {
	return "user_profiles"
}

type UpdateProfileInput struct {
	DisplayName *string
	AvatarURL   *string
}
