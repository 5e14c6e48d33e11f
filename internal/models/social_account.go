package models

import (
	"time"
)

// SocialAccount stores a user's linked TikTok account and the OAuth tokens the
// view fetcher uses on their behalf.
type SocialAccount struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	UserId       string     `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	Platform     string     `gorm:"column:platform;size:20;not null" json:"platform"`
	PlatformId   string     `gorm:"column:platform_id;size:100" json:"platform_id"`
	Username     string     `gorm:"column:username;size:100" json:"username"`
	AccessToken  string     `gorm:"column:access_token;type:text" json:"-"`
	RefreshToken string     `gorm:"column:refresh_token;type:text" json:"-"`
	ExpiresAt    *time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
