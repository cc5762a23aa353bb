package models

import "time"

// ProviderGoogle is the only third-party identity provider currently wired.
const ProviderGoogle = "google"

// SocialAccount links a local user to a third-party identity. At most one
// account per (user, provider) pair.
type SocialAccount struct {
	ID           uint       `json:"id" db:"id" gorm:"primaryKey"`
	UserID       uint       `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_social_user_provider"`
	Provider     string     `json:"provider" db:"provider" gorm:"type:text;not null;uniqueIndex:idx_social_user_provider"`
	ProviderUID  string     `json:"provider_uid" db:"provider_uid" gorm:"type:text;not null"`
	Picture      string     `json:"picture,omitempty" db:"picture" gorm:"type:text;not null;default:''"`
	AccessToken  string     `json:"-" db:"access_token" gorm:"type:text;not null;default:''"`
	RefreshToken string     `json:"-" db:"refresh_token" gorm:"type:text;not null;default:''"`
	TokenExpiry  *time.Time `json:"-" db:"token_expiry"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}
