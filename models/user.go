package models

import (
	"strings"
	"time"
)

// User is a local account. PasswordHash is nil for accounts that only ever
// authenticated through Google.
type User struct {
	ID             uint       `json:"id" db:"id" gorm:"primaryKey"`
	Username       string     `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	Email          string     `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash   *string    `json:"-" db:"password_hash" gorm:"type:text"`
	FirstName      string     `json:"first_name" db:"first_name" gorm:"type:text;not null;default:''"`
	LastName       string     `json:"last_name" db:"last_name" gorm:"type:text;not null;default:''"`
	ProfilePicture *string    `json:"profile_picture,omitempty" db:"profile_picture" gorm:"type:text"`
	IsStaff        bool       `json:"is_staff" db:"is_staff" gorm:"not null;default:false"`
	IsSuperuser    bool       `json:"is_superuser" db:"is_superuser" gorm:"not null;default:false"`
	IsActive       bool       `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	DateJoined     time.Time  `json:"date_joined" db:"date_joined" gorm:"autoCreateTime"`
	LastLogin      *time.Time `json:"last_login,omitempty" db:"last_login"`

	SocialAccounts []SocialAccount `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// FullName joins first and last name, trimming when either is empty.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsStaffOrSuperuser reports whether the user may manage operator-owned
// content (projects, certificates).
func (u User) IsStaffOrSuperuser() bool {
	return u.IsStaff || u.IsSuperuser
}

// GooglePicture returns the picture URL of the linked Google account, if any.
// SocialAccounts must have been preloaded.
func (u User) GooglePicture() *string {
	for _, account := range u.SocialAccounts {
		if account.Provider == ProviderGoogle && account.Picture != "" {
			picture := account.Picture
			return &picture
		}
	}
	return nil
}
