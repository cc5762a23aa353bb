package models

import "time"

// Certificate is an operator-owned credential entry, listed newest issue date
// first.
type Certificate struct {
	ID               uint       `json:"id" db:"id" gorm:"primaryKey"`
	Title            string     `json:"title" db:"title" gorm:"type:text;not null"`
	Slug             string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description      string     `json:"description" db:"description" gorm:"type:text;not null"`
	CertificateImage *string    `json:"certificate_image,omitempty" db:"certificate_image" gorm:"type:text"`
	IssuedBy         string     `json:"issued_by" db:"issued_by" gorm:"type:text;not null"`
	IssueDate        time.Time  `json:"issue_date" db:"issue_date" gorm:"not null"`
	ExpirationDate   *time.Time `json:"expiration_date,omitempty" db:"expiration_date"`
	URL              *string    `json:"url,omitempty" db:"url" gorm:"type:text"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}
