package models

import (
	"time"

	"gorm.io/gorm"
)

// Article is an authored blog entry. The author link is nullable: when the
// author account is removed the article survives with a NULL author.
type Article struct {
	ID            uint       `json:"id" db:"id" gorm:"primaryKey"`
	Title         string     `json:"title" db:"title" gorm:"type:text;not null"`
	Slug          string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Content       string     `json:"content" db:"content" gorm:"type:text;not null"`
	ArticleImage  *string    `json:"article_image,omitempty" db:"article_image" gorm:"type:text"`
	AuthorID      *uint      `json:"author_id,omitempty" db:"author_id" gorm:"index"`
	Author        *User      `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:SET NULL"`
	Category      string     `json:"category" db:"category" gorm:"type:text;not null;default:'other'"`
	IsDraft       bool       `json:"is_draft" db:"is_draft" gorm:"not null;default:true"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
	PublishedDate *time.Time `json:"published_date" db:"published_date"`
}

// BeforeSave applies the article publish rule: saving as draft clears the
// published date unconditionally; saving as published sets it if unset. The
// inverse of Project.BeforeSave, preserved as a distinct behavior.
func (a *Article) BeforeSave(tx *gorm.DB) error {
	if a.IsDraft {
		a.PublishedDate = nil
	} else if a.PublishedDate == nil {
		now := time.Now().UTC()
		a.PublishedDate = &now
	}
	return nil
}
