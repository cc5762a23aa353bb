package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is an operator-owned portfolio entry. Projects have no author field;
// creation and mutation are restricted to staff at the API layer.
type Project struct {
	ID            uint                        `json:"id" db:"id" gorm:"primaryKey"`
	Title         string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug          string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description   string                      `json:"description" db:"description" gorm:"type:text;not null"`
	ProjectImage  *string                     `json:"project_image,omitempty" db:"project_image" gorm:"type:text"`
	Technologies  datatypes.JSONSlice[string] `json:"technologies" db:"technologies"`
	GithubLink    *string                     `json:"github_link,omitempty" db:"github_link" gorm:"type:text"`
	LiveDemo      *string                     `json:"live_demo,omitempty" db:"live_demo" gorm:"type:text"`
	Category      string                      `json:"category" db:"category" gorm:"type:text;not null;default:'other'"`
	IsDraft       bool                        `json:"is_draft" db:"is_draft" gorm:"not null;default:true"`
	CreatedAt     time.Time                   `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time                   `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
	PublishedDate *time.Time                  `json:"published_date" db:"published_date"`
}

// BeforeSave applies the project publish rule: the published date is set once,
// on the first transition out of draft, and never cleared afterwards. This is
// intentionally asymmetric with Article.BeforeSave.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	if !p.IsDraft && p.PublishedDate == nil {
		now := time.Now().UTC()
		p.PublishedDate = &now
	}
	return nil
}
