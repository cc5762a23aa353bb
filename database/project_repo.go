package database

import (
	"errors"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindPage returns one page of projects ordered by published date descending.
// Drafts carry a NULL published date and sort wherever the backend places
// NULLs; the placement is consistent per backend.
func (r *ProjectRepo) FindPage(offset, limit int) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Order("published_date DESC").Offset(offset).Limit(limit).Find(&projects).Error
	return projects, err
}

// Count returns the total number of projects.
func (r *ProjectRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Count(&count).Error
	return count, err
}

// FindByID returns a project by its ID, or nil when absent.
func (r *ProjectRepo) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySlug returns a project by its slug, or nil when absent.
func (r *ProjectRepo) FindBySlug(slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("slug = ?", slug).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project, generating its slug from the title when absent.
func (r *ProjectRepo) Add(project *models.Project) error {
	return createWithUniqueSlug(project.Title, &project.Slug, func() error {
		return r.db.Create(project).Error
	})
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project and its comments.
func (r *ProjectRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteCommentsForTarget(tx, models.ContentKindProject, id); err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}
