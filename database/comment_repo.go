package database

import (
	"errors"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindPageForTarget returns one page of top-level comments for a (kind, id)
// target, newest first. Replies are excluded; they are fetched through
// FindReplies.
func (r *CommentRepo) FindPageForTarget(kind models.ContentKind, targetID uint, offset, limit int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.Preload("Author.SocialAccounts").
		Where("kind = ? AND target_id = ? AND parent_id IS NULL", kind, targetID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	return comments, err
}

// CountForTarget returns the number of top-level comments for a target.
func (r *CommentRepo) CountForTarget(kind models.ContentKind, targetID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("kind = ? AND target_id = ? AND parent_id IS NULL", kind, targetID).
		Count(&count).Error
	return count, err
}

// FindByID returns a comment by its ID, or nil when absent.
func (r *CommentRepo) FindByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author.SocialAccounts").First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindReplies returns all replies to a comment, newest first.
func (r *CommentRepo) FindReplies(parentID uint) ([]*models.Comment, error) {
	var replies []*models.Comment
	err := r.db.Preload("Author.SocialAccounts").
		Where("parent_id = ?", parentID).
		Order("created_at DESC").
		Find(&replies).Error
	return replies, err
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Delete removes a comment and cascades to its direct replies. Nesting is one
// level deep, so one pass over parent_id suffices. The cascade runs in the
// application so it holds on backends without FK enforcement.
func (r *CommentRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}

// deleteCommentsForTarget removes every comment attached to a content entity;
// used when the entity itself is deleted.
func deleteCommentsForTarget(tx *gorm.DB, kind models.ContentKind, targetID uint) error {
	return tx.Where("kind = ? AND target_id = ?", kind, targetID).Delete(&models.Comment{}).Error
}
