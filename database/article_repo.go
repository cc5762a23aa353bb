package database

import (
	"errors"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type ArticleRepo struct {
	db *gorm.DB
}

func NewArticleRepo(db *gorm.DB) *ArticleRepo {
	return &ArticleRepo{db}
}

// FindPage returns one page of articles ordered by published date descending,
// with authors (and their social accounts, for avatar resolution) preloaded.
func (r *ArticleRepo) FindPage(offset, limit int) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.db.Preload("Author.SocialAccounts").
		Order("published_date DESC").Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// Count returns the total number of articles.
func (r *ArticleRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Count(&count).Error
	return count, err
}

// FindByID returns an article by its ID, or nil when absent.
func (r *ArticleRepo) FindByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author.SocialAccounts").First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// FindBySlug returns an article by its slug, or nil when absent.
func (r *ArticleRepo) FindBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author.SocialAccounts").Where("slug = ?", slug).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Add inserts a new article, generating its slug from the title when absent.
func (r *ArticleRepo) Add(article *models.Article) error {
	return createWithUniqueSlug(article.Title, &article.Slug, func() error {
		return r.db.Create(article).Error
	})
}

// Update updates an existing article in the database
func (r *ArticleRepo) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

// Delete removes an article and its comments.
func (r *ArticleRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteCommentsForTarget(tx, models.ContentKindArticle, id); err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, id).Error
	})
}
