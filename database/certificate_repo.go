package database

import (
	"errors"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type CertificateRepo struct {
	db *gorm.DB
}

func NewCertificateRepo(db *gorm.DB) *CertificateRepo {
	return &CertificateRepo{db}
}

// FindPage returns one page of certificates, newest issue date first.
func (r *CertificateRepo) FindPage(offset, limit int) ([]*models.Certificate, error) {
	var certificates []*models.Certificate
	err := r.db.Order("issue_date DESC").Offset(offset).Limit(limit).Find(&certificates).Error
	return certificates, err
}

// Count returns the total number of certificates.
func (r *CertificateRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Certificate{}).Count(&count).Error
	return count, err
}

// FindByID returns a certificate by its ID, or nil when absent.
func (r *CertificateRepo) FindByID(id uint) (*models.Certificate, error) {
	var certificate models.Certificate
	err := r.db.First(&certificate, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}

// FindBySlug returns a certificate by its slug, or nil when absent.
func (r *CertificateRepo) FindBySlug(slug string) (*models.Certificate, error) {
	var certificate models.Certificate
	err := r.db.Where("slug = ?", slug).First(&certificate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}

// Add inserts a new certificate, generating its slug from the title when
// absent.
func (r *CertificateRepo) Add(certificate *models.Certificate) error {
	return createWithUniqueSlug(certificate.Title, &certificate.Slug, func() error {
		return r.db.Create(certificate).Error
	})
}

// Update updates an existing certificate in the database
func (r *CertificateRepo) Update(certificate *models.Certificate) error {
	return r.db.Save(certificate).Error
}

// Delete removes a certificate from the database by id
func (r *CertificateRepo) Delete(id uint) error {
	return r.db.Delete(&models.Certificate{}, id).Error
}
