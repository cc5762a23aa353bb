package database

import (
	"errors"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/gorm"
)

type SocialAccountRepo struct {
	db *gorm.DB
}

func NewSocialAccountRepo(db *gorm.DB) *SocialAccountRepo {
	return &SocialAccountRepo{db}
}

// FindByUserAndProvider returns the linked account for (user, provider), or
// nil when the user has no link to that provider.
func (r *SocialAccountRepo) FindByUserAndProvider(userID uint, provider string) (*models.SocialAccount, error) {
	var account models.SocialAccount
	err := r.db.Where("user_id = ? AND provider = ?", userID, provider).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Upsert creates the (user, provider) link or refreshes its token and picture
// fields when it already exists.
func (r *SocialAccountRepo) Upsert(account *models.SocialAccount) error {
	existing, err := r.FindByUserAndProvider(account.UserID, account.Provider)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(account).Error
	}
	existing.ProviderUID = account.ProviderUID
	existing.Picture = account.Picture
	existing.AccessToken = account.AccessToken
	existing.RefreshToken = account.RefreshToken
	existing.TokenExpiry = account.TokenExpiry
	if err := r.db.Save(existing).Error; err != nil {
		return err
	}
	*account = *existing
	return nil
}
