package database

import (
	"testing"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLookups(t *testing.T) {
	db := newTestDB(t)
	repo := db.UserRepo()
	user := newTestUser(t, db, "findme")

	byID, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)

	byUsername, err := repo.FindByUsername("findme")
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	assert.Equal(t, user.ID, byUsername.ID)

	byEmail, err := repo.FindByEmail("findme@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	missing, err := repo.FindByUsername("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := db.UserRepo()
	newTestUser(t, db, "taken")

	dup := &models.User{Username: "taken", Email: "other@example.com", IsActive: true}
	err := repo.Add(dup)
	require.Error(t, err)
	assert.True(t, isDuplicateKey(err))

	dupEmail := &models.User{Username: "different", Email: "taken@example.com", IsActive: true}
	err = repo.Add(dupEmail)
	require.Error(t, err)
	assert.True(t, isDuplicateKey(err))
}

func TestUserDeleteRemovesSocialAccounts(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "linked")

	account := &models.SocialAccount{
		UserID:      user.ID,
		Provider:    models.ProviderGoogle,
		ProviderUID: "google-uid",
		AccessToken: "token",
	}
	require.NoError(t, db.SocialAccountRepo().Upsert(account))

	require.NoError(t, db.UserRepo().Delete(user.ID))

	gone, err := db.SocialAccountRepo().FindByUserAndProvider(user.ID, models.ProviderGoogle)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSocialAccountUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := db.SocialAccountRepo()
	user := newTestUser(t, db, "googler")

	first := &models.SocialAccount{UserID: user.ID, Provider: models.ProviderGoogle, ProviderUID: "uid-1", AccessToken: "old"}
	require.NoError(t, repo.Upsert(first))

	second := &models.SocialAccount{UserID: user.ID, Provider: models.ProviderGoogle, ProviderUID: "uid-1", AccessToken: "new", Picture: "https://example.com/p.png"}
	require.NoError(t, repo.Upsert(second))
	assert.Equal(t, first.ID, second.ID)

	stored, err := repo.FindByUserAndProvider(user.ID, models.ProviderGoogle)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "new", stored.AccessToken)
	assert.Equal(t, "https://example.com/p.png", stored.Picture)
}
