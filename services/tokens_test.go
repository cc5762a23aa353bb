package services

import (
	"testing"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 24*time.Hour)
	user := &models.User{ID: 42, IsSuperuser: true}

	access, refresh, err := svc.MintPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := svc.ParseAccess(access)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.True(t, claims.IsSuperuser)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	refreshClaims, err := svc.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.EqualValues(t, 42, refreshClaims.UserID)
}

func TestTokenTypeEnforced(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 24*time.Hour)
	user := &models.User{ID: 1}

	access, refresh, err := svc.MintPair(user)
	require.NoError(t, err)

	_, err = svc.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	minter := NewTokenService("secret-a", time.Hour, 24*time.Hour)
	verifier := NewTokenService("secret-b", time.Hour, 24*time.Hour)

	access, err := minter.MintAccess(&models.User{ID: 7})
	require.NoError(t, err)

	_, err = verifier.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiry(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute, 24*time.Hour)

	access, err := svc.MintAccess(&models.User{ID: 7})
	require.NoError(t, err)

	_, err = svc.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbageInput(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, 24*time.Hour)

	_, err := svc.ParseAccess("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
