package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileEndpoints(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "selfserve", false)

	t.Run("anonymous access is rejected", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodGet, "/auth/user/", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns the caller's own profile", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodGet, "/auth/user/", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var profile UserView
		decodeBody(t, rec, &profile)
		assert.Equal(t, user.ID, profile.ID)
		assert.Equal(t, "selfserve", profile.Username)
	})

	t.Run("partial update keeps unspecified fields", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPut, "/auth/user/", token, map[string]string{"first_name": "Only"})
		require.Equal(t, http.StatusOK, rec.Code)

		var profile UserView
		decodeBody(t, rec, &profile)
		assert.Equal(t, "Only", profile.FirstName)
		assert.Equal(t, "selfserve", profile.Username)
		assert.Equal(t, "selfserve@example.com", profile.Email)
	})

	t.Run("username collision is rejected", func(t *testing.T) {
		env.createUser(t, "occupied", false)
		rec := env.doJSON(t, http.MethodPut, "/auth/user/", token, map[string]string{"username": "occupied"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "rotator", false)

	t.Run("wrong current password is rejected", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPut, "/update-profile/", token, map[string]string{
			"current_password": "not-it",
			"new_password":     "fresh-password-22",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("weak new password is rejected", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPut, "/update-profile/", token, map[string]string{
			"current_password": "sturdy-password-1",
			"new_password":     "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("valid change takes effect at login", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPut, "/update-profile/", token, map[string]string{
			"current_password": "sturdy-password-1",
			"new_password":     "fresh-password-22",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.doJSON(t, http.MethodPost, "/token/", "", map[string]string{
			"username": "rotator",
			"password": "fresh-password-22",
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = env.doJSON(t, http.MethodPost, "/token/", "", map[string]string{
			"username": "rotator",
			"password": "sturdy-password-1",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("google-only accounts cannot change passwords", func(t *testing.T) {
		googleUser, googleToken := env.createUser(t, "oauth-only", false)
		googleUser.PasswordHash = nil
		require.NoError(t, env.db.UserRepo().Update(googleUser))

		rec := env.doJSON(t, http.MethodPut, "/update-profile/", googleToken, map[string]string{
			"new_password": "fresh-password-22",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		var body ErrorResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "Google users cannot change passwords", body.Error)
	})
}

func TestUpdateProfileUsernameChange(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "oldname", false)

	rec := env.doJSON(t, http.MethodPut, "/update-profile/", token, map[string]string{"username": "newname"})
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := env.db.UserRepo().FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "newname", stored.Username)

	// The old access token still names the same user id, so it keeps working.
	rec = env.doJSON(t, http.MethodGet, "/auth/user/", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
