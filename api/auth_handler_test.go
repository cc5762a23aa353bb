package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndObtainTokens(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/user/register/", "", map[string]string{
		"username":   "newcomer",
		"email":      "newcomer@example.com",
		"password":   "sturdy-password-1",
		"first_name": "New",
		"last_name":  "Comer",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created UserView
	decodeBody(t, rec, &created)
	assert.Equal(t, "newcomer", created.Username)
	assert.Equal(t, "New Comer", created.FullName)
	assert.False(t, created.IsStaff)

	rec = env.doJSON(t, http.MethodPost, "/token/", "", map[string]string{
		"username": "newcomer",
		"password": "sturdy-password-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var pair tokenPairResponse
	decodeBody(t, rec, &pair)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	// The minted access token works against a session endpoint.
	rec = env.doJSON(t, http.MethodGet, "/auth/user/", pair.Access, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// And the refresh token buys a fresh access token.
	rec = env.doJSON(t, http.MethodPost, "/token/refresh/", "", map[string]string{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, rec.Code)
	var refreshed map[string]string
	decodeBody(t, rec, &refreshed)
	assert.NotEmpty(t, refreshed["access"])
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	t.Run("rejects a weak password", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/user/register/", "", map[string]string{
			"username": "weakling",
			"email":    "weakling@example.com",
			"password": "12345678",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/user/register/", "", map[string]string{
			"username": "badmail",
			"email":    "not-an-email",
			"password": "sturdy-password-1",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		env.createUser(t, "claimed", false)
		rec := env.doJSON(t, http.MethodPost, "/user/register/", "", map[string]string{
			"username": "claimed",
			"email":    "unclaimed@example.com",
			"password": "sturdy-password-1",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestObtainTokensRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "resident", false)

	t.Run("wrong password", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/token/", "", map[string]string{
			"username": "resident",
			"password": "not-the-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown username", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/token/", "", map[string]string{
			"username": "stranger",
			"password": "sturdy-password-1",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("google-only account has no usable password", func(t *testing.T) {
		googleUser, _ := env.createUser(t, "google-only", false)
		googleUser.PasswordHash = nil
		require.NoError(t, env.db.UserRepo().Update(googleUser))

		rec := env.doJSON(t, http.MethodPost, "/token/", "", map[string]string{
			"username": "google-only",
			"password": "sturdy-password-1",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)
	_, access := env.createUser(t, "swapper", false)

	rec := env.doJSON(t, http.MethodPost, "/token/refresh/", "", map[string]string{"refresh": access})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
