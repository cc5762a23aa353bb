package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateToken(t *testing.T) {
	env := newTestEnv(t)

	t.Run("accepts a present token", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/google/validate_token/", "", map[string]string{
			"access_token": "anything-goes-here",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]bool
		decodeBody(t, rec, &body)
		assert.True(t, body["valid"])
	})

	t.Run("missing token is a bad request", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/google/validate_token/", "", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body ErrorResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "Access Token is missing.", body.Error)
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/google/validate_token/", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-POST methods get a 405", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			rec := env.doJSON(t, method, "/google/validate_token/", "", nil)
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		}
	})
}

func TestGoogleLoginUnconfigured(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/google/login/", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCallbackWithoutCode(t *testing.T) {
	env := newTestEnv(t)

	t.Run("anonymous caller is bounced back with an error indicator", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodGet, "/callback/", "", nil)
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, testFrontendURL+"/login/callback/?error=NoCode", rec.Header().Get("Location"))
	})

	t.Run("authenticated caller without a google link", func(t *testing.T) {
		_, token := env.createUser(t, "unlinked", false)
		rec := env.doJSON(t, http.MethodGet, "/callback/", token, nil)
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, testFrontendURL+"/login/callback/?error=NoSocialAccount", rec.Header().Get("Location"))
	})

	t.Run("authenticated caller with a linked account gets a token", func(t *testing.T) {
		user, token := env.createUser(t, "linked", false)
		require.NoError(t, env.db.SocialAccountRepo().Upsert(&models.SocialAccount{
			UserID:      user.ID,
			Provider:    models.ProviderGoogle,
			ProviderUID: "uid-123",
			AccessToken: "google-access-token",
		}))

		rec := env.doJSON(t, http.MethodGet, "/callback/", token, nil)
		require.Equal(t, http.StatusFound, rec.Code)

		location := rec.Header().Get("Location")
		require.True(t, strings.HasPrefix(location, testFrontendURL+"/login/callback/?access_token="), location)

		minted := strings.TrimPrefix(location, testFrontendURL+"/login/callback/?access_token=")
		claims, err := env.tokens.ParseAccess(minted)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})
}
