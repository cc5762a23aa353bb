package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/services"
	"github.com/rpupo63/portfolio-cms-backend/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testFrontendURL = "http://frontend.test"

type testEnv struct {
	router *chi.Mux
	db     database.Database
	tokens *services.TokenService
	store  storage.Store
}

// newTestEnv wires the full router against an in-memory database and a
// throwaway media directory.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, gormDB.AutoMigrate(models.All()...))

	db := database.New(gormDB)
	tokens := services.NewTokenService("test-secret", time.Hour, 24*time.Hour)
	store := storage.NewLocalStore(t.TempDir(), "/media")
	google := services.NewGoogleService("", "", "")

	handlers := initializeHandlers(db, store, tokens, google, testFrontendURL)
	router := chi.NewRouter()
	setupRoutes(router, handlers, newAuthMiddleware(tokens, db.UserRepo()))

	return testEnv{router: router, db: db, tokens: tokens, store: store}
}

// createUser inserts a user with a known password and returns it with a valid
// access token.
func (e testEnv) createUser(t *testing.T, username string, staff bool) (*models.User, string) {
	t.Helper()

	hash, err := services.HashPassword("sturdy-password-1")
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: &hash,
		IsStaff:      staff,
		IsActive:     true,
	}
	require.NoError(t, e.db.UserRepo().Add(user))

	token, err := e.tokens.MintAccess(user)
	require.NoError(t, err)
	return user, token
}

// doJSON performs a request with an optional bearer token and JSON body.
func (e testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorded JSON response into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
