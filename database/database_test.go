package database

import (
	"testing"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database with the same schema the
// server migrates at startup. A single connection keeps the in-memory database
// alive for the whole test.
func newTestDB(t *testing.T) Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))

	return New(db)
}

// newTestUser inserts a minimal active user and returns it.
func newTestUser(t *testing.T, db Database, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
	require.NoError(t, db.UserRepo().Add(user))
	return user
}
