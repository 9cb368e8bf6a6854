// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory SQLite database with the full schema
// migrated. Each call gets an isolated database, so tests never share state.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lecture{},
		&models.Announcement{},
		&models.Note{},
		&models.FAQ{},
	)
	require.NoError(t, err)

	return db
}
