package services

import (
	"fmt"
	"testing"

	"community-wins-system/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test an isolated in-memory database with the full
// schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.WinSubmission{},
		&models.Bounty{},
		&models.Payout{},
		&models.Notification{},
		&models.LeaderboardSnapshot{},
	))
	return db
}
