package services

import (
	"testing"

	"community-wins-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPointsAdditive_RefreshesUpdatedAt(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)
	seedUser(t, db, "user_1", 40)

	// Force a stale stamp so the refresh is observable.
	require.NoError(t, db.Model(&models.User{}).
		Where("user_id = ?", "user_1").
		UpdateColumn("updated_at", int64(1000)).Error)

	require.NoError(t, svc.AddPointsAdditive("user_1", 5))

	var user models.User
	require.NoError(t, db.First(&user, "user_id = ?", "user_1").Error)
	assert.EqualValues(t, 45, user.Points)
	assert.Greater(t, user.UpdatedAt, int64(1000))
}
