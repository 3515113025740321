package services

import (
	"context"
	"testing"

	"community-wins-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedLeaderboardUsers(t *testing.T, db *gorm.DB, points []int64) {
	t.Helper()
	for _, p := range points {
		require.NoError(t, db.Create(&models.User{
			ID:       uuid.NewString(),
			UserID:   uuid.NewString(),
			Username: "player",
			Role:     models.RoleMember,
			Points:   p,
			Badge:    BadgeTierFor(p),
		}).Error)
	}
}

func TestLeaderboard_OrdersByPointsDescending(t *testing.T) {
	db := openTestDB(t)
	svc := NewLeaderboardService(db, nil)
	seedLeaderboardUsers(t, db, []int64{50, 500, 10, 1000})

	entries, err := svc.List(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	got := make([]int64, len(entries))
	for i, e := range entries {
		got[i] = e.Points
	}
	assert.Equal(t, []int64{1000, 500, 50, 10}, got)
}

func TestLeaderboard_LimitIsHardCap(t *testing.T) {
	db := openTestDB(t)
	svc := NewLeaderboardService(db, nil)
	seedLeaderboardUsers(t, db, []int64{1, 2, 3, 4, 5})

	entries, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// Out-of-range limits fall back to the default cap.
	entries, err = svc.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestLeaderboard_DefaultsBlankBadgeToInitiate(t *testing.T) {
	db := openTestDB(t)
	svc := NewLeaderboardService(db, nil)
	require.NoError(t, db.Create(&models.User{
		ID:     uuid.NewString(),
		UserID: "user_1",
		Role:   models.RoleMember,
		Points: 5,
		Badge:  "",
	}).Error)

	entries, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, BadgeInitiate, entries[0].Badge)
	assert.EqualValues(t, 0, entries[0].ApprovedWins)
}

func TestLeaderboard_SnapshotPersistsRankedRows(t *testing.T) {
	db := openTestDB(t)
	svc := NewLeaderboardService(db, nil)
	seedLeaderboardUsers(t, db, []int64{300, 100, 200})

	batchID, err := svc.Snapshot(2)
	require.NoError(t, err)
	require.NotEmpty(t, batchID)

	var rows []models.LeaderboardSnapshot
	require.NoError(t, db.Where("batch_id = ?", batchID).Order("rank ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Rank)
	assert.EqualValues(t, 300, rows[0].Points)
	assert.Equal(t, 2, rows[1].Rank)
	assert.EqualValues(t, 200, rows[1].Points)
}
