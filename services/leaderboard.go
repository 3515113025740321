package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"community-wins-system/models"
	"community-wins-system/pkg/apperrors"
	"community-wins-system/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	defaultLeaderboardLimit = 100
	leaderboardCacheTTL     = 30 * time.Second
)

// LeaderboardService renders the points-descending projection over the user
// directory. Cache is optional; nil means every read hits the DB.
type LeaderboardService struct {
	DB    *gorm.DB
	Cache *redis.Client
}

func NewLeaderboardService(db *gorm.DB, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{DB: db, Cache: cache}
}

// List returns up to limit users ordered by points descending. Cache misses
// and cache failures fall through to the DB read.
func (s *LeaderboardService) List(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 || limit > defaultLeaderboardLimit {
		limit = defaultLeaderboardLimit
	}

	cacheKey := fmt.Sprintf("leaderboard:top:%d", limit)
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []models.LeaderboardEntry
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	entries, err := s.project(limit)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, data, leaderboardCacheTTL).Err(); err != nil {
				logger.Warnf("leaderboard cache write failed: %v", err)
			}
		}
	}
	return entries, nil
}

func (s *LeaderboardService) project(limit int) ([]models.LeaderboardEntry, error) {
	var users []models.User
	if err := s.DB.Order("points DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, apperrors.Integration("failed to read leaderboard", err)
	}

	entries := make([]models.LeaderboardEntry, len(users))
	for i, u := range users {
		badge := u.Badge
		if badge == "" {
			badge = BadgeInitiate
		}
		entries[i] = models.LeaderboardEntry{
			UserID:       u.UserID,
			Username:     u.Username,
			ApprovedWins: u.ApprovedWins,
			Points:       u.Points,
			Badge:        badge,
		}
	}
	return entries, nil
}

// Snapshot persists the current top-N as one batch of snapshot rows.
func (s *LeaderboardService) Snapshot(topN int) (string, error) {
	entries, err := s.project(topN)
	if err != nil {
		return "", err
	}

	batchID := uuid.NewString()
	rows := make([]models.LeaderboardSnapshot, len(entries))
	for i, e := range entries {
		rows[i] = models.LeaderboardSnapshot{
			ID:       uuid.NewString(),
			BatchID:  batchID,
			Rank:     i + 1,
			UserID:   e.UserID,
			Username: e.Username,
			Points:   e.Points,
			Badge:    e.Badge,
		}
	}
	if len(rows) == 0 {
		return batchID, nil
	}
	if err := s.DB.Create(&rows).Error; err != nil {
		return "", apperrors.Integration("failed to persist leaderboard snapshot", err)
	}
	return batchID, nil
}

// ListSnapshots returns the most recent snapshot rows, newest capture first,
// rank order within a capture.
func (s *LeaderboardService) ListSnapshots(limit int) ([]models.LeaderboardSnapshot, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultLeaderboardLimit
	}

	rows := []models.LeaderboardSnapshot{}
	if err := s.DB.Order("captured_at DESC, rank ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Integration("failed to list snapshots", err)
	}
	return rows, nil
}
