package services

import (
	"errors"
	"fmt"

	"community-wins-system/models"
	"community-wins-system/pkg/apperrors"
	"community-wins-system/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserService owns the user directory: one record per platform user id,
// never hard-deleted.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// DefaultUsername derives a display name from the id suffix when the
// platform omits one.
func DefaultUsername(userID string) string {
	suffix := userID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return "User" + suffix
}

// GetByUserID looks a user up by platform id.
func (s *UserService) GetByUserID(userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("user %s not found", userID))
		}
		return nil, apperrors.Integration("failed to fetch user", err)
	}
	return &user, nil
}

// UpsertFromIdentity creates the directory record on first authentication or
// refreshes the username on re-authentication. An externally-set username is
// kept when the provider omits one. Idempotent on userID.
func (s *UserService) UpsertFromIdentity(userID, username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if username == "" {
			username = DefaultUsername(userID)
		}
		user = models.User{
			ID:       uuid.NewString(),
			UserID:   userID,
			Username: username,
			Role:     models.RoleMember,
			Points:   0,
			Badge:    BadgeInitiate,
		}
		if err := s.DB.Create(&user).Error; err != nil {
			return nil, apperrors.Integration("failed to create user", err)
		}
		logger.WithFields(logrus.Fields{"user_id": userID, "username": user.Username}).
			Info("user created")
		return &user, nil
	}
	if err != nil {
		return nil, apperrors.Integration("failed to fetch user", err)
	}

	if username != "" {
		user.Username = username
	} else if user.Username == "" {
		user.Username = DefaultUsername(userID)
	}
	if err := s.DB.Save(&user).Error; err != nil {
		return nil, apperrors.Integration("failed to update user", err)
	}
	return &user, nil
}

// GrantReviewPoints adds approval points to the user's total and recomputes
// the badge tier. This path is read-then-write on purpose: it mirrors the
// review workflow's original semantics and is a known lost-update gap under
// concurrency with payment events. Creates the record seeded with the awarded
// points when missing.
func (s *UserService) GrantReviewPoints(userID, username string, points int64) (*models.User, error) {
	var user models.User
	err := s.DB.Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if username == "" {
			username = DefaultUsername(userID)
		}
		user = models.User{
			ID:           uuid.NewString(),
			UserID:       userID,
			Username:     username,
			Role:         models.RoleMember,
			Points:       points,
			Badge:        BadgeTierFor(points),
			ApprovedWins: 1,
		}
		if err := s.DB.Create(&user).Error; err != nil {
			return nil, apperrors.Integration("failed to create user for point grant", err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, apperrors.Integration("failed to fetch user for point grant", err)
	}

	user.Points += points
	user.ApprovedWins++
	user.Badge = BadgeTierFor(user.Points)
	if err := s.DB.Save(&user).Error; err != nil {
		return nil, apperrors.Integration("failed to persist point grant", err)
	}
	logger.WithFields(logrus.Fields{
		"user_id": userID,
		"points":  points,
		"total":   user.Points,
		"badge":   user.Badge,
	}).Info("review points granted")
	return &user, nil
}

// AddPointsAdditive increments points with a single SQL expression so
// concurrent payment events cannot lose updates, then recomputes the badge
// from the fresh total. Updates (not UpdateColumn) so updated_at is stamped.
func (s *UserService) AddPointsAdditive(userID string, points int64) error {
	res := s.DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"points": gorm.Expr("points + ?", points)})
	if res.Error != nil {
		return apperrors.Integration("failed to increment points", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("user %s not found", userID))
	}

	var user models.User
	if err := s.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return apperrors.Integration("failed to re-read user after increment", err)
	}
	badge := BadgeTierFor(user.Points)
	if badge != user.Badge {
		if err := s.DB.Model(&models.User{}).
			Where("user_id = ?", userID).
			Update("badge", badge).Error; err != nil {
			return apperrors.Integration("failed to persist badge tier", err)
		}
	}
	return nil
}

// RefreshUsername updates the display name from a platform event.
func (s *UserService) RefreshUsername(userID, username string) error {
	res := s.DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("username", username)
	if res.Error != nil {
		return apperrors.Integration("failed to update username", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("user %s not found", userID))
	}
	return nil
}

// MarkDeleted flags a platform-deleted user. The record stays so payouts and
// wins keep resolving.
func (s *UserService) MarkDeleted(userID string) error {
	res := s.DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("status", models.UserStatusDeleted)
	if res.Error != nil {
		return apperrors.Integration("failed to flag deleted user", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("user %s not found", userID))
	}
	return nil
}
