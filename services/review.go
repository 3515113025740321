package services

import (
	"errors"
	"fmt"
	"time"

	"community-wins-system/models"
	"community-wins-system/pkg/apperrors"
	"community-wins-system/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"

	// Points granted per approval when the submission carries no reward.
	defaultApprovalPoints = 10
)

// EffectResult reports one secondary effect of a review. The status
// transition is the source of truth; effect failures are recorded here, never
// rolled back and never surfaced as the call's error.
type EffectResult struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// ReviewOutcome is what a completed review returns: the action taken plus the
// per-effect results for callers and tests to inspect.
type ReviewOutcome struct {
	Action  string         `json:"action"`
	Effects []EffectResult `json:"effects"`
}

// ReviewService drives the pending -> approved|rejected state machine.
type ReviewService struct {
	DB    *gorm.DB
	Users *UserService
}

func NewReviewService(db *gorm.DB, users *UserService) *ReviewService {
	return &ReviewService{DB: db, Users: users}
}

// Review transitions a pending submission and runs the dependent side
// effects. The transition is a status-guarded update: a submission that has
// already left pending fails as an invalid transition, so concurrent reviews
// cannot both succeed and a duplicate payout is impossible.
func (s *ReviewService) Review(winID, action, reviewer string) (*ReviewOutcome, error) {
	if action != ReviewActionApprove && action != ReviewActionReject {
		return nil, apperrors.Validation("invalid action, must be 'approve' or 'reject'")
	}

	var win models.WinSubmission
	if err := s.DB.Where("id = ?", winID).First(&win).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("win %s not found", winID))
		}
		return nil, apperrors.Integration("failed to fetch win", err)
	}

	status := models.WinStatusApproved
	if action == ReviewActionReject {
		status = models.WinStatusRejected
	}

	now := time.Now().UnixMilli()
	res := s.DB.Model(&models.WinSubmission{}).
		Where("id = ? AND status = ?", winID, models.WinStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewer,
			"reviewed_at": now,
			"updated_at":  now,
		})
	if res.Error != nil {
		return nil, apperrors.Integration("failed to record review transition", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.Validation(fmt.Sprintf("win already reviewed (status: %s)", win.Status))
	}

	outcome := &ReviewOutcome{Action: action}
	if action == ReviewActionApprove {
		outcome.Effects = s.processApproval(&win)
	} else {
		outcome.Effects = s.processRejection(&win)
	}

	logger.WithFields(logrus.Fields{
		"win_id":   winID,
		"action":   action,
		"reviewer": reviewer,
	}).Info("win reviewed")
	return outcome, nil
}

// processApproval records the payout and grants points. Each effect is
// individually fallible; the approved status stands regardless.
func (s *ReviewService) processApproval(win *models.WinSubmission) []EffectResult {
	points := win.RewardPoints
	if points == 0 {
		points = defaultApprovalPoints
	}

	var effects []EffectResult

	payout := models.Payout{
		ID:       uuid.NewString(),
		WinID:    win.ID,
		UserID:   win.UserID,
		Username: win.Username,
		Amount:   win.RewardUsd,
		Points:   points,
		Status:   "pending",
	}
	if err := s.DB.Create(&payout).Error; err != nil {
		logger.Errorf("payout record failed for win %s: %v", win.ID, err)
		effects = append(effects, EffectResult{Name: "payout", Reason: err.Error()})
	} else {
		effects = append(effects, EffectResult{Name: "payout", OK: true})
	}

	if _, err := s.Users.GrantReviewPoints(win.UserID, win.Username, points); err != nil {
		logger.Errorf("point grant failed for win %s: %v", win.ID, err)
		effects = append(effects, EffectResult{Name: "points", Reason: err.Error()})
	} else {
		effects = append(effects, EffectResult{Name: "points", OK: true})
	}

	return effects
}

// processRejection records the member-facing notification.
func (s *ReviewService) processRejection(win *models.WinSubmission) []EffectResult {
	notification := models.Notification{
		ID:       uuid.NewString(),
		UserID:   win.UserID,
		Username: win.Username,
		Type:     models.NotificationTypeWinRejected,
		Title:    "Win Submission Rejected",
		Message:  fmt.Sprintf("Your submission %q was not approved.", win.Title),
	}
	if err := s.DB.Create(&notification).Error; err != nil {
		logger.Errorf("rejection notification failed for win %s: %v", win.ID, err)
		return []EffectResult{{Name: "notification", Reason: err.Error()}}
	}
	return []EffectResult{{Name: "notification", OK: true}}
}
