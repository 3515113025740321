package services

import (
	"community-wins-system/models"
	"community-wins-system/pkg/apperrors"
	"community-wins-system/pkg/logger"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultBountyListLimit = 50

// BountyInput is the creator-facing posting payload. RewardPoints is
// required; RewardUsd and Category have defaults.
type BountyInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	RewardUsd    float64 `json:"rewardUsd"`
	RewardPoints int64   `json:"rewardPoints"`
}

// BountyService owns the bounty registry.
type BountyService struct {
	DB *gorm.DB
}

func NewBountyService(db *gorm.DB) *BountyService {
	return &BountyService{DB: db}
}

// Create validates and inserts an active bounty posted by the creator.
func (s *BountyService) Create(createdByUserID string, in BountyInput) (*models.Bounty, error) {
	if in.Title == "" || in.Description == "" || in.RewardPoints <= 0 {
		return nil, apperrors.Validation("title, description and a positive rewardPoints are required")
	}

	category := in.Category
	if category == "" {
		category = "General"
	}

	bounty := models.Bounty{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Slug:            slug.Make(in.Title),
		Description:     in.Description,
		Category:        category,
		RewardUsd:       in.RewardUsd,
		RewardPoints:    in.RewardPoints,
		Status:          models.BountyStatusActive,
		CreatedByUserID: createdByUserID,
	}
	if err := s.DB.Create(&bounty).Error; err != nil {
		return nil, apperrors.Integration("failed to create bounty", err)
	}

	logger.WithFields(logrus.Fields{
		"bounty_id": bounty.ID,
		"slug":      bounty.Slug,
		"points":    bounty.RewardPoints,
	}).Info("bounty posted")
	return &bounty, nil
}

// List returns bounties newest-first filtered by status (default active).
func (s *BountyService) List(status string, limit int) ([]models.Bounty, error) {
	if status == "" {
		status = string(models.BountyStatusActive)
	}
	if limit <= 0 {
		limit = defaultBountyListLimit
	}

	bounties := []models.Bounty{}
	if err := s.DB.Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).
		Find(&bounties).Error; err != nil {
		return nil, apperrors.Integration("failed to list bounties", err)
	}
	return bounties, nil
}
