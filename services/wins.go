package services

import (
	"community-wins-system/models"
	"community-wins-system/pkg/apperrors"
	"community-wins-system/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultWinListLimit = 50

// WinInput is the member-facing submission payload. Proof is an external
// embed URL; uploaded blobs are out of scope.
type WinInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Proof       string           `json:"proof"`
	MediaType   models.MediaType `json:"mediaType"`
}

// WinService owns the win submission registry.
type WinService struct {
	DB *gorm.DB
}

func NewWinService(db *gorm.DB) *WinService {
	return &WinService{DB: db}
}

// Create validates and inserts a pending submission for the member.
func (s *WinService) Create(userID, username string, in WinInput) (*models.WinSubmission, error) {
	if in.Title == "" || in.Description == "" || in.Category == "" || in.Proof == "" {
		return nil, apperrors.Validation("title, description, category and proof are required")
	}

	mediaType := in.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypeLink
	}

	win := models.WinSubmission{
		ID:          uuid.NewString(),
		UserID:      userID,
		Username:    username,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		ExternalURL: in.Proof,
		MediaType:   mediaType,
		Status:      models.WinStatusPending,
	}
	if err := s.DB.Create(&win).Error; err != nil {
		return nil, apperrors.Integration("failed to create win submission", err)
	}

	logger.WithFields(logrus.Fields{"win_id": win.ID, "user_id": userID, "category": win.Category}).
		Info("win submitted")
	return &win, nil
}

// List returns submissions newest-first, optionally filtered by exact status.
func (s *WinService) List(status string, limit int) ([]models.WinSubmission, error) {
	if limit <= 0 {
		limit = defaultWinListLimit
	}

	query := s.DB.Order("created_at DESC").Limit(limit)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	wins := []models.WinSubmission{}
	if err := query.Find(&wins).Error; err != nil {
		return nil, apperrors.Integration("failed to list wins", err)
	}
	return wins, nil
}
