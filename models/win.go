package models

// WinStatus is the review lifecycle of a submission.
type WinStatus string

const (
	WinStatusPending  WinStatus = "pending"
	WinStatusApproved WinStatus = "approved"
	WinStatusRejected WinStatus = "rejected"
)

// MediaType tells the UI how to embed the proof URL.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeLink  MediaType = "link"
)

// WinSubmission is a member-submitted achievement awaiting creator review.
// Username is a snapshot taken at submission time; the record is immutable
// after the single pending -> approved|rejected transition.
type WinSubmission struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"index;not null" json:"userId"`
	Username    string    `json:"username"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"not null" json:"category"`
	ExternalURL string    `gorm:"type:text" json:"externalUrl,omitempty"`
	MediaType   MediaType `gorm:"type:varchar(16)" json:"mediaType,omitempty"`

	// Reward attached by the bounty the win answers, if any.
	RewardUsd    float64 `json:"rewardUsd"`
	RewardPoints int64   `json:"rewardPoints"`

	Status     WinStatus `gorm:"type:varchar(16);index;default:'pending'" json:"status"`
	ReviewedBy string    `json:"reviewedBy,omitempty"`
	ReviewedAt int64     `json:"reviewedAt,omitempty"`
	CreatedAt  int64     `gorm:"autoCreateTime:milli;index" json:"createdAt"`
	UpdatedAt  int64     `gorm:"autoUpdateTime:milli" json:"updatedAt"`
}
