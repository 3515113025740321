package models

// BountyStatus has no state machine beyond active/archived.
type BountyStatus string

const (
	BountyStatusActive   BountyStatus = "active"
	BountyStatusArchived BountyStatus = "archived"
)

// Bounty is a creator-posted challenge with a points reward and an optional
// USD reward. RewardPoints is required at creation.
type Bounty struct {
	ID              string       `gorm:"primaryKey;type:uuid" json:"id"`
	Title           string       `gorm:"not null" json:"title"`
	Slug            string       `gorm:"index" json:"slug"`
	Description     string       `gorm:"type:text;not null" json:"description"`
	Category        string       `gorm:"default:'General'" json:"category"`
	RewardUsd       float64      `gorm:"default:0" json:"rewardUsd"`
	RewardPoints    int64        `gorm:"not null" json:"rewardPoints"`
	Status          BountyStatus `gorm:"type:varchar(16);index;default:'active'" json:"status"`
	CreatedByUserID string       `gorm:"index;not null" json:"createdByUserId"`
	CreatedAt       int64        `gorm:"autoCreateTime:milli;index" json:"createdAt"`
	UpdatedAt       int64        `gorm:"autoUpdateTime:milli" json:"updatedAt"`
}
