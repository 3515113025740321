package models

// LeaderboardEntry is a read-time projection over the user directory,
// never persisted.
type LeaderboardEntry struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	ApprovedWins int64  `json:"approvedWins"`
	Points       int64  `json:"points"`
	Badge        string `json:"badge"`
}

// LeaderboardSnapshot is a periodic capture of the top of the board, written
// by the snapshot scheduler. Rows sharing a BatchID belong to one capture.
type LeaderboardSnapshot struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	BatchID    string `gorm:"index;not null" json:"batchId"`
	Rank       int    `gorm:"not null" json:"rank"`
	UserID     string `gorm:"index;not null" json:"userId"`
	Username   string `json:"username"`
	Points     int64  `json:"points"`
	Badge      string `json:"badge"`
	CapturedAt int64  `gorm:"autoCreateTime:milli;index" json:"capturedAt"`
}
