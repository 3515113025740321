package models

const NotificationTypeWinRejected = "win_rejected"

// Notification is written once per win rejection. Delivery is out of scope;
// the UI polls these records.
type Notification struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string `gorm:"index;not null" json:"userId"`
	Username  string `json:"username"`
	Type      string `gorm:"type:varchar(32);not null" json:"type"`
	Title     string `json:"title"`
	Message   string `gorm:"type:text" json:"message"`
	Read      bool   `gorm:"default:false" json:"read"`
	CreatedAt int64  `gorm:"autoCreateTime:milli" json:"createdAt"`
}
