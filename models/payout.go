package models

// Payout is written once per win approval and never mutated here; settlement
// happens outside this service.
type Payout struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	WinID     string  `gorm:"index;not null" json:"winId"`
	UserID    string  `gorm:"index;not null" json:"userId"`
	Username  string  `json:"username"`
	Amount    float64 `json:"amount"`
	Points    int64   `json:"points"`
	Status    string  `gorm:"type:varchar(16);default:'pending'" json:"status"`
	CreatedAt int64   `gorm:"autoCreateTime:milli" json:"createdAt"`
}
