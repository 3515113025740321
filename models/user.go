package models

// UserRole separates creators (review wins, post bounties) from members.
type UserRole string

const (
	RoleCreator UserRole = "creator"
	RoleMember  UserRole = "member"
)

// UserStatusDeleted marks a user removed on the platform. Records are never
// hard-deleted; the flag keeps history (payouts, wins) resolvable.
const UserStatusDeleted = "deleted"

// User is the local directory record for a platform member. UserID is the
// platform-issued identifier and the only key other services reference.
type User struct {
	ID           string   `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string   `gorm:"uniqueIndex;not null" json:"userId"`
	Username     string   `gorm:"index" json:"username"`
	Role         UserRole `gorm:"type:varchar(16);default:'member'" json:"role"`
	Points       int64    `gorm:"default:0" json:"points"`
	Badge        string   `gorm:"type:varchar(32);default:'Initiate'" json:"badge"`
	ApprovedWins int64    `gorm:"default:0" json:"approvedWins"`
	Status       string   `gorm:"type:varchar(16);default:''" json:"status,omitempty"`
	CreatedAt    int64    `gorm:"autoCreateTime:milli" json:"createdAt"`
	UpdatedAt    int64    `gorm:"autoUpdateTime:milli" json:"updatedAt"`
}
