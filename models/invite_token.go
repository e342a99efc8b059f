package models

import "time"

// InviteToken is a one-time credential mailed to an applicant when their
// application is approved. Completing the invite sets the account password.
type InviteToken struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint   `gorm:"index"`
	Token     string `gorm:"uniqueIndex;size:64"`
	ExpiresAt time.Time
	UsedAt    *time.Time
}
