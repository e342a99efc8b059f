package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment statuses. Only an admin moves a payment out of pending.
const (
	PaymentPending    = "pending"
	PaymentProcessing = "processing"
	PaymentCompleted  = "completed"
	PaymentFailed     = "failed"
	PaymentCancelled  = "cancelled"
)

type Payment struct {
	gorm.Model
	ApplicationID uint    `gorm:"not null;index" json:"application_id"`
	UserID        *uint   `gorm:"index" json:"user_id"`
	Amount        float64 `gorm:"not null" json:"amount"`
	InstallmentNo int     `json:"installment_no"`
	Reference     string  `json:"reference"`
	Notes         string  `json:"notes"`
	Status        string  `gorm:"not null;default:pending" json:"status"`
	VerifiedByID  *uint   `json:"verified_by_id"`
	VerifiedAt    *time.Time `json:"verified_at"`
}
