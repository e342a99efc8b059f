package models

import (
	"time"

	"gorm.io/gorm"
)

// Receipt records an uploaded bank-transfer slip against a payment. The
// server stores the reference only; reconciliation happens off-system.
type Receipt struct {
	gorm.Model
	ApplicationID uint   `gorm:"not null;index" json:"application_id"`
	PaymentID     *uint  `gorm:"index" json:"payment_id"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	BankName      string `json:"bank_name"`
	Reference     string `json:"reference"`
	FileURL       string `json:"file_url"`
	PaidAt        *time.Time `json:"paid_at"`
}
