package models

import (
	"time"

	"gorm.io/gorm"
)

// Application statuses. pending moves to approved or rejected and neither
// transition is reopened afterwards.
const (
	ApplicationPending     = "pending"
	ApplicationUnderReview = "under_review"
	ApplicationApproved    = "approved"
	ApplicationRejected    = "rejected"
	ApplicationCompleted   = "completed"
)

// Payment plans offered on the application form.
const (
	PlanOutright   = "outright"
	PlanMusharakah = "musharakah"
	PlanMurabahah  = "murabahah"
	PlanIjarah     = "ijarah"
)

type Application struct {
	gorm.Model
	Reference       string  `gorm:"uniqueIndex;size:36" json:"reference"`
	FullName        string  `gorm:"not null" json:"full_name"`
	Email           string  `gorm:"not null;index" json:"email"`
	PhoneNumber     string  `json:"phone_number"`
	Address         string  `json:"address"`
	NextOfKinName   string  `json:"next_of_kin_name"`
	NextOfKinPhone  string  `json:"next_of_kin_phone"`
	UserID          *uint   `gorm:"index" json:"user_id"`
	PropertyID      uint    `gorm:"not null;index" json:"property_id"`
	Property        *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	EstateID        uint    `gorm:"not null" json:"estate_id"`
	Units           int     `gorm:"not null;default:1" json:"units"`
	PaymentPlan     string  `gorm:"not null" json:"payment_plan"`
	// TotalAmount is fixed at submission from the property price at that
	// moment and is never recomputed from the live price.
	TotalAmount     float64 `gorm:"not null" json:"total_amount"`
	TermsAccepted   bool    `gorm:"not null" json:"terms_accepted"`
	TermsAcceptedAt *time.Time `json:"terms_accepted_at"`
	Status          string  `gorm:"not null;default:pending" json:"status"`
	RejectionReason string  `json:"rejection_reason"`
	ApprovedByID    *uint   `json:"approved_by_id"`
	ApprovedAt      *time.Time `json:"approved_at"`
}
