package models

import "gorm.io/gorm"

// Property statuses.
const (
	PropertyAvailable         = "available"
	PropertyReserved          = "reserved"
	PropertySold              = "sold"
	PropertyUnderConstruction = "under_construction"
)

// Property is a sellable unit within an estate.
type Property struct {
	gorm.Model
	EstateID    uint    `gorm:"not null;index" json:"estate_id"`
	Estate      *Estate `gorm:"foreignKey:EstateID" json:"estate,omitempty"`
	StreetID    *uint   `json:"street_id"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	SizeSqm     float64 `json:"size_sqm"`
	Status      string  `gorm:"not null;default:available" json:"status"`
}
