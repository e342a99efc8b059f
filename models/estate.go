package models

import "gorm.io/gorm"

// Estate is a development site containing streets and sellable properties.
type Estate struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Location    string `json:"location"`
	City        string `json:"city"`
	State       string `json:"state"`
	Description string `json:"description"`
	BannerURL   string `json:"banner_url"`
	Streets     []Street   `gorm:"foreignKey:EstateID" json:"streets,omitempty"`
	Properties  []Property `gorm:"foreignKey:EstateID" json:"properties,omitempty"`
}
